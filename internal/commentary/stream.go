package commentary

import "io"

type fragment struct {
	text string
	err  error
}

// Stream delivers commentary text fragments incrementally. Recv returns
// io.EOF after the final fragment, or the generation error if the
// underlying producer failed. A cache hit is replayed as a single
// fragment, so the contract is uniform regardless of cache status.
type Stream struct {
	ch chan fragment
}

func newStream(buffer int) *Stream {
	return &Stream{ch: make(chan fragment, buffer)}
}

// Recv returns the next text fragment. It returns io.EOF when the stream
// has completed successfully.
func (s *Stream) Recv() (string, error) {
	f, ok := <-s.ch
	if !ok {
		return "", io.EOF
	}
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

// send queues one fragment; close ends the stream.
func (s *Stream) send(text string) {
	s.ch <- fragment{text: text}
}

func (s *Stream) fail(err error) {
	s.ch <- fragment{err: err}
	close(s.ch)
}

func (s *Stream) close() {
	close(s.ch)
}

// Collect drains the stream and returns the concatenated text. Intended
// for consumers that do not care about incremental display.
func (s *Stream) Collect() (string, error) {
	var full string
	for {
		text, err := s.Recv()
		if err == io.EOF {
			return full, nil
		}
		if err != nil {
			return full, err
		}
		full += text
	}
}
