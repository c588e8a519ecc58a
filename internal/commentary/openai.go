package commentary

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/schema"
)

// OpenAIConfig configures the chat-model generator.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// OpenAIGenerator streams briefings from an OpenAI-compatible chat model.
type OpenAIGenerator struct {
	model *openai.ChatModel
}

// NewOpenAIGenerator builds the production generator. It fails fast on a
// missing API key rather than on the first generation request.
func NewOpenAIGenerator(ctx context.Context, cfg OpenAIConfig) (*OpenAIGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is not configured")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("openai model is not configured")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}

	model, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init chat model: %w", err)
	}

	return &OpenAIGenerator{model: model}, nil
}

// Generate streams the model's response to the prompt. Fragments arrive as
// the model produces them; a model error terminates the stream with that
// error.
func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (*Stream, error) {
	reader, err := g.model.Stream(ctx, []*schema.Message{
		schema.UserMessage(prompt),
	})
	if err != nil {
		return nil, fmt.Errorf("chat model stream failed: %w", err)
	}

	out := newStream(16)
	go func() {
		defer reader.Close()
		for {
			msg, err := reader.Recv()
			if err == io.EOF {
				out.close()
				return
			}
			if err != nil {
				out.fail(fmt.Errorf("chat model stream failed: %w", err))
				return
			}
			if msg.Content != "" {
				out.send(msg.Content)
			}
		}
	}()

	return out, nil
}
