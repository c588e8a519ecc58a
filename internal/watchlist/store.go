// Package watchlist persists the user's named symbol lists as a single
// JSON document. The acquisition core only reads symbol lists from it; the
// CRUD surface exists for the UI layer.
package watchlist

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// List is one named watchlist.
type List struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Symbols []string `json:"symbols"`
}

// Data is the persisted document.
type Data struct {
	Lists []List `json:"lists"`
}

// Store reads and writes the watchlist document at a fixed path. All
// operations take the whole document through a read-modify-write cycle
// under one mutex; the file is small and contention irrelevant.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a Store backed by the JSON document at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load returns the current document. A missing or unreadable file yields
// an empty document, not an error: first run has no watchlists yet.
func (s *Store) Load() Data {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() Data {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return Data{}
	}
	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return Data{}
	}
	return data
}

func (s *Store) save(data Data) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create watchlist directory: %w", err)
		}
	}
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode watchlists: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write watchlists: %w", err)
	}
	return nil
}

// Create adds a new empty list and returns the updated document.
func (s *Store) Create(name string) (Data, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.load()
	data.Lists = append(data.Lists, List{
		ID:      "wl_" + uuid.NewString(),
		Name:    name,
		Symbols: []string{},
	})
	return data, s.save(data)
}

// Rename changes a list's display name.
func (s *Store) Rename(id, name string) (Data, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.load()
	for i := range data.Lists {
		if data.Lists[i].ID == id {
			data.Lists[i].Name = name
			return data, s.save(data)
		}
	}
	return data, fmt.Errorf("watchlist %s not found", id)
}

// Delete removes a list.
func (s *Store) Delete(id string) (Data, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.load()
	lists := data.Lists[:0]
	found := false
	for _, l := range data.Lists {
		if l.ID == id {
			found = true
			continue
		}
		lists = append(lists, l)
	}
	data.Lists = lists
	if !found {
		return data, fmt.Errorf("watchlist %s not found", id)
	}
	return data, s.save(data)
}

// AddSymbol adds an upper-cased ticker to a list, ignoring duplicates.
func (s *Store) AddSymbol(id, ticker string) (Data, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return s.load(), fmt.Errorf("ticker is empty")
	}

	data := s.load()
	for i := range data.Lists {
		if data.Lists[i].ID != id {
			continue
		}
		for _, existing := range data.Lists[i].Symbols {
			if existing == ticker {
				return data, nil
			}
		}
		data.Lists[i].Symbols = append(data.Lists[i].Symbols, ticker)
		return data, s.save(data)
	}
	return data, fmt.Errorf("watchlist %s not found", id)
}

// RemoveSymbol removes a ticker from a list.
func (s *Store) RemoveSymbol(id, ticker string) (Data, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	data := s.load()
	for i := range data.Lists {
		if data.Lists[i].ID != id {
			continue
		}
		symbols := data.Lists[i].Symbols[:0]
		for _, existing := range data.Lists[i].Symbols {
			if existing != ticker {
				symbols = append(symbols, existing)
			}
		}
		data.Lists[i].Symbols = symbols
		return data, s.save(data)
	}
	return data, fmt.Errorf("watchlist %s not found", id)
}

// Symbols returns one list's symbols, or nil for an unknown id.
func (s *Store) Symbols(id string) []string {
	data := s.Load()
	for _, l := range data.Lists {
		if l.ID == id {
			return l.Symbols
		}
	}
	return nil
}

// AllSymbols returns the deduplicated, sorted union of every list.
func (s *Store) AllSymbols() []string {
	data := s.Load()
	seen := make(map[string]struct{})
	var symbols []string
	for _, l := range data.Lists {
		for _, sym := range l.Symbols {
			if _, ok := seen[sym]; ok {
				continue
			}
			seen[sym] = struct{}{}
			symbols = append(symbols, sym)
		}
	}
	sort.Strings(symbols)
	return symbols
}
