package dictionary

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Service provides case-insensitive word lookup against a static word list
type Service struct {
	logger *slog.Logger

	mu     sync.RWMutex
	words  map[string]struct{}
	loaded bool
}

// New creates a new DictionaryService
func New(logger *slog.Logger) *Service {
	return &Service{
		logger: logger.With(slog.String("component", "dictionary")),
		words:  make(map[string]struct{}),
	}
}

// Normalize upper-cases a word and folds Ё into Е
func Normalize(word string) string {
	word = strings.ToUpper(strings.TrimSpace(word))
	return strings.ReplaceAll(word, "Ё", "Е")
}

// LoadFromFile loads dictionary words from a file (whitespace separated)
func (s *Service) LoadFromFile(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	words, err := ReadWords(file)
	if err != nil {
		return fmt.Errorf("read dictionary %s: %w", path, err)
	}

	if err := s.loadWords(words); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "dictionary loaded",
		slog.String("path", path),
		slog.Int("word_count", s.WordCount()),
	)
	return nil
}

// LoadWords directly loads a slice of words (useful for testing)
func (s *Service) LoadWords(words []string) error {
	return s.loadWords(words)
}

func (s *Service) loadWords(words []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.words = make(map[string]struct{}, len(words))
	for _, word := range words {
		if w := Normalize(word); w != "" {
			s.words[w] = struct{}{}
		}
	}
	s.loaded = true
	return nil
}

// Contains checks if a word exists in the dictionary
func (s *Service) Contains(word string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return false
	}

	_, ok := s.words[Normalize(word)]
	return ok
}

// IsLoaded returns whether the dictionary has been loaded
func (s *Service) IsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// WordCount returns the number of words in the dictionary
func (s *Service) WordCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.words)
}

// ReadWords splits r into whitespace separated words
func ReadWords(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		words = append(words, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// NormalizeList normalizes every word and drops duplicates, keeping the
// first occurrence so the original order is preserved
func NormalizeList(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, word := range words {
		w := Normalize(word)
		if w == "" {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// WriteList writes one word per line
func WriteList(w io.Writer, words []string) error {
	bw := bufio.NewWriter(w)
	for _, word := range words {
		if _, err := bw.WriteString(word + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Lookup is the dictionary collaborator consumed by the game controller
type Lookup interface {
	Contains(word string) bool
}

var _ Lookup = (*Service)(nil)
