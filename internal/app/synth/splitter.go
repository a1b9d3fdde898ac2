package synth

import (
	"fmt"
	"strings"
	"sync"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

// SentenceSplitter wraps the punkt tokenizer, which is built on first use
type SentenceSplitter struct {
	mu        sync.Mutex
	tokenizer *sentences.DefaultSentenceTokenizer
}

// NewSentenceSplitter creates an uninitialised splitter
func NewSentenceSplitter() *SentenceSplitter {
	return &SentenceSplitter{}
}

func (s *SentenceSplitter) get() (*sentences.DefaultSentenceTokenizer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tokenizer == nil {
		tokenizer, err := english.NewSentenceTokenizer(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to load sentence tokenizer: %w", err)
		}
		s.tokenizer = tokenizer
	}
	return s.tokenizer, nil
}

// Split returns the non-empty sentences of text in order
func (s *SentenceSplitter) Split(text string) ([]string, error) {
	tokenizer, err := s.get()
	if err != nil {
		return nil, err
	}

	var out []string
	for _, sentence := range tokenizer.Tokenize(text) {
		if trimmed := strings.TrimSpace(sentence.Text); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out, nil
}
