// Package dictionary manages the custom vocabulary used to bias transcription.
package dictionary

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Entry is one custom word with an optional phonetic hint.
type Entry struct {
	Word     string `json:"word"`
	Phonetic string `json:"phonetic"`
	Trained  bool   `json:"trained"`
}

// Store holds vocabulary entries backed by a JSON file.
type Store struct {
	path string

	mu      sync.Mutex
	entries []Entry
}

// NewStore creates a store bound to path. Call Load before first use.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads entries from disk. A missing or malformed file yields an empty store.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	content, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.entries = nil
			return nil
		}
		return fmt.Errorf("read dictionary %q: %w", s.path, err)
	}

	var entries []Entry
	if err := json.Unmarshal(content, &entries); err != nil {
		s.entries = nil
		return nil
	}
	s.entries = entries
	return nil
}

// Save writes all entries back to disk.
func (s *Store) Save() error {
	s.mu.Lock()
	entries := append([]Entry(nil), s.entries...)
	s.mu.Unlock()
	return s.write(entries)
}

func (s *Store) write(entries []Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode dictionary: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create dictionary dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write dictionary %q: %w", s.path, err)
	}
	return nil
}

// Add inserts a word or updates the phonetic hint of an existing one.
func (s *Store) Add(word, phonetic string) (Entry, error) {
	word = strings.TrimSpace(word)
	phonetic = strings.TrimSpace(phonetic)
	if word == "" {
		return Entry{}, errors.New("word is required")
	}

	s.mu.Lock()
	var result Entry
	found := false
	for i := range s.entries {
		if strings.EqualFold(s.entries[i].Word, word) {
			s.entries[i].Phonetic = phonetic
			result = s.entries[i]
			found = true
			break
		}
	}
	if !found {
		result = Entry{Word: word, Phonetic: phonetic}
		s.entries = append(s.entries, result)
	}
	entries := append([]Entry(nil), s.entries...)
	s.mu.Unlock()

	return result, s.write(entries)
}

// Remove deletes a word; returns false when the word was not present.
func (s *Store) Remove(word string) (bool, error) {
	s.mu.Lock()
	removed := false
	for i := range s.entries {
		if strings.EqualFold(s.entries[i].Word, word) {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			removed = true
			break
		}
	}
	entries := append([]Entry(nil), s.entries...)
	s.mu.Unlock()

	if !removed {
		return false, nil
	}
	return true, s.write(entries)
}

// Update replaces an entry's word and phonetic hint.
func (s *Store) Update(oldWord, newWord, phonetic string) (bool, error) {
	oldWord = strings.TrimSpace(oldWord)
	newWord = strings.TrimSpace(newWord)
	if oldWord == "" || newWord == "" {
		return false, errors.New("both old and new word are required")
	}

	s.mu.Lock()
	updated := false
	for i := range s.entries {
		if strings.EqualFold(s.entries[i].Word, oldWord) {
			s.entries[i].Word = newWord
			s.entries[i].Phonetic = strings.TrimSpace(phonetic)
			updated = true
			break
		}
	}
	entries := append([]Entry(nil), s.entries...)
	s.mu.Unlock()

	if !updated {
		return false, nil
	}
	return true, s.write(entries)
}

// MarkTrained flags a word as having completed training.
func (s *Store) MarkTrained(word string) error {
	s.mu.Lock()
	changed := false
	for i := range s.entries {
		if strings.EqualFold(s.entries[i].Word, word) {
			s.entries[i].Trained = true
			changed = true
			break
		}
	}
	entries := append([]Entry(nil), s.entries...)
	s.mu.Unlock()

	if !changed {
		return nil
	}
	return s.write(entries)
}

// Entries returns a snapshot of all entries.
func (s *Store) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Entry(nil), s.entries...)
}

// InitialPrompt builds the vocabulary prompt used to bias the recognizer.
// Phonetic hints render as "Word (hint)" so misheard forms map back.
func (s *Store) InitialPrompt() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) == 0 {
		return ""
	}
	parts := make([]string, 0, len(s.entries))
	for _, entry := range s.entries {
		if entry.Phonetic != "" {
			parts = append(parts, fmt.Sprintf("%s (%s)", entry.Word, entry.Phonetic))
			continue
		}
		parts = append(parts, entry.Word)
	}
	return "Vocabulary: " + strings.Join(parts, ", ") + "."
}

// Hotwords returns the bare word list as a comma-separated string.
func (s *Store) Hotwords() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) == 0 {
		return ""
	}
	words := make([]string, 0, len(s.entries))
	for _, entry := range s.entries {
		words = append(words, entry.Word)
	}
	return strings.Join(words, ", ")
}
