// apps/go-term/internal/words/words.go
//
// Provides the word source for the game.
//
// Responsibilities:
//   - Load the dictionary from a configured file or fall back to the list
//     embedded in the assets package.
//   - Answer dictionary lookups and pick random local solutions.
//
// Constraints:
//   • Words must be 5 alphabetic letters (a–z); other entries are skipped.
//   • Lists are normalized to lowercase.
//   • A List is read-only after Load and safe for concurrent use.

package words

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"

	"github.com/robalobadob/wordle/apps/go-term/assets"
	"github.com/robalobadob/wordle/apps/go-term/internal/game"
)

// ErrEmpty is returned when a source yields no usable words.
var ErrEmpty = errors.New("words: list is empty")

// List is a loaded dictionary.
type List struct {
	words []string            // in source order, deduplicated
	set   map[string]struct{} // lookup
}

// Load reads the dictionary at path. An empty path selects the bundled list.
func Load(path string) (*List, error) {
	var (
		raw []string
		err error
	)
	if path == "" {
		raw, err = assets.WordList()
	} else {
		raw, err = readWordFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("words: load %q: %w", path, err)
	}
	return New(raw)
}

// New builds a List from raw entries, dropping invalid ones and duplicates.
func New(raw []string) (*List, error) {
	l := &List{set: make(map[string]struct{}, len(raw))}
	for _, w := range raw {
		if !Valid(w) {
			continue
		}
		if _, dup := l.set[w]; dup {
			continue
		}
		l.set[w] = struct{}{}
		l.words = append(l.words, w)
	}
	if len(l.words) == 0 {
		return nil, ErrEmpty
	}
	return l, nil
}

// readWordFile loads one word per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return assets.ReadLines(f)
}

// Valid reports whether w is game.WordLength lowercase ASCII letters.
func Valid(w string) bool {
	if len(w) != game.WordLength {
		return false
	}
	for _, r := range w {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// Contains reports whether w is in the dictionary.
func (l *List) Contains(w string) bool {
	_, ok := l.set[w]
	return ok
}

// Random returns a cryptographically random word from the list.
func (l *List) Random() (string, error) {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(len(l.words))))
	if err != nil {
		return "", fmt.Errorf("words: random pick: %w", err)
	}
	return l.words[nBig.Int64()], nil
}

// Len returns the number of loaded words.
func (l *List) Len() int { return len(l.words) }

// Words returns a copy of the list in source order.
func (l *List) Words() []string {
	return append([]string(nil), l.words...)
}
