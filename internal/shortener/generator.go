package shortener

import (
	"fmt"
	"strings"
	"sync"

	"github.com/jaevor/go-nanoid"
)

// Alphabet is the case-sensitive alphanumeric alphabet hashes are drawn from.
const Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// nanoid only builds generators for lengths within this window.
const (
	minChunk = 2
	maxChunk = 255
)

// Generator produces random candidate hashes. It never consults storage.
type Generator interface {
	Generate(length int) (string, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(length int) (string, error)

func (f GeneratorFunc) Generate(length int) (string, error) {
	return f(length)
}

// NanoidGenerator draws hashes uniformly from an ASCII alphabet using nanoid.
// One nanoid generator is built lazily per chunk length and reused.
type NanoidGenerator struct {
	alphabet string
	mu       sync.Mutex
	byLength map[int]func() string
}

// NewNanoidGenerator creates a generator over Alphabet.
func NewNanoidGenerator() *NanoidGenerator {
	g, _ := NewNanoidGeneratorWithAlphabet(Alphabet)

	return g
}

// NewNanoidGeneratorWithAlphabet creates a generator over a custom ASCII alphabet.
func NewNanoidGeneratorWithAlphabet(alphabet string) (*NanoidGenerator, error) {
	g := &NanoidGenerator{
		alphabet: alphabet,
		byLength: make(map[int]func() string),
	}

	if _, err := g.chunk(minChunk); err != nil {
		return nil, fmt.Errorf("alphabet %q: %w", alphabet, err)
	}

	return g, nil
}

// Generate returns exactly length characters from the alphabet.
func (g *NanoidGenerator) Generate(length int) (string, error) {
	if length < 1 {
		return "", fmt.Errorf("%w: %d", ErrInvalidLength, length)
	}

	var b strings.Builder

	b.Grow(length)

	for remaining := length; remaining > 0; {
		size := min(max(remaining, minChunk), maxChunk)

		next, err := g.chunk(size)
		if err != nil {
			return "", err
		}

		id := next()
		if len(id) > remaining {
			id = id[:remaining]
		}

		b.WriteString(id)
		remaining -= len(id)
	}

	return b.String(), nil
}

func (g *NanoidGenerator) chunk(size int) (func() string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if next, ok := g.byLength[size]; ok {
		return next, nil
	}

	next, err := nanoid.CustomASCII(g.alphabet, size)
	if err != nil {
		return nil, err
	}

	g.byLength[size] = next

	return next, nil
}
