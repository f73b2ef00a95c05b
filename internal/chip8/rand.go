package chip8

import (
	"math/rand"
	"time"
)

// Randomizer supplies the random byte consumed by Cxkk. It is injected into
// the VM so tests can pin it to a deterministic sequence.
type Randomizer interface {
	Byte() byte
}

// defaultRandomizer is a math/rand source seeded at construction time.
type defaultRandomizer struct {
	r *rand.Rand
}

func newDefaultRandomizer() *defaultRandomizer {
	return &defaultRandomizer{r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (d *defaultRandomizer) Byte() byte {
	return byte(d.r.Intn(256))
}

// FixedRandomizer always returns the same byte. Useful in tests that need
// Cxkk's masking behavior without caring about actual randomness.
type FixedRandomizer byte

func (f FixedRandomizer) Byte() byte { return byte(f) }

// SequenceRandomizer cycles through a fixed sequence of bytes, repeating once
// exhausted. Useful for tests that want to observe several distinct RND
// draws deterministically.
type SequenceRandomizer struct {
	bytes []byte
	pos   int
}

// NewSequenceRandomizer returns a Randomizer that yields bytes in order,
// wrapping around once the sequence is exhausted.
func NewSequenceRandomizer(bytes ...byte) *SequenceRandomizer {
	return &SequenceRandomizer{bytes: bytes}
}

func (s *SequenceRandomizer) Byte() byte {
	if len(s.bytes) == 0 {
		return 0
	}
	b := s.bytes[s.pos%len(s.bytes)]
	s.pos++
	return b
}
