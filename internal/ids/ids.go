// Package ids generates sortable unique identifiers for sessions and
// documents.
package ids

import (
	"crypto/rand"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Generator produces ULIDs. Monotonic entropy is not safe for concurrent use,
// so reads are serialised.
type Generator struct {
	mu      sync.Mutex
	entropy io.Reader
	now     func() time.Time
}

// NewGenerator constructs a generator backed by crypto/rand.
func NewGenerator() *Generator {
	return &Generator{
		entropy: ulid.Monotonic(rand.Reader, 0),
		now:     time.Now,
	}
}

// NewGeneratorWith allows tests to pin the clock and entropy source.
func NewGeneratorWith(now func() time.Time, entropy io.Reader) *Generator {
	g := NewGenerator()
	if now != nil {
		g.now = now
	}
	if entropy != nil {
		g.entropy = entropy
	}
	return g
}

// New returns a fresh ULID string.
func (g *Generator) New() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(g.now()), g.entropy).String()
}

// Valid reports whether s parses as a ULID.
func Valid(s string) bool {
	_, err := ulid.ParseStrict(s)
	return err == nil
}

var defaultGenerator = NewGenerator()

// New returns a ULID from the package generator.
func New() string {
	return defaultGenerator.New()
}
