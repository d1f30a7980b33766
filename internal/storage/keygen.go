package storage

import (
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// photoKeyNamespace prefixes every progress photo key so the bucket can
// hold other asset classes later without collisions.
const photoKeyNamespace = "progress-photos"

var keyStampReplacer = strings.NewReplacer(":", "-", ".", "-")

// KeyGenerator produces collision-resistant, owner-scoped object keys of
// the form progress-photos/<ownerID>/<timestamp>-<uuid>. The timestamp
// component is strictly increasing per process so keys for one owner sort
// by creation order; the UUID makes collisions negligible even across
// processes issuing keys at the same instant.
type KeyGenerator struct {
	mu   sync.Mutex
	last time.Time
	now  func() time.Time
}

// NewKeyGenerator returns a KeyGenerator using the wall clock.
func NewKeyGenerator() *KeyGenerator {
	return &KeyGenerator{now: time.Now}
}

// PhotoKey derives a new object key for a photo owned by ownerID.
func (g *KeyGenerator) PhotoKey(ownerID string) string {
	stamp := g.tick().Format("2006-01-02T15:04:05.000Z")
	stamp = keyStampReplacer.Replace(stamp)
	return path.Join(photoKeyNamespace, ownerID, fmt.Sprintf("%s-%s", stamp, uuid.NewString()))
}

// tick returns a UTC timestamp strictly after any previously returned one.
func (g *KeyGenerator) tick() time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()
	t := g.now().UTC()
	if !t.After(g.last) {
		t = g.last.Add(time.Millisecond)
	}
	g.last = t
	return t
}
