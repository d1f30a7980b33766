package storage

import (
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhotoKeyShape(t *testing.T) {
	gen := NewKeyGenerator()

	key := gen.PhotoKey("owner-1")
	require.True(t, strings.HasPrefix(key, "progress-photos/owner-1/"),
		"key %q must be namespaced under the owner", key)

	parts := strings.Split(key, "/")
	require.Len(t, parts, 3)
	assert.NotEmpty(t, parts[2])
	// Colons and dots are replaced so the key stays URL- and
	// filesystem-friendly.
	assert.NotContains(t, parts[2], ":")
	assert.NotContains(t, parts[2], ".")
}

func TestPhotoKeyNeverRepeats(t *testing.T) {
	gen := NewKeyGenerator()

	const n = 10000
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		key := gen.PhotoKey("owner-1")
		_, dup := seen[key]
		require.False(t, dup, "duplicate key %q after %d generations", key, i)
		seen[key] = struct{}{}
	}
}

func TestPhotoKeyTimestampMonotonic(t *testing.T) {
	gen := NewKeyGenerator()

	keys := make([]string, 0, 100)
	for i := 0; i < 100; i++ {
		keys = append(keys, gen.PhotoKey("owner-1"))
	}

	// Timestamps are strictly increasing per process, so per-owner keys
	// come out already in lexicographic order.
	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)
	assert.Equal(t, sorted, keys)
}

func TestPhotoKeyConcurrent(t *testing.T) {
	gen := NewKeyGenerator()

	const workers = 8
	const perWorker = 500

	var mu sync.Mutex
	seen := make(map[string]struct{}, workers*perWorker)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := make([]string, 0, perWorker)
			for i := 0; i < perWorker; i++ {
				local = append(local, gen.PhotoKey("owner-1"))
			}
			mu.Lock()
			defer mu.Unlock()
			for _, key := range local {
				seen[key] = struct{}{}
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, workers*perWorker, "concurrent generation must never collide")
}

func TestPhotoKeyOwnersDoNotCollide(t *testing.T) {
	gen := NewKeyGenerator()

	a := gen.PhotoKey("owner-a")
	b := gen.PhotoKey("owner-b")
	assert.True(t, strings.HasPrefix(a, "progress-photos/owner-a/"))
	assert.True(t, strings.HasPrefix(b, "progress-photos/owner-b/"))
	assert.NotEqual(t, a, b)
}
