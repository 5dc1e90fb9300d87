package core

import (
	"context"
	"sync"
	"testing"

	"github.com/hpmalabs/hpma/internal/iocache"
	"github.com/stretchr/testify/assert"
)

// TestContextConcurrentAccess tests that context values can be safely accessed concurrently.
func TestContextConcurrentAccess(t *testing.T) {
	mgr := &iocache.MockCacheManager{}
	ctx := withSuppressHeader(context.Background())
	ctx = withRunID(ctx, 12345)
	ctx = contextWithCacheManager(ctx, mgr)

	const numGoroutines = 50
	var wg sync.WaitGroup
	for i := range numGoroutines {
		wg.Go(func() {
			runID, ok := getRunID(ctx)
			assert.True(t, shouldSuppressHeader(ctx), "Goroutine %d: shouldSuppressHeader should be true", i)
			assert.True(t, ok, "Goroutine %d: getRunID should return true", i)
			assert.Equal(t, int64(12345), runID, "Goroutine %d: runID should be 12345", i)
			assert.Same(t, mgr, cacheManagerFromContext(ctx), "Goroutine %d: manager should round-trip", i)
		})
	}
	wg.Wait()
}

// TestContextDefaults tests the values read from an empty context.
func TestContextDefaults(t *testing.T) {
	ctx := context.Background()

	assert.False(t, shouldSuppressHeader(ctx))
	_, ok := getRunID(ctx)
	assert.False(t, ok)
	assert.Nil(t, cacheManagerFromContext(ctx))
	assert.Nil(t, cacheManagerFromContext(contextWithCacheManager(ctx, nil)))
}

// TestContextIsolation tests that derived contexts do not leak values into each other.
func TestContextIsolation(t *testing.T) {
	base := context.Background()
	ctx1 := withRunID(base, 1)
	ctx2 := withRunID(base, 2)
	ctx3 := withSuppressHeader(base)

	id1, _ := getRunID(ctx1)
	id2, _ := getRunID(ctx2)
	assert.Equal(t, int64(1), id1)
	assert.Equal(t, int64(2), id2)

	_, ok := getRunID(ctx3)
	assert.False(t, ok)
	assert.False(t, shouldSuppressHeader(ctx1))
	assert.True(t, shouldSuppressHeader(ctx3))
}
