package dictionary

import (
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLazyLoadsOnce(t *testing.T) {
	var calls atomic.Int32
	lazy := NewLazy(func() (*Index, error) {
		calls.Add(1)
		return FromSlice(sampleWords), nil
	})

	var wg sync.WaitGroup
	results := make([]*Index, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			idx, err := lazy.Get()
			assert.NoError(t, err)
			results[i] = idx
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, idx := range results {
		assert.Same(t, results[0], idx)
	}
}

func TestLazyKeepsError(t *testing.T) {
	boom := errors.New("boom")
	lazy := NewLazy(func() (*Index, error) { return nil, boom })

	_, err := lazy.Get()
	assert.ErrorIs(t, err, boom)
	_, err = lazy.Get()
	assert.ErrorIs(t, err, boom)
}

func TestSharedRace(t *testing.T) {
	path := filepath.Join("testdata", "words.txt")

	var wg sync.WaitGroup
	results := make([]*Index, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			idx, err := Shared(path, FormatText)
			assert.NoError(t, err)
			results[i] = idx
		}(i)
	}
	wg.Wait()

	require.NotNil(t, results[0])
	assert.Equal(t, 9, results[0].Len())
	for _, idx := range results {
		assert.Same(t, results[0], idx)
	}

	again, err := Shared("somewhere/else.txt", FormatText)
	require.NoError(t, err)
	assert.Same(t, results[0], again)
}
