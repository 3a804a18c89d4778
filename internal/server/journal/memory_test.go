package journal

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_NewestFirst(t *testing.T) {
	r := NewMemoryRepository(0)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, r.Save(ctx, &Record{ID: uuid.New(), FileName: fmt.Sprintf("f%d", i)}))
	}

	got, err := r.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "f2", got[0].FileName)
	assert.Equal(t, "f1", got[1].FileName)

	all, err := r.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestMemoryRepository_SaveReplacesByID(t *testing.T) {
	r := NewMemoryRepository(10)
	ctx := context.Background()
	rec := &Record{ID: uuid.New(), Status: StatusOrphaned}

	require.NoError(t, r.Save(ctx, rec))
	rec.Status = StatusCompensated
	require.NoError(t, r.Save(ctx, rec))

	got, err := r.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, StatusCompensated, got[0].Status)
}

func TestMemoryRepository_CapacityAndCopies(t *testing.T) {
	r := NewMemoryRepository(2)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, r.Save(ctx, &Record{ID: uuid.New(), FileName: fmt.Sprintf("f%d", i)}))
	}

	got, err := r.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "f4", got[0].FileName)

	got[0].FileName = "mutated"
	again, _ := r.Recent(ctx, 1)
	assert.Equal(t, "f4", again[0].FileName)
}

func TestMemoryRepository_Concurrent(t *testing.T) {
	r := NewMemoryRepository(100)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = r.Save(ctx, &Record{ID: uuid.New()})
			_, _ = r.Recent(ctx, 5)
		}()
	}
	wg.Wait()

	got, err := r.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, got, 50)
}
