package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"branches-api/internal/model"
)

func TestMemoryUserStoreInsertIfAbsent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := NewMemoryUserStore()

	user := model.User{ID: "u1", Email: "a@x.com", PasswordHash: "hash", CreatedAt: time.Now().UTC()}
	require.NoError(t, store.Create(ctx, user))

	err := store.Create(ctx, model.User{ID: "u2", Email: "a@x.com"})
	require.ErrorIs(t, err, model.ErrEmailTaken)

	found, err := store.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, "u1", found.ID)

	_, err = store.FindByEmail(ctx, "ghost@x.com")
	require.ErrorIs(t, err, model.ErrUserNotFound)
}

func TestMemoryUserStoreConcurrentCreate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := NewMemoryUserStore()

	const workers = 50
	results := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = store.Create(ctx, model.User{ID: "u", Email: "race@x.com"})
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range results {
		if err == nil {
			successes++
		} else {
			require.ErrorIs(t, err, model.ErrEmailTaken)
		}
	}
	require.Equal(t, 1, successes)
}

func TestMemoryBoardStoreSerialIDs(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := NewMemoryBoardStore()

	first, err := store.CreateBoard(ctx, model.Board{Name: "One"})
	require.NoError(t, err)
	second, err := store.CreateBoard(ctx, model.Board{Name: "Two"})
	require.NoError(t, err)
	require.Equal(t, first.ID+1, second.ID)

	boards, err := store.ListBoards(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"One", "Two"}, []string{boards[0].Name, boards[1].Name})
}

func TestMemoryBoardStoreCascade(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := NewMemoryBoardStore()

	board, err := store.CreateBoard(ctx, model.Board{Name: "Project"})
	require.NoError(t, err)
	other, err := store.CreateBoard(ctx, model.Board{Name: "Other"})
	require.NoError(t, err)

	_, err = store.CreateColumn(ctx, board.ID, "Todo")
	require.NoError(t, err)
	kept, err := store.CreateColumn(ctx, other.ID, "Keep")
	require.NoError(t, err)

	require.NoError(t, store.DeleteBoard(ctx, board.ID))

	_, err = store.ListColumns(ctx, board.ID)
	require.ErrorIs(t, err, model.ErrBoardNotFound)

	// Columns of other boards are untouched.
	columns, err := store.ListColumns(ctx, other.ID)
	require.NoError(t, err)
	require.Len(t, columns, 1)
	require.Equal(t, kept.ID, columns[0].ID)
}
