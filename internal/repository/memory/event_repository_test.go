package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"event-planner/internal/domain"
	"event-planner/internal/repository"
)

func newEvent(userID int64, name string) *domain.Event {
	return &domain.Event{
		UserID:    userID,
		Name:      name,
		Category:  "Meeting",
		Datetime:  time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local),
		Reminder:  10,
		CreatedAt: time.Now(),
	}
}

func TestEventIDsAreNotReusedAfterDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository()

	id1, err := repo.Create(ctx, newEvent(1, "a"))
	require.NoError(t, err)
	id2, err := repo.Create(ctx, newEvent(1, "b"))
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, id2, 1))

	id3, err := repo.Create(ctx, newEvent(1, "c"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), id1)
	assert.NotEqual(t, id2, id3)
	assert.Greater(t, id3, id2)
}

func TestEventListPreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository()

	for _, name := range []string{"c", "a", "b"} {
		_, err := repo.Create(ctx, newEvent(1, name))
		require.NoError(t, err)
	}

	events, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "c", events[0].Name)
	assert.Equal(t, "a", events[1].Name)
	assert.Equal(t, "b", events[2].Name)
}

func TestEventOwnershipScoping(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository()

	id, err := repo.Create(ctx, newEvent(1, "a"))
	require.NoError(t, err)

	_, err = repo.Get(ctx, id, 2)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, id, 2), repository.ErrNotFound)

	other := newEvent(2, "stolen")
	other.ID = id
	assert.ErrorIs(t, repo.Update(ctx, other), repository.ErrNotFound)

	// still intact for the owner
	got, err := repo.Get(ctx, id, 1)
	require.NoError(t, err)
	assert.Equal(t, "a", got.Name)
}

func TestEventUpdateReplacesInPlace(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository()

	id, err := repo.Create(ctx, newEvent(1, "before"))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newEvent(1, "second"))
	require.NoError(t, err)

	updated := newEvent(1, "after")
	updated.ID = id
	require.NoError(t, repo.Update(ctx, updated))

	events, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "after", events[0].Name)
	assert.Equal(t, id, events[0].ID)
}
