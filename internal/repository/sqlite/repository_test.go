package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"event-planner/internal/domain"
	"event-planner/internal/repository"
)

func openTestDB(t *testing.T) (repository.UserRepository, repository.EventRepository) {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "planner.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	users := NewUserRepository(db)
	events := NewEventRepository(db)
	require.NoError(t, users.Init(context.Background()))
	require.NoError(t, events.Init(context.Background()))
	return users, events
}

func TestUserRoundTrip(t *testing.T) {
	ctx := context.Background()
	users, _ := openTestDB(t)

	id, err := users.Create(ctx, &domain.User{Username: "alice", PasswordHash: "hash"})
	require.NoError(t, err)
	require.Equal(t, int64(1), id)

	_, err = users.Create(ctx, &domain.User{Username: "alice", PasswordHash: "other"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	user, err := users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, "hash", user.PasswordHash)

	_, err = users.GetByID(ctx, 42)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestEventRoundTrip(t *testing.T) {
	ctx := context.Background()
	_, events := openTestDB(t)

	event := &domain.Event{
		UserID:      1,
		Name:        "Standup",
		Description: "daily",
		Category:    "Meeting",
		Datetime:    time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		Reminder:    10,
		CreatedAt:   time.Now().UTC(),
	}

	id, err := events.Create(ctx, event)
	require.NoError(t, err)

	got, err := events.Get(ctx, id, 1)
	require.NoError(t, err)
	assert.Equal(t, "Standup", got.Name)
	assert.True(t, got.Datetime.Equal(event.Datetime))

	_, err = events.Get(ctx, id, 2)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	got.Reminder = 5
	require.NoError(t, events.Update(ctx, got))
	got, err = events.Get(ctx, id, 1)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Reminder)

	assert.ErrorIs(t, events.Delete(ctx, id, 2), repository.ErrNotFound)
	require.NoError(t, events.Delete(ctx, id, 1))
	_, err = events.Get(ctx, id, 1)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestEventListOrderedByInsertion(t *testing.T) {
	ctx := context.Background()
	_, events := openTestDB(t)

	for i, name := range []string{"c", "a", "b"} {
		_, err := events.Create(ctx, &domain.Event{
			UserID:    1,
			Name:      name,
			Category:  "Meeting",
			Datetime:  time.Date(2024, 3, 1+i, 9, 0, 0, 0, time.UTC),
			CreatedAt: time.Now().UTC(),
		})
		require.NoError(t, err)
	}

	list, err := events.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "c", list[0].Name)
	assert.Equal(t, "b", list[2].Name)
}
