package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/faculty/internal/entities"
	"github.com/mrlokans/faculty/internal/testutil"
)

func uintPtr(v uint) *uint { return &v }

func TestRepository_LogEvent(t *testing.T) {
	repo := NewRepository(testutil.NewTestDB(t))

	event := &entities.AuditEvent{
		EventType:   entities.AuditEventCreate,
		Action:      "student_create",
		Description: "Created student Ada Lovelace",
		EntityType:  "student",
		EntityID:    uintPtr(1),
		Status:      entities.AuditStatusSuccess,
	}

	err := repo.LogEvent(context.Background(), event)
	require.NoError(t, err)
	assert.NotZero(t, event.ID)
	assert.False(t, event.CreatedAt.IsZero())
}

func TestRepository_GetEvents(t *testing.T) {
	repo := NewRepository(testutil.NewTestDB(t))
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		require.NoError(t, repo.LogEvent(ctx, &entities.AuditEvent{
			EventType:  entities.AuditEventCreate,
			Action:     "student_create",
			EntityType: "student",
			EntityID:   uintPtr(uint(i + 1)),
			Status:     entities.AuditStatusSuccess,
			CreatedAt:  time.Now().Add(time.Duration(-i) * time.Hour),
		}))
	}
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.LogEvent(ctx, &entities.AuditEvent{
			EventType:  entities.AuditEventDelete,
			Action:     "grade_delete",
			EntityType: "grade",
			EntityID:   uintPtr(7),
			Status:     entities.AuditStatusSuccess,
		}))
	}

	t.Run("get all events", func(t *testing.T) {
		events, total, err := repo.GetEvents(ctx, Query{}, 50, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(20), total)
		assert.Len(t, events, 20)
	})

	t.Run("filter by type", func(t *testing.T) {
		events, total, err := repo.GetEvents(ctx, Query{EventType: entities.AuditEventDelete}, 50, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
		for _, e := range events {
			assert.Equal(t, entities.AuditEventDelete, e.EventType)
		}
	})

	t.Run("filter by entity", func(t *testing.T) {
		_, total, err := repo.GetEvents(ctx, Query{EntityType: "student", EntityID: 3}, 50, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("pagination", func(t *testing.T) {
		events, total, err := repo.GetEvents(ctx, Query{EntityType: "student"}, 5, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(15), total)
		assert.Len(t, events, 5)

		events2, _, err := repo.GetEvents(ctx, Query{EntityType: "student"}, 5, 5)
		require.NoError(t, err)
		assert.Len(t, events2, 5)
		assert.NotEqual(t, events[0].ID, events2[0].ID)
	})

	t.Run("order by created_at desc", func(t *testing.T) {
		events, _, err := repo.GetEvents(ctx, Query{}, 10, 0)
		require.NoError(t, err)
		for i := 1; i < len(events); i++ {
			assert.False(t, events[i-1].CreatedAt.Before(events[i].CreatedAt))
		}
	})
}

func TestRepository_GetRecentEvents(t *testing.T) {
	repo := NewRepository(testutil.NewTestDB(t))
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.LogEvent(ctx, &entities.AuditEvent{
		EventType: entities.AuditEventCreate,
		Action:    "old_create",
		Status:    entities.AuditStatusSuccess,
		CreatedAt: now.Add(-48 * time.Hour),
	}))
	require.NoError(t, repo.LogEvent(ctx, &entities.AuditEvent{
		EventType: entities.AuditEventDelete,
		Action:    "recent_delete",
		Status:    entities.AuditStatusSuccess,
		CreatedAt: now.Add(-1 * time.Hour),
	}))

	events, err := repo.GetRecentEvents(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "recent_delete", events[0].Action)
}

func TestRepository_DeleteOldEvents(t *testing.T) {
	repo := NewRepository(testutil.NewTestDB(t))
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.LogEvent(ctx, &entities.AuditEvent{
		EventType: entities.AuditEventCreate,
		Action:    "old_create",
		Status:    entities.AuditStatusSuccess,
		CreatedAt: now.Add(-48 * time.Hour),
	}))
	require.NoError(t, repo.LogEvent(ctx, &entities.AuditEvent{
		EventType: entities.AuditEventDelete,
		Action:    "new_delete",
		Status:    entities.AuditStatusSuccess,
		CreatedAt: now.Add(-1 * time.Hour),
	}))

	deleted, err := repo.DeleteOldEvents(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	events, total, err := repo.GetEvents(ctx, Query{}, 50, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, events, 1)
	assert.Equal(t, "new_delete", events[0].Action)
}

func TestRepository_GetEventByID(t *testing.T) {
	repo := NewRepository(testutil.NewTestDB(t))
	ctx := context.Background()

	event := &entities.AuditEvent{
		EventType: entities.AuditEventUpdate,
		Action:    "student_update",
		Status:    entities.AuditStatusSuccess,
	}
	require.NoError(t, repo.LogEvent(ctx, event))

	t.Run("existing event", func(t *testing.T) {
		found, err := repo.GetEventByID(ctx, event.ID)
		require.NoError(t, err)
		assert.Equal(t, "student_update", found.Action)
	})

	t.Run("non-existing event", func(t *testing.T) {
		_, err := repo.GetEventByID(ctx, 999)
		assert.Error(t, err)
	})
}
