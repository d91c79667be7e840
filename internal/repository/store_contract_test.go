package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shenikar/traffic_review/internal/models"
	"github.com/shenikar/traffic_review/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeEvents() []models.EventInit {
	return []models.EventInit{
		{VideoRef: "one.mp4", PlateImageRef: "one.jpg", Kind: models.EventKindStopSign, Location: "Main & 1st"},
		{VideoRef: "two.mp4", PlateImageRef: "two.jpg", Kind: models.EventKindRedLight, Location: "Main & 2nd"},
		{VideoRef: "three.mp4", PlateImageRef: "three.jpg", Kind: models.EventKindSpeeding, Location: "Main & 3rd", CreatedAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
	}
}

// runStoreContract проверяет поведение, общее для всех реализаций service.Store
func runStoreContract(t *testing.T, newStore func(t *testing.T) service.Store) {
	t.Run("seed assigns sequential ids and is idempotent", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		seeded, err := store.SeedEvents(ctx, threeEvents())
		require.NoError(t, err)
		assert.Equal(t, 3, seeded)

		seeded, err = store.SeedEvents(ctx, threeEvents())
		require.NoError(t, err)
		assert.Equal(t, 0, seeded)

		stats, err := store.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, stats.TotalEvents)
		assert.Equal(t, 3, stats.PendingEvents)

		seen := map[int64]bool{}
		for i := 0; i < 3; i++ {
			event, err := store.NextUnprocessed(ctx)
			require.NoError(t, err)
			seen[event.ID] = true
			require.NoError(t, store.MarkProcessed(ctx, event.ID))
		}
		assert.Equal(t, map[int64]bool{1: true, 2: true, 3: true}, seen)
	})

	t.Run("next never returns processed events", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		_, err := store.SeedEvents(ctx, threeEvents())
		require.NoError(t, err)

		require.NoError(t, store.MarkProcessed(ctx, 1))
		require.NoError(t, store.MarkProcessed(ctx, 3))

		for i := 0; i < 20; i++ {
			event, err := store.NextUnprocessed(ctx)
			require.NoError(t, err)
			assert.Equal(t, int64(2), event.ID)
			assert.False(t, event.Processed)
			assert.Equal(t, models.EventKindRedLight, event.Kind)
		}
	})

	t.Run("exhausted is stable until reset", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		_, err := store.NextUnprocessed(ctx)
		assert.ErrorIs(t, err, models.ErrQueueExhausted)

		_, err = store.SeedEvents(ctx, threeEvents())
		require.NoError(t, err)
		for id := int64(1); id <= 3; id++ {
			require.NoError(t, store.MarkProcessed(ctx, id))
		}

		for i := 0; i < 3; i++ {
			event, err := store.NextUnprocessed(ctx)
			assert.Nil(t, event)
			assert.ErrorIs(t, err, models.ErrQueueExhausted)
		}

		require.NoError(t, store.Reset(ctx))
		seeded, err := store.SeedEvents(ctx, threeEvents())
		require.NoError(t, err)
		assert.Equal(t, 3, seeded)

		event, err := store.NextUnprocessed(ctx)
		require.NoError(t, err)
		assert.LessOrEqual(t, event.ID, int64(3))
	})

	t.Run("mark processed ignores unknown ids", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		_, err := store.SeedEvents(ctx, threeEvents())
		require.NoError(t, err)

		assert.NoError(t, store.MarkProcessed(ctx, 99))
		assert.NoError(t, store.MarkProcessed(ctx, 1))
		assert.NoError(t, store.MarkProcessed(ctx, 1))

		stats, err := store.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, stats.ProcessedEvents)
	})

	t.Run("record annotation assigns increasing ids and marks event", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		_, err := store.SeedEvents(ctx, threeEvents())
		require.NoError(t, err)

		first := &models.Annotation{
			EventID:            1,
			ReviewerID:         1,
			PlateNumberEntered: "ABC123",
			Decision:           models.DecisionAccepted,
			VehicleSnapshot:    &models.VehicleSnapshot{Make: "Toyota", Model: "Camry", Color: "Silver"},
		}
		require.NoError(t, store.RecordAnnotation(ctx, first))
		assert.Equal(t, int64(1), first.ID)
		assert.False(t, first.CreatedAt.IsZero())

		second := &models.Annotation{EventID: 2, ReviewerID: 1, Decision: models.DecisionRejected, IssueReason: models.IssueFalsePositive}
		require.NoError(t, store.RecordAnnotation(ctx, second))
		assert.Greater(t, second.ID, first.ID)

		for i := 0; i < 20; i++ {
			event, err := store.NextUnprocessed(ctx)
			require.NoError(t, err)
			assert.Equal(t, int64(3), event.ID)
		}

		stats, err := store.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, models.QueueStats{
			TotalEvents:     3,
			ProcessedEvents: 2,
			PendingEvents:   1,
			Annotations:     2,
			Accepted:        1,
			Rejected:        1,
		}, *stats)
	})

	t.Run("annotation for unknown event is kept", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		orphan := &models.Annotation{EventID: 42, ReviewerID: 1, Decision: models.DecisionAccepted}
		require.NoError(t, store.RecordAnnotation(ctx, orphan))
		assert.Equal(t, int64(1), orphan.ID)

		stats, err := store.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, stats.Annotations)
		assert.Equal(t, 0, stats.TotalEvents)
	})

	t.Run("reset restarts sequences and keeps reviewers", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		require.NoError(t, store.UpsertReviewer(ctx, &models.Reviewer{Email: "demo@traffic.com", PasswordHash: "h"}))
		_, err := store.SeedEvents(ctx, threeEvents())
		require.NoError(t, err)
		require.NoError(t, store.RecordAnnotation(ctx, &models.Annotation{EventID: 1, ReviewerID: 1, Decision: models.DecisionAccepted}))

		require.NoError(t, store.Reset(ctx))

		stats, err := store.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, models.QueueStats{}, *stats)

		_, err = store.FindReviewerByEmail(ctx, "demo@traffic.com")
		require.NoError(t, err)

		annotation := &models.Annotation{EventID: 1, ReviewerID: 1, Decision: models.DecisionAccepted}
		require.NoError(t, store.RecordAnnotation(ctx, annotation))
		assert.Equal(t, int64(1), annotation.ID)
	})

	t.Run("reviewers upsert by email", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		_, err := store.FindReviewerByEmail(ctx, "demo@traffic.com")
		assert.ErrorIs(t, err, models.ErrReviewerNotFound)

		reviewer := &models.Reviewer{Email: "demo@traffic.com", PasswordHash: "first", DisplayName: "Demo"}
		require.NoError(t, store.UpsertReviewer(ctx, reviewer))
		firstID := reviewer.ID
		assert.NotZero(t, firstID)

		updated := &models.Reviewer{Email: "demo@traffic.com", PasswordHash: "second", DisplayName: "Demo Annotator"}
		require.NoError(t, store.UpsertReviewer(ctx, updated))
		assert.Equal(t, firstID, updated.ID)

		other := &models.Reviewer{Email: "other@traffic.com", PasswordHash: "x"}
		require.NoError(t, store.UpsertReviewer(ctx, other))
		assert.NotEqual(t, firstID, other.ID)

		found, err := store.FindReviewerByEmail(ctx, "demo@traffic.com")
		require.NoError(t, err)
		assert.Equal(t, "second", found.PasswordHash)
		assert.Equal(t, "Demo Annotator", found.DisplayName)
	})

	t.Run("random selection covers all candidates", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		events := make([]models.EventInit, 5)
		for i := range events {
			events[i] = models.EventInit{VideoRef: fmt.Sprintf("v%d.mp4", i), Kind: models.EventKindSpeeding}
		}
		_, err := store.SeedEvents(ctx, events)
		require.NoError(t, err)

		seen := map[int64]bool{}
		for i := 0; i < 300 && len(seen) < 5; i++ {
			event, err := store.NextUnprocessed(ctx)
			require.NoError(t, err)
			seen[event.ID] = true
		}
		assert.Len(t, seen, 5)
	})
}
