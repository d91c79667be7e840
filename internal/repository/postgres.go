package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shenikar/traffic_review/internal/models"
)

// PgxPool - подмножество *pgxpool.Pool, используемое хранилищем. Позволяет подменять пул в тестах.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

type PostgresStore struct {
	db  PgxPool
	now func() time.Time
}

func NewPostgresStore(db PgxPool) *PostgresStore {
	return &PostgresStore{
		db:  db,
		now: time.Now,
	}
}

// SeedEvents заполняет таблицу событий в одной транзакции, только если она пуста
func (r *PostgresStore) SeedEvents(ctx context.Context, events []models.EventInit) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin seed transaction: %w", err)
	}

	var count int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM events;`).Scan(&count); err != nil {
		_ = tx.Rollback(ctx)
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	if count > 0 {
		_ = tx.Rollback(ctx)
		return 0, nil
	}

	query := `
		INSERT INTO events (video_ref, plate_image_ref, kind, location, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	now := r.now().UTC()
	for _, init := range events {
		createdAt := init.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}
		if _, err := tx.Exec(ctx, query,
			init.VideoRef,
			init.PlateImageRef,
			string(init.Kind),
			init.Location,
			createdAt,
		); err != nil {
			_ = tx.Rollback(ctx)
			return 0, fmt.Errorf("failed to insert seed event: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit seed transaction: %w", err)
	}
	return len(events), nil
}

// NextUnprocessed выбирает случайное необработанное событие
func (r *PostgresStore) NextUnprocessed(ctx context.Context) (*models.Event, error) {
	query := `
		SELECT id, video_ref, plate_image_ref, kind, location, created_at, processed
		FROM events
		WHERE processed = FALSE
		ORDER BY random()
		LIMIT 1;
	`
	event := &models.Event{}
	var kind string
	err := r.db.QueryRow(ctx, query).Scan(
		&event.ID,
		&event.VideoRef,
		&event.PlateImageRef,
		&kind,
		&event.Location,
		&event.CreatedAt,
		&event.Processed,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrQueueExhausted
		}
		return nil, fmt.Errorf("failed to select unprocessed event: %w", err)
	}
	event.Kind = models.EventKind(kind)
	return event, nil
}

// MarkProcessed помечает событие обработанным. Отсутствие строки ошибкой не считается.
func (r *PostgresStore) MarkProcessed(ctx context.Context, eventID int64) error {
	if _, err := r.db.Exec(ctx, `UPDATE events SET processed = TRUE WHERE id = $1 AND processed = FALSE;`, eventID); err != nil {
		return fmt.Errorf("failed to mark event processed: %w", err)
	}
	return nil
}

// RecordAnnotation вставляет аннотацию и помечает событие обработанным в одной транзакции
func (r *PostgresStore) RecordAnnotation(ctx context.Context, annotation *models.Annotation) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin annotation transaction: %w", err)
	}

	var vehicleMake, vehicleModel, vehicleColor *string
	if s := annotation.VehicleSnapshot; s != nil {
		vehicleMake, vehicleModel, vehicleColor = &s.Make, &s.Model, &s.Color
	}

	query := `
		INSERT INTO annotations (event_id, reviewer_id, plate_number_entered, decision, issue_reason, vehicle_make, vehicle_model, vehicle_color)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id, created_at;
	`
	err = tx.QueryRow(ctx, query,
		annotation.EventID,
		annotation.ReviewerID,
		annotation.PlateNumberEntered,
		string(annotation.Decision),
		string(annotation.IssueReason),
		vehicleMake,
		vehicleModel,
		vehicleColor,
	).Scan(&annotation.ID, &annotation.CreatedAt)
	if err != nil {
		_ = tx.Rollback(ctx)
		return fmt.Errorf("failed to insert annotation: %w", err)
	}

	if _, err := tx.Exec(ctx, `UPDATE events SET processed = TRUE WHERE id = $1 AND processed = FALSE;`, annotation.EventID); err != nil {
		_ = tx.Rollback(ctx)
		return fmt.Errorf("failed to mark event processed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit annotation transaction: %w", err)
	}
	return nil
}

// UpsertReviewer создает аннотатора или обновляет существующего с тем же email
func (r *PostgresStore) UpsertReviewer(ctx context.Context, reviewer *models.Reviewer) error {
	query := `
		INSERT INTO reviewers (email, password_hash, display_name)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET
			password_hash = EXCLUDED.password_hash,
			display_name = EXCLUDED.display_name
		RETURNING id;
	`
	err := r.db.QueryRow(ctx, query, reviewer.Email, reviewer.PasswordHash, reviewer.DisplayName).Scan(&reviewer.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert reviewer: %w", err)
	}
	return nil
}

func (r *PostgresStore) FindReviewerByEmail(ctx context.Context, email string) (*models.Reviewer, error) {
	reviewer := &models.Reviewer{}
	query := `SELECT id, email, password_hash, display_name FROM reviewers WHERE email = $1;`
	err := r.db.QueryRow(ctx, query, email).Scan(
		&reviewer.ID,
		&reviewer.Email,
		&reviewer.PasswordHash,
		&reviewer.DisplayName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrReviewerNotFound
		}
		return nil, fmt.Errorf("failed to find reviewer: %w", err)
	}
	return reviewer, nil
}

// Stats считает события и решения одним запросом
func (r *PostgresStore) Stats(ctx context.Context) (*models.QueueStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM events),
			(SELECT COUNT(*) FROM events WHERE processed = TRUE),
			(SELECT COUNT(*) FROM annotations),
			(SELECT COUNT(*) FROM annotations WHERE decision = 'accepted'),
			(SELECT COUNT(*) FROM annotations WHERE decision = 'rejected');
	`
	stats := &models.QueueStats{}
	err := r.db.QueryRow(ctx, query).Scan(
		&stats.TotalEvents,
		&stats.ProcessedEvents,
		&stats.Annotations,
		&stats.Accepted,
		&stats.Rejected,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get queue stats: %w", err)
	}
	stats.PendingEvents = stats.TotalEvents - stats.ProcessedEvents
	return stats, nil
}

// Reset очищает события и аннотации и перезапускает последовательности id
func (r *PostgresStore) Reset(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `TRUNCATE annotations, events RESTART IDENTITY;`); err != nil {
		return fmt.Errorf("failed to reset store: %w", err)
	}
	return nil
}
