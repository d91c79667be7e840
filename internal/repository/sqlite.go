package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shenikar/traffic_review/internal/models"
)

// Строки не удаляются иначе как через Reset, поэтому INTEGER PRIMARY KEY без AUTOINCREMENT
// дает строго возрастающие id, а после полной очистки нумерация начинается с 1.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS reviewers (
	id            INTEGER PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	display_name  TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS events (
	id              INTEGER PRIMARY KEY,
	video_ref       TEXT NOT NULL,
	plate_image_ref TEXT NOT NULL DEFAULT '',
	kind            TEXT NOT NULL,
	location        TEXT NOT NULL DEFAULT '',
	created_at      TEXT NOT NULL,
	processed       INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS annotations (
	id                   INTEGER PRIMARY KEY,
	event_id             INTEGER NOT NULL,
	reviewer_id          INTEGER NOT NULL,
	plate_number_entered TEXT NOT NULL DEFAULT '',
	decision             TEXT NOT NULL,
	issue_reason         TEXT NOT NULL DEFAULT '',
	vehicle_make         TEXT,
	vehicle_model        TEXT,
	vehicle_color        TEXT,
	created_at           TEXT NOT NULL
);
`

// SQLiteStore - хранилище поверх встроенной базы SQLite
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteStore создает схему, если ее еще нет
func NewSQLiteStore(ctx context.Context, db *sql.DB) (*SQLiteStore, error) {
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return nil, fmt.Errorf("failed to create sqlite schema: %w", err)
	}
	return &SQLiteStore{
		db:  db,
		now: time.Now,
	}, nil
}

func (r *SQLiteStore) SeedEvents(ctx context.Context, events []models.EventInit) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO events (video_ref, plate_image_ref, kind, location, created_at)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare seed insert: %w", err)
	}
	defer stmt.Close()

	now := r.now().UTC()
	for _, init := range events {
		createdAt := init.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}
		if _, err := stmt.ExecContext(ctx,
			init.VideoRef,
			init.PlateImageRef,
			string(init.Kind),
			init.Location,
			formatTime(createdAt),
		); err != nil {
			return 0, fmt.Errorf("failed to insert seed event: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit seed transaction: %w", err)
	}
	return len(events), nil
}

func (r *SQLiteStore) NextUnprocessed(ctx context.Context) (*models.Event, error) {
	query := `
		SELECT id, video_ref, plate_image_ref, kind, location, created_at, processed
		FROM events
		WHERE processed = 0
		ORDER BY RANDOM()
		LIMIT 1
	`
	event := &models.Event{}
	var kind, createdAt string
	err := r.db.QueryRowContext(ctx, query).Scan(
		&event.ID,
		&event.VideoRef,
		&event.PlateImageRef,
		&kind,
		&event.Location,
		&createdAt,
		&event.Processed,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrQueueExhausted
		}
		return nil, fmt.Errorf("failed to select unprocessed event: %w", err)
	}

	event.Kind = models.EventKind(kind)
	if event.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return event, nil
}

func (r *SQLiteStore) MarkProcessed(ctx context.Context, eventID int64) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE events SET processed = 1 WHERE id = ?`, eventID); err != nil {
		return fmt.Errorf("failed to mark event processed: %w", err)
	}
	return nil
}

func (r *SQLiteStore) RecordAnnotation(ctx context.Context, annotation *models.Annotation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin annotation transaction: %w", err)
	}
	defer tx.Rollback()

	var vehicleMake, vehicleModel, vehicleColor sql.NullString
	if s := annotation.VehicleSnapshot; s != nil {
		vehicleMake = sql.NullString{String: s.Make, Valid: true}
		vehicleModel = sql.NullString{String: s.Model, Valid: true}
		vehicleColor = sql.NullString{String: s.Color, Valid: true}
	}

	createdAt := r.now().UTC()
	result, err := tx.ExecContext(ctx, `
		INSERT INTO annotations (event_id, reviewer_id, plate_number_entered, decision, issue_reason, vehicle_make, vehicle_model, vehicle_color, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		annotation.EventID,
		annotation.ReviewerID,
		annotation.PlateNumberEntered,
		string(annotation.Decision),
		string(annotation.IssueReason),
		vehicleMake,
		vehicleModel,
		vehicleColor,
		formatTime(createdAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert annotation: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read annotation id: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `UPDATE events SET processed = 1 WHERE id = ?`, annotation.EventID); err != nil {
		return fmt.Errorf("failed to mark event processed: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit annotation transaction: %w", err)
	}
	annotation.ID = id
	annotation.CreatedAt = createdAt
	return nil
}

func (r *SQLiteStore) UpsertReviewer(ctx context.Context, reviewer *models.Reviewer) error {
	query := `
		INSERT INTO reviewers (email, password_hash, display_name)
		VALUES (?, ?, ?)
		ON CONFLICT (email) DO UPDATE SET
			password_hash = excluded.password_hash,
			display_name = excluded.display_name
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query, reviewer.Email, reviewer.PasswordHash, reviewer.DisplayName).Scan(&reviewer.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert reviewer: %w", err)
	}
	return nil
}

func (r *SQLiteStore) FindReviewerByEmail(ctx context.Context, email string) (*models.Reviewer, error) {
	reviewer := &models.Reviewer{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, display_name FROM reviewers WHERE email = ?`, email,
	).Scan(&reviewer.ID, &reviewer.Email, &reviewer.PasswordHash, &reviewer.DisplayName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrReviewerNotFound
		}
		return nil, fmt.Errorf("failed to find reviewer: %w", err)
	}
	return reviewer, nil
}

func (r *SQLiteStore) Stats(ctx context.Context) (*models.QueueStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM events),
			(SELECT COUNT(*) FROM events WHERE processed = 1),
			(SELECT COUNT(*) FROM annotations),
			(SELECT COUNT(*) FROM annotations WHERE decision = 'accepted'),
			(SELECT COUNT(*) FROM annotations WHERE decision = 'rejected')
	`
	stats := &models.QueueStats{}
	err := r.db.QueryRowContext(ctx, query).Scan(
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

func (r *SQLiteStore) Reset(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin reset transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{`DELETE FROM annotations`, `DELETE FROM events`} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to reset store: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reset transaction: %w", err)
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", value, err)
	}
	return t, nil
}
