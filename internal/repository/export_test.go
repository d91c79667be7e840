package repository

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	"github.com/shenikar/traffic_review/internal/models"
)

// Доступ к содержимому хранилищ только для тестов пакета

// Annotations возвращает копии всех аннотаций в порядке id
func (s *MemoryStore) Annotations() []models.Annotation {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int64, 0, len(s.annotations))
	for id := range s.annotations {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	result := make([]models.Annotation, 0, len(ids))
	for _, id := range ids {
		result = append(result, *s.annotations[id])
	}
	return result
}

// Event возвращает копию события по id
func (s *MemoryStore) Event(id int64) (models.Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event, ok := s.events[id]
	if !ok {
		return models.Event{}, false
	}
	return *event, true
}

// AnnotationsForEvent возвращает аннотации события в порядке id
func (r *SQLiteStore) AnnotationsForEvent(ctx context.Context, eventID int64) ([]models.Annotation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, event_id, reviewer_id, plate_number_entered, decision, issue_reason,
			vehicle_make, vehicle_model, vehicle_color, created_at
		FROM annotations
		WHERE event_id = ?
		ORDER BY id
	`, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list annotations: %w", err)
	}
	defer rows.Close()

	annotations := make([]models.Annotation, 0)
	for rows.Next() {
		var (
			a                                       models.Annotation
			decision, reason, createdAt             string
			vehicleMake, vehicleModel, vehicleColor sql.NullString
		)
		if err := rows.Scan(
			&a.ID,
			&a.EventID,
			&a.ReviewerID,
			&a.PlateNumberEntered,
			&decision,
			&reason,
			&vehicleMake,
			&vehicleModel,
			&vehicleColor,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan annotation row: %w", err)
		}
		a.Decision = models.Decision(decision)
		a.IssueReason = models.IssueReason(reason)
		if vehicleMake.Valid || vehicleModel.Valid || vehicleColor.Valid {
			a.VehicleSnapshot = &models.VehicleSnapshot{Make: vehicleMake.String, Model: vehicleModel.String, Color: vehicleColor.String}
		}
		if a.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		annotations = append(annotations, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error annotation iteration: %w", err)
	}
	return annotations, nil
}
