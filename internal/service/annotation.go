package service

//go:generate mockgen -source=annotation.go -destination=mocks/annotation_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shenikar/traffic_review/internal/models"
	"github.com/shenikar/traffic_review/internal/webhook"
	"github.com/sirupsen/logrus"
)

// AnnotationService определяет контракт записи решений аннотатора
type AnnotationService interface {
	Record(ctx context.Context, input models.AnnotationInput) (*models.Annotation, error)
}

type annotationService struct {
	store     Store
	publisher webhook.Publisher
	logger    *logrus.Logger
}

func NewAnnotationService(store Store, publisher webhook.Publisher, logger *logrus.Logger) AnnotationService {
	return &annotationService{
		store:     store,
		publisher: publisher,
		logger:    logger,
	}
}

// Record проверяет решение, сохраняет аннотацию и помечает событие обработанным.
// При ошибке валидации хранилище не затрагивается.
func (s *annotationService) Record(ctx context.Context, input models.AnnotationInput) (*models.Annotation, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "annotation",
		"method":      "Record",
		"event_id":    input.EventID,
		"reviewer_id": input.ReviewerID,
		"decision":    input.Decision,
	})

	if err := validateAnnotation(input); err != nil {
		log.WithError(err).Warn("Annotation rejected by validation")
		return nil, err
	}

	annotation := &models.Annotation{
		EventID:            input.EventID,
		ReviewerID:         input.ReviewerID,
		PlateNumberEntered: strings.TrimSpace(input.PlateNumberEntered),
		Decision:           input.Decision,
		VehicleSnapshot:    normalizeSnapshot(input.VehicleSnapshot),
	}
	// Причина хранится только для отклоненных событий
	if input.Decision == models.DecisionRejected {
		annotation.IssueReason = input.IssueReason
	}

	if err := s.store.RecordAnnotation(ctx, annotation); err != nil {
		log.WithError(err).Error("Failed to record annotation")
		return nil, fmt.Errorf("service: could not record annotation: %w", err)
	}
	log.WithField("annotation_id", annotation.ID).Info("Annotation recorded")

	event := webhook.AnnotationEvent{
		Type:       webhook.EventAnnotationRecorded,
		Annotation: *annotation,
		Timestamp:  time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.WithError(err).Warn("Failed to publish annotation webhook")
	}

	return annotation, nil
}

func validateAnnotation(input models.AnnotationInput) error {
	if input.EventID <= 0 {
		return models.NewValidationError("eventId", "is required")
	}
	if input.ReviewerID <= 0 {
		return models.NewValidationError("reviewerId", "is required")
	}
	if input.Decision == "" {
		return models.NewValidationError("decision", "is required")
	}
	if !input.Decision.IsValid() {
		return models.NewValidationError("decision", "must be one of accepted, rejected")
	}
	// При принятии причина не проверяется и не сохраняется
	if input.Decision != models.DecisionRejected {
		return nil
	}
	if input.IssueReason == "" {
		return models.NewValidationError("issueReason", "is required when decision is rejected")
	}
	if !input.IssueReason.IsValid() {
		return models.NewValidationError("issueReason", "must be one of "+issueReasonList())
	}
	return nil
}

func issueReasonList() string {
	reasons := models.IssueReasons()
	names := make([]string, len(reasons))
	for i, reason := range reasons {
		names[i] = string(reason)
	}
	return strings.Join(names, ", ")
}

func normalizeSnapshot(snapshot *models.VehicleSnapshot) *models.VehicleSnapshot {
	if snapshot == nil || (snapshot.Make == "" && snapshot.Model == "" && snapshot.Color == "") {
		return nil
	}
	copied := *snapshot
	return &copied
}
