package service

//go:generate mockgen -source=event.go -destination=mocks/event_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"github.com/shenikar/traffic_review/internal/models"
	"github.com/sirupsen/logrus"
)

// EventService определяет контракт очереди событий на проверку
type EventService interface {
	Initialize(ctx context.Context) (int, error)
	Reset(ctx context.Context) (int, error)
	NextEvent(ctx context.Context) (*models.Event, error)
	Stats(ctx context.Context) (*models.QueueStats, error)
}

type eventService struct {
	store      Store
	logger     *logrus.Logger
	seedEvents []models.EventInit
}

func NewEventService(store Store, logger *logrus.Logger, seedEvents []models.EventInit) EventService {
	return &eventService{
		store:      store,
		logger:     logger,
		seedEvents: seedEvents,
	}
}

// Initialize заполняет очередь, если она пуста. Повторный вызов ничего не меняет.
func (s *eventService) Initialize(ctx context.Context) (int, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "event",
		"method":  "Initialize",
	})

	seeded, err := s.store.SeedEvents(ctx, s.seedEvents)
	if err != nil {
		log.WithError(err).Error("Failed to seed events")
		return 0, fmt.Errorf("service: could not seed events: %w", err)
	}

	log.WithField("seeded", seeded).Info("Event store initialized")
	return seeded, nil
}

// Reset очищает очередь и аннотации и заново заполняет очередь
func (s *eventService) Reset(ctx context.Context) (int, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "event",
		"method":  "Reset",
	})
	log.Warn("Resetting event store")

	if err := s.store.Reset(ctx); err != nil {
		log.WithError(err).Error("Failed to reset store")
		return 0, fmt.Errorf("service: could not reset store: %w", err)
	}

	seeded, err := s.store.SeedEvents(ctx, s.seedEvents)
	if err != nil {
		log.WithError(err).Error("Failed to seed events after reset")
		return 0, fmt.Errorf("service: could not seed events: %w", err)
	}

	log.WithField("seeded", seeded).Info("Event store reset")
	return seeded, nil
}

// NextEvent возвращает случайное необработанное событие
func (s *eventService) NextEvent(ctx context.Context) (*models.Event, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "event",
		"method":  "NextEvent",
	})

	event, err := s.store.NextUnprocessed(ctx)
	if err != nil {
		if errors.Is(err, models.ErrQueueExhausted) {
			log.Info("Review queue exhausted")
			return nil, err
		}
		log.WithError(err).Error("Failed to fetch next event")
		return nil, fmt.Errorf("service: could not fetch next event: %w", err)
	}

	log.WithField("event_id", event.ID).Debug("Serving event")
	return event, nil
}

// Stats возвращает сводку по очереди
func (s *eventService) Stats(ctx context.Context) (*models.QueueStats, error) {
	stats, err := s.store.Stats(ctx)
	if err != nil {
		s.logger.WithError(err).WithField("method", "Stats").Error("Failed to read queue stats")
		return nil, fmt.Errorf("service: could not read stats: %w", err)
	}
	return stats, nil
}
