package service

//go:generate mockgen -source=lookup.go -destination=mocks/lookup_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strings"

	"github.com/shenikar/traffic_review/internal/models"
	"github.com/sirupsen/logrus"
)

// LookupService определяет контракт поиска регистрационных данных по номеру
type LookupService interface {
	Lookup(ctx context.Context, plate string) (*models.VehicleRecord, error)
}

type lookupService struct {
	gateway LookupGateway
	cache   VehicleCache
	logger  *logrus.Logger
}

// NewLookupService создает сервис поиска. cache может быть nil.
func NewLookupService(gateway LookupGateway, cache VehicleCache, logger *logrus.Logger) LookupService {
	return &lookupService{
		gateway: gateway,
		cache:   cache,
		logger:  logger,
	}
}

// NormalizePlate приводит номер к верхнему регистру и убирает пробелы
func NormalizePlate(plate string) string {
	return strings.ToUpper(strings.Join(strings.Fields(plate), ""))
}

// Lookup ищет запись сначала в кэше, затем во внешнем реестре.
// Ошибки кэша не прерывают запрос.
func (s *lookupService) Lookup(ctx context.Context, plate string) (*models.VehicleRecord, error) {
	plate = NormalizePlate(plate)
	log := s.logger.WithFields(logrus.Fields{
		"service": "lookup",
		"method":  "Lookup",
		"plate":   plate,
	})

	if plate == "" {
		return nil, models.NewValidationError("plateNumber", "is required")
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, plate)
		if err != nil {
			log.WithError(err).Warn("Vehicle cache read failed")
		} else if cached != nil {
			log.Debug("Vehicle record served from cache")
			return cached, nil
		}
	}

	record, err := s.gateway.Lookup(ctx, plate)
	if err != nil {
		log.WithError(err).Error("Vehicle registry lookup failed")
		return nil, fmt.Errorf("service: vehicle lookup failed: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, record); err != nil {
			log.WithError(err).Warn("Vehicle cache write failed")
		}
	}

	log.Info("Vehicle record looked up")
	return record, nil
}
