package service

//go:generate mockgen -source=store.go -destination=mocks/store_mock.go -package=mocks

import (
	"context"

	"github.com/shenikar/traffic_review/internal/models"
)

// Store определяет контракт хранилища очереди проверки. Набор операций закрыт:
// никакого языка запросов поверх него нет.
type Store interface {
	// SeedEvents добавляет события, только если хранилище событий пусто.
	// Идентификаторы назначаются последовательно с 1 в порядке входа.
	SeedEvents(ctx context.Context, events []models.EventInit) (int, error)
	// NextUnprocessed выбирает случайное необработанное событие или возвращает models.ErrQueueExhausted
	NextUnprocessed(ctx context.Context) (*models.Event, error)
	// MarkProcessed помечает событие обработанным; неизвестный id молча игнорируется
	MarkProcessed(ctx context.Context, eventID int64) error
	// RecordAnnotation атомарно добавляет аннотацию (назначая ID и CreatedAt) и помечает событие обработанным
	RecordAnnotation(ctx context.Context, annotation *models.Annotation) error
	UpsertReviewer(ctx context.Context, reviewer *models.Reviewer) error
	// FindReviewerByEmail возвращает models.ErrReviewerNotFound при промахе
	FindReviewerByEmail(ctx context.Context, email string) (*models.Reviewer, error)
	Stats(ctx context.Context) (*models.QueueStats, error)
	// Reset удаляет события и аннотации и сбрасывает счетчики идентификаторов. Аннотаторы сохраняются.
	Reset(ctx context.Context) error
}

// VehicleCache - кэш результатов запросов в DMV
type VehicleCache interface {
	// Get возвращает nil, nil при промахе
	Get(ctx context.Context, plate string) (*models.VehicleRecord, error)
	Set(ctx context.Context, record *models.VehicleRecord) error
}

// LookupGateway - внешний реестр транспортных средств
type LookupGateway interface {
	Lookup(ctx context.Context, plate string) (*models.VehicleRecord, error)
}
