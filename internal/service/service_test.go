package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/shenikar/traffic_review/internal/models"
	"github.com/shenikar/traffic_review/internal/service/mocks"
	"github.com/shenikar/traffic_review/internal/webhook"
	webhook_mocks "github.com/shenikar/traffic_review/internal/webhook/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах
	return logger
}

var testSeed = []models.EventInit{
	{VideoRef: "a.mp4", Kind: models.EventKindSpeeding, Location: "A"},
	{VideoRef: "b.mp4", Kind: models.EventKindRedLight, Location: "B"},
}

// newTestEventService - вспомогательная функция для создания инстанса сервиса с моками.
func newTestEventService(t *testing.T) (EventService, *mocks.MockStore) {
	ctrl := gomock.NewController(t)
	storeMock := mocks.NewMockStore(ctrl)
	return NewEventService(storeMock, newTestLogger(), testSeed), storeMock
}

func newTestAnnotationService(t *testing.T) (AnnotationService, *mocks.MockStore, *webhook_mocks.MockPublisher) {
	ctrl := gomock.NewController(t)
	storeMock := mocks.NewMockStore(ctrl)
	publisherMock := webhook_mocks.NewMockPublisher(ctrl)
	return NewAnnotationService(storeMock, publisherMock, newTestLogger()), storeMock, publisherMock
}

func TestEventService_Initialize(t *testing.T) {
	// Подготовка
	service, storeMock := newTestEventService(t)
	ctx := context.Background()

	// Ожидания
	storeMock.EXPECT().SeedEvents(ctx, testSeed).Return(2, nil).Times(1)

	// Действие
	seeded, err := service.Initialize(ctx)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, 2, seeded)
}

func TestEventService_Reset(t *testing.T) {
	// Подготовка
	service, storeMock := newTestEventService(t)
	ctx := context.Background()

	// Ожидания: сначала очистка, затем заполнение
	gomock.InOrder(
		storeMock.EXPECT().Reset(ctx).Return(nil),
		storeMock.EXPECT().SeedEvents(ctx, testSeed).Return(2, nil),
	)

	// Действие
	seeded, err := service.Reset(ctx)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, 2, seeded)
}

func TestEventService_Reset_StoreError(t *testing.T) {
	service, storeMock := newTestEventService(t)
	ctx := context.Background()

	storeMock.EXPECT().Reset(ctx).Return(errors.New("disk full")).Times(1)
	storeMock.EXPECT().SeedEvents(gomock.Any(), gomock.Any()).Times(0)

	_, err := service.Reset(ctx)

	require.Error(t, err)
	assert.ErrorContains(t, err, "could not reset store")
}

func TestEventService_NextEvent(t *testing.T) {
	service, storeMock := newTestEventService(t)
	ctx := context.Background()
	expected := &models.Event{ID: 3, Kind: models.EventKindSpeeding}

	storeMock.EXPECT().NextUnprocessed(ctx).Return(expected, nil).Times(1)

	event, err := service.NextEvent(ctx)

	require.NoError(t, err)
	assert.Equal(t, expected, event)
}

func TestEventService_NextEvent_Exhausted(t *testing.T) {
	service, storeMock := newTestEventService(t)
	ctx := context.Background()

	storeMock.EXPECT().NextUnprocessed(ctx).Return(nil, models.ErrQueueExhausted).Times(1)

	event, err := service.NextEvent(ctx)

	assert.Nil(t, event)
	assert.ErrorIs(t, err, models.ErrQueueExhausted)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestEventService_NextEvent_StoreError(t *testing.T) {
	service, storeMock := newTestEventService(t)
	ctx := context.Background()

	storeMock.EXPECT().NextUnprocessed(ctx).Return(nil, errors.New("connection reset")).Times(1)

	_, err := service.NextEvent(ctx)

	require.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrQueueExhausted)
	assert.ErrorContains(t, err, "could not fetch next event")
}

func TestEventService_Stats(t *testing.T) {
	service, storeMock := newTestEventService(t)
	ctx := context.Background()
	expected := &models.QueueStats{TotalEvents: 2, PendingEvents: 2}

	storeMock.EXPECT().Stats(ctx).Return(expected, nil).Times(1)

	stats, err := service.Stats(ctx)

	require.NoError(t, err)
	assert.Equal(t, expected, stats)
}

func TestAnnotationService_Record_Accepted(t *testing.T) {
	// Подготовка
	service, storeMock, publisherMock := newTestAnnotationService(t)
	ctx := context.Background()
	input := models.AnnotationInput{
		EventID:            4,
		ReviewerID:         1,
		PlateNumberEntered: " ABC123 ",
		Decision:           models.DecisionAccepted,
		// Причина при принятии допускается, но не сохраняется
		IssueReason:     models.IssueMainCamera,
		VehicleSnapshot: &models.VehicleSnapshot{Make: "Toyota", Model: "Camry", Color: "Silver"},
	}

	// Ожидания
	storeMock.EXPECT().
		RecordAnnotation(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, a *models.Annotation) error {
			assert.Equal(t, int64(4), a.EventID)
			assert.Equal(t, "ABC123", a.PlateNumberEntered)
			assert.Empty(t, a.IssueReason)
			assert.Equal(t, "Toyota", a.VehicleSnapshot.Make)
			a.ID = 1
			return nil
		}).Times(1)

	publisherMock.EXPECT().
		Publish(ctx, gomock.Any()).
		Do(func(_ context.Context, event webhook.AnnotationEvent) {
			assert.Equal(t, webhook.EventAnnotationRecorded, event.Type)
			assert.Equal(t, int64(1), event.Annotation.ID)
		}).Return(nil).Times(1)

	// Действие
	annotation, err := service.Record(ctx, input)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, int64(1), annotation.ID)
	assert.Equal(t, models.DecisionAccepted, annotation.Decision)
}

func TestAnnotationService_Record_RejectedWithReason(t *testing.T) {
	service, storeMock, publisherMock := newTestAnnotationService(t)
	ctx := context.Background()
	input := models.AnnotationInput{
		EventID:     2,
		ReviewerID:  1,
		Decision:    models.DecisionRejected,
		IssueReason: models.IssueFalsePositive,
	}

	storeMock.EXPECT().
		RecordAnnotation(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, a *models.Annotation) error {
			a.ID = 5
			return nil
		}).Times(1)
	publisherMock.EXPECT().Publish(ctx, gomock.Any()).Return(nil).Times(1)

	annotation, err := service.Record(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, models.IssueFalsePositive, annotation.IssueReason)
	assert.Nil(t, annotation.VehicleSnapshot)
}

func TestAnnotationService_Record_ValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		input models.AnnotationInput
		field string
	}{
		{
			name:  "missing event",
			input: models.AnnotationInput{ReviewerID: 1, Decision: models.DecisionAccepted},
			field: "eventId",
		},
		{
			name:  "missing reviewer",
			input: models.AnnotationInput{EventID: 1, Decision: models.DecisionAccepted},
			field: "reviewerId",
		},
		{
			name:  "missing decision",
			input: models.AnnotationInput{EventID: 1, ReviewerID: 1},
			field: "decision",
		},
		{
			name:  "unknown decision",
			input: models.AnnotationInput{EventID: 1, ReviewerID: 1, Decision: "maybe"},
			field: "decision",
		},
		{
			name:  "rejected without reason",
			input: models.AnnotationInput{EventID: 1, ReviewerID: 1, Decision: models.DecisionRejected},
			field: "issueReason",
		},
		{
			name:  "unknown reason",
			input: models.AnnotationInput{EventID: 1, ReviewerID: 1, Decision: models.DecisionRejected, IssueReason: "blurry"},
			field: "issueReason",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, storeMock, publisherMock := newTestAnnotationService(t)

			// Хранилище и издатель не должны вызываться
			storeMock.EXPECT().RecordAnnotation(gomock.Any(), gomock.Any()).Times(0)
			publisherMock.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

			annotation, err := service.Record(context.Background(), tt.input)

			assert.Nil(t, annotation)
			var vErr *models.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestAnnotationService_Record_AcceptedDropsUnknownReason(t *testing.T) {
	service, storeMock, publisherMock := newTestAnnotationService(t)
	ctx := context.Background()

	storeMock.EXPECT().
		RecordAnnotation(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, a *models.Annotation) error {
			assert.Empty(t, a.IssueReason)
			a.ID = 7
			return nil
		}).Times(1)
	publisherMock.EXPECT().Publish(ctx, gomock.Any()).Return(nil).Times(1)

	annotation, err := service.Record(ctx, models.AnnotationInput{
		EventID:     1,
		ReviewerID:  1,
		Decision:    models.DecisionAccepted,
		IssueReason: "blurry",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), annotation.ID)
	assert.Empty(t, annotation.IssueReason)
}

func TestAnnotationService_Record_StoreError(t *testing.T) {
	service, storeMock, publisherMock := newTestAnnotationService(t)
	ctx := context.Background()

	storeMock.EXPECT().RecordAnnotation(ctx, gomock.Any()).Return(errors.New("tx aborted")).Times(1)
	publisherMock.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

	_, err := service.Record(ctx, models.AnnotationInput{EventID: 1, ReviewerID: 1, Decision: models.DecisionAccepted})

	require.Error(t, err)
	assert.False(t, models.IsValidationError(err))
	assert.ErrorContains(t, err, "could not record annotation")
}

func TestAnnotationService_Record_PublishErrorIgnored(t *testing.T) {
	service, storeMock, publisherMock := newTestAnnotationService(t)
	ctx := context.Background()

	storeMock.EXPECT().RecordAnnotation(ctx, gomock.Any()).Return(nil).Times(1)
	publisherMock.EXPECT().Publish(ctx, gomock.Any()).Return(errors.New("redis down")).Times(1)

	annotation, err := service.Record(ctx, models.AnnotationInput{EventID: 1, ReviewerID: 1, Decision: models.DecisionAccepted})

	require.NoError(t, err)
	assert.NotNil(t, annotation)
}

func newTestAuthService(t *testing.T) (AuthService, *mocks.MockStore) {
	ctrl := gomock.NewController(t)
	storeMock := mocks.NewMockStore(ctrl)
	return NewAuthService(storeMock, newTestLogger(), bcrypt.MinCost), storeMock
}

func hashPassword(t *testing.T, password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAuthService_Authenticate_Success(t *testing.T) {
	service, storeMock := newTestAuthService(t)
	ctx := context.Background()
	reviewer := &models.Reviewer{ID: 1, Email: "demo@traffic.com", PasswordHash: hashPassword(t, "demo123"), DisplayName: "Demo"}

	storeMock.EXPECT().FindReviewerByEmail(ctx, "demo@traffic.com").Return(reviewer, nil).Times(1)

	got, err := service.Authenticate(ctx, "  Demo@Traffic.com ", "demo123")

	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)
}

func TestAuthService_Authenticate_WrongPassword(t *testing.T) {
	service, storeMock := newTestAuthService(t)
	ctx := context.Background()
	reviewer := &models.Reviewer{ID: 1, Email: "demo@traffic.com", PasswordHash: hashPassword(t, "demo123")}

	storeMock.EXPECT().FindReviewerByEmail(ctx, "demo@traffic.com").Return(reviewer, nil).Times(1)

	got, err := service.Authenticate(ctx, "demo@traffic.com", "wrong")

	assert.Nil(t, got)
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
}

func TestAuthService_Authenticate_UnknownReviewer(t *testing.T) {
	service, storeMock := newTestAuthService(t)
	ctx := context.Background()

	storeMock.EXPECT().FindReviewerByEmail(ctx, "ghost@traffic.com").Return(nil, models.ErrReviewerNotFound).Times(1)

	_, err := service.Authenticate(ctx, "ghost@traffic.com", "demo123")

	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
}

func TestAuthService_Authenticate_UnknownReviewerComparesDummyHash(t *testing.T) {
	// Подготовка
	service, storeMock := newTestAuthService(t)
	auth := service.(*authService)
	ctx := context.Background()

	var compared [][]byte
	auth.compare = func(hash, password []byte) error {
		compared = append(compared, hash)
		return bcrypt.CompareHashAndPassword(hash, password)
	}

	// Ожидания
	storeMock.EXPECT().FindReviewerByEmail(ctx, "ghost@traffic.com").Return(nil, models.ErrReviewerNotFound).Times(1)

	// Действие
	_, err := service.Authenticate(ctx, "ghost@traffic.com", "invalid-password-placeholder")

	// Проверки: промах по email проходит ту же проверку bcrypt, что и неверный пароль
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	require.Len(t, compared, 1)
	assert.Equal(t, auth.dummyHash, compared[0])
	cost, err := bcrypt.Cost(auth.dummyHash)
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestAuthService_Authenticate_MissingFields(t *testing.T) {
	service, storeMock := newTestAuthService(t)
	storeMock.EXPECT().FindReviewerByEmail(gomock.Any(), gomock.Any()).Times(0)

	_, err := service.Authenticate(context.Background(), "", "demo123")
	assert.True(t, models.IsValidationError(err))

	_, err = service.Authenticate(context.Background(), "demo@traffic.com", "")
	assert.True(t, models.IsValidationError(err))
}

func TestAuthService_RegisterReviewer(t *testing.T) {
	service, storeMock := newTestAuthService(t)
	ctx := context.Background()

	storeMock.EXPECT().
		UpsertReviewer(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, r *models.Reviewer) error {
			assert.Equal(t, "demo@traffic.com", r.Email)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(r.PasswordHash), []byte("demo123")))
			r.ID = 1
			return nil
		}).Times(1)

	reviewer, err := service.RegisterReviewer(ctx, "Demo@Traffic.com", "demo123", "Demo Annotator")

	require.NoError(t, err)
	assert.Equal(t, int64(1), reviewer.ID)
	assert.Equal(t, "Demo Annotator", reviewer.DisplayName)
}

func newTestLookupService(t *testing.T) (LookupService, *mocks.MockLookupGateway, *mocks.MockVehicleCache) {
	ctrl := gomock.NewController(t)
	gatewayMock := mocks.NewMockLookupGateway(ctrl)
	cacheMock := mocks.NewMockVehicleCache(ctrl)
	return NewLookupService(gatewayMock, cacheMock, newTestLogger()), gatewayMock, cacheMock
}

func TestLookupService_CacheHit(t *testing.T) {
	service, gatewayMock, cacheMock := newTestLookupService(t)
	ctx := context.Background()
	cached := &models.VehicleRecord{Plate: "ABC123", Make: "Honda"}

	cacheMock.EXPECT().Get(ctx, "ABC123").Return(cached, nil).Times(1)
	gatewayMock.EXPECT().Lookup(gomock.Any(), gomock.Any()).Times(0)

	record, err := service.Lookup(ctx, "abc 123")

	require.NoError(t, err)
	assert.Equal(t, cached, record)
}

func TestLookupService_CacheMiss(t *testing.T) {
	service, gatewayMock, cacheMock := newTestLookupService(t)
	ctx := context.Background()
	record := &models.VehicleRecord{Plate: "ABC123", Make: "Honda"}

	gomock.InOrder(
		cacheMock.EXPECT().Get(ctx, "ABC123").Return(nil, nil),
		gatewayMock.EXPECT().Lookup(ctx, "ABC123").Return(record, nil),
		cacheMock.EXPECT().Set(ctx, record).Return(nil),
	)

	got, err := service.Lookup(ctx, "ABC123")

	require.NoError(t, err)
	assert.Equal(t, record, got)
}

func TestLookupService_CacheFailureFallsBack(t *testing.T) {
	service, gatewayMock, cacheMock := newTestLookupService(t)
	ctx := context.Background()
	record := &models.VehicleRecord{Plate: "XYZ", Make: "Kia"}

	cacheMock.EXPECT().Get(ctx, "XYZ").Return(nil, errors.New("redis timeout")).Times(1)
	gatewayMock.EXPECT().Lookup(ctx, "XYZ").Return(record, nil).Times(1)
	cacheMock.EXPECT().Set(ctx, record).Return(errors.New("redis timeout")).Times(1)

	got, err := service.Lookup(ctx, "xyz")

	require.NoError(t, err)
	assert.Equal(t, record, got)
}

func TestLookupService_EmptyPlate(t *testing.T) {
	service, gatewayMock, cacheMock := newTestLookupService(t)
	cacheMock.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
	gatewayMock.EXPECT().Lookup(gomock.Any(), gomock.Any()).Times(0)

	_, err := service.Lookup(context.Background(), "   ")

	var vErr *models.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "plateNumber", vErr.Field)
}

func TestLookupService_GatewayError(t *testing.T) {
	service, gatewayMock, cacheMock := newTestLookupService(t)
	ctx := context.Background()

	cacheMock.EXPECT().Get(ctx, "ABC").Return(nil, nil).Times(1)
	gatewayMock.EXPECT().Lookup(ctx, "ABC").Return(nil, context.DeadlineExceeded).Times(1)
	cacheMock.EXPECT().Set(gomock.Any(), gomock.Any()).Times(0)

	_, err := service.Lookup(ctx, "ABC")

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.ErrorContains(t, err, "vehicle lookup failed")
}

func TestLookupService_WithoutCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	gatewayMock := mocks.NewMockLookupGateway(ctrl)
	service := NewLookupService(gatewayMock, nil, newTestLogger())
	record := &models.VehicleRecord{Plate: "ABC"}

	gatewayMock.EXPECT().Lookup(gomock.Any(), "ABC").Return(record, nil).Times(1)

	got, err := service.Lookup(context.Background(), "abc")

	require.NoError(t, err)
	assert.Equal(t, record, got)
}
