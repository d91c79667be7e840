package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/shenikar/traffic_review/internal/models"
	"github.com/sirupsen/logrus"
)

// State - состояние сессии проверки
type State int

const (
	StateIdle State = iota
	StateAwaitingEvent
	StateReviewing
	StateSubmitting
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingEvent:
		return "awaiting_event"
	case StateReviewing:
		return "reviewing"
	case StateSubmitting:
		return "submitting"
	case StateExhausted:
		return "exhausted"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// ErrInvalidTransition - операция недопустима в текущем состоянии; состояние не меняется
var ErrInvalidTransition = errors.New("session: invalid transition")

// Backend - то, что сессии нужно от сервера
type Backend interface {
	NextEvent(ctx context.Context) (*models.Event, error)
	Lookup(ctx context.Context, plate string) (*models.VehicleRecord, error)
	Submit(ctx context.Context, input models.AnnotationInput) (*models.Annotation, error)
}

// Session ведет одного аннотатора по циклу: получить событие, проверить, принять или отклонить.
// Вызовы backend выполняются без удержания блокировки; пока идет отправка,
// состояние Submitting отклоняет все прочие операции.
type Session struct {
	backend  Backend
	reviewer models.Reviewer
	logger   *logrus.Logger

	mu               sync.Mutex
	state            State
	event            *models.Event
	plate            string
	vehicle          *models.VehicleRecord
	issue            models.IssueReason
	confirmingReject bool
	lastAnnotation   *models.Annotation
	err              error
}

func New(backend Backend, reviewer models.Reviewer, logger *logrus.Logger) *Session {
	return &Session{
		backend:  backend,
		reviewer: reviewer,
		logger:   logger,
		state:    StateIdle,
	}
}

// Start запускает сессию после входа и запрашивает первое событие
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateIdle {
		s.mu.Unlock()
		return s.invalid("Start")
	}
	s.state = StateAwaitingEvent
	s.mu.Unlock()

	return s.fetch(ctx)
}

// Refresh повторно запрашивает событие после неудачной загрузки или внешнего сброса очереди
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateAwaitingEvent && s.state != StateExhausted {
		s.mu.Unlock()
		return s.invalid("Refresh")
	}
	s.state = StateAwaitingEvent
	s.mu.Unlock()

	return s.fetch(ctx)
}

func (s *Session) fetch(ctx context.Context) error {
	event, err := s.backend.NextEvent(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	log := s.logger.WithFields(logrus.Fields{
		"component":   "session",
		"reviewer_id": s.reviewer.ID,
	})

	switch {
	case err == nil:
		s.state = StateReviewing
		s.event = event
		s.clearInputsLocked()
		s.err = nil
		log.WithField("event_id", event.ID).Debug("Reviewing event")
		return nil
	case errors.Is(err, models.ErrQueueExhausted):
		s.state = StateExhausted
		s.event = nil
		s.clearInputsLocked()
		s.err = nil
		log.Info("Review queue exhausted")
		return nil
	default:
		s.err = err
		log.WithError(err).Warn("Failed to fetch next event")
		return err
	}
}

// SetPlate запоминает номер, введенный аннотатором
func (s *Session) SetPlate(plate string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateReviewing {
		return s.invalidLocked("SetPlate")
	}
	s.plate = strings.TrimSpace(plate)
	s.err = nil
	return nil
}

// Lookup запрашивает DMV по введенному номеру. Ошибка не сбрасывает текущее событие.
func (s *Session) Lookup(ctx context.Context) (*models.VehicleRecord, error) {
	s.mu.Lock()
	if s.state != StateReviewing {
		err := s.invalidLocked("Lookup")
		s.mu.Unlock()
		return nil, err
	}
	plate := s.plate
	eventID := s.event.ID
	s.mu.Unlock()

	if plate == "" {
		err := models.NewValidationError("plateNumber", "is required")
		s.setErr(err)
		return nil, err
	}

	record, err := s.backend.Lookup(ctx, plate)

	s.mu.Lock()
	defer s.mu.Unlock()

	// Событие могло смениться, пока шел запрос
	if s.state != StateReviewing || s.event == nil || s.event.ID != eventID {
		return nil, ErrInvalidTransition
	}
	if err != nil {
		s.err = err
		return nil, err
	}
	s.vehicle = record
	s.err = nil
	return record, nil
}

// Accept сразу отправляет решение "принято"
func (s *Session) Accept(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateReviewing || s.confirmingReject {
		err := s.invalidLocked("Accept")
		s.mu.Unlock()
		return err
	}
	input := s.beginSubmitLocked(models.DecisionAccepted)
	s.mu.Unlock()

	return s.submit(ctx, input)
}

// BeginReject открывает подтверждение отклонения
func (s *Session) BeginReject() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateReviewing {
		return s.invalidLocked("BeginReject")
	}
	s.confirmingReject = true
	s.err = nil
	return nil
}

// SelectIssue выбирает причину отклонения
func (s *Session) SelectIssue(reason models.IssueReason) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateReviewing || !s.confirmingReject {
		return s.invalidLocked("SelectIssue")
	}
	if !reason.IsValid() {
		s.err = models.NewValidationError("issueReason", fmt.Sprintf("unknown issue reason %q", reason))
		return s.err
	}
	s.issue = reason
	s.err = nil
	return nil
}

// CancelReject закрывает подтверждение и сбрасывает выбранную причину
func (s *Session) CancelReject() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateReviewing || !s.confirmingReject {
		return s.invalidLocked("CancelReject")
	}
	s.confirmingReject = false
	s.issue = ""
	s.err = nil
	return nil
}

// ConfirmReject отправляет решение "отклонено". Без выбранной причины ничего не отправляется.
func (s *Session) ConfirmReject(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateReviewing || !s.confirmingReject {
		err := s.invalidLocked("ConfirmReject")
		s.mu.Unlock()
		return err
	}
	if s.issue == "" {
		s.err = models.NewValidationError("issueReason", "select an issue reason before rejecting")
		err := s.err
		s.mu.Unlock()
		return err
	}
	input := s.beginSubmitLocked(models.DecisionRejected)
	s.mu.Unlock()

	return s.submit(ctx, input)
}

// beginSubmitLocked собирает решение и переводит сессию в Submitting.
// Вызывается под блокировкой после проверки состояния Reviewing.
func (s *Session) beginSubmitLocked(decision models.Decision) models.AnnotationInput {
	input := models.AnnotationInput{
		EventID:            s.event.ID,
		ReviewerID:         s.reviewer.ID,
		PlateNumberEntered: s.plate,
		Decision:           decision,
		VehicleSnapshot:    s.vehicle.Snapshot(),
	}
	if decision == models.DecisionRejected {
		input.IssueReason = s.issue
	}
	s.state = StateSubmitting
	return input
}

func (s *Session) submit(ctx context.Context, input models.AnnotationInput) error {
	annotation, err := s.backend.Submit(ctx, input)

	s.mu.Lock()
	if err != nil {
		// Введенные данные сохраняются, аннотатор может повторить отправку
		s.state = StateReviewing
		s.err = err
		s.mu.Unlock()
		s.logger.WithError(err).WithFields(logrus.Fields{
			"component": "session",
			"event_id":  input.EventID,
			"decision":  input.Decision,
		}).Warn("Failed to submit annotation")
		return err
	}
	s.lastAnnotation = annotation
	s.state = StateAwaitingEvent
	s.err = nil
	s.mu.Unlock()

	return s.fetch(ctx)
}

func (s *Session) clearInputsLocked() {
	s.plate = ""
	s.vehicle = nil
	s.issue = ""
	s.confirmingReject = false
}

func (s *Session) setErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

func (s *Session) invalid(op string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.invalidLocked(op)
}

func (s *Session) invalidLocked(op string) error {
	return fmt.Errorf("%w: %s in state %s", ErrInvalidTransition, op, s.state)
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Event возвращает копию текущего события или nil
func (s *Session) Event() *models.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.event == nil {
		return nil
	}
	event := *s.event
	return &event
}

func (s *Session) Plate() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plate
}

func (s *Session) Vehicle() *models.VehicleRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vehicle
}

func (s *Session) IssueReason() models.IssueReason {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.issue
}

func (s *Session) ConfirmingReject() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.confirmingReject
}

// LastAnnotation возвращает последнюю успешно записанную аннотацию
func (s *Session) LastAnnotation() *models.Annotation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAnnotation
}

// Err возвращает последнюю ошибку, показанную аннотатору. Успешная операция ее сбрасывает.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Session) Reviewer() models.Reviewer {
	return s.reviewer
}
