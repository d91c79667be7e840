package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/shenikar/traffic_review/internal/models"
)

// MemoryStore хранит очередь в памяти процесса. Если задан путь к файлу,
// состояние загружается из JSON-снимка при создании и перезаписывается после каждого изменения.
type MemoryStore struct {
	mu   sync.Mutex
	path string
	rnd  *rand.Rand
	now  func() time.Time

	reviewers   map[int64]*models.Reviewer
	events      map[int64]*models.Event
	annotations map[int64]*models.Annotation

	nextReviewerID   int64
	nextEventID      int64
	nextAnnotationID int64
}

// MemoryOption настраивает MemoryStore
type MemoryOption func(*MemoryStore)

// WithRand задает источник случайности для выбора событий
func WithRand(rnd *rand.Rand) MemoryOption {
	return func(s *MemoryStore) { s.rnd = rnd }
}

// WithClock подменяет источник текущего времени
func WithClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) { s.now = now }
}

// snapshot - формат файла: три именованные коллекции, каждая отображает id в запись
type snapshot struct {
	Reviewers   map[int64]snapshotReviewer   `json:"reviewers"`
	Events      map[int64]*models.Event      `json:"events"`
	Annotations map[int64]*models.Annotation `json:"annotations"`
}

// snapshotReviewer нужен, потому что models.Reviewer не сериализует хэш пароля
type snapshotReviewer struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
	DisplayName  string `json:"displayName"`
}

// NewMemoryStore создает хранилище в памяти. path может быть пустым.
func NewMemoryStore(path string, opts ...MemoryOption) (*MemoryStore, error) {
	s := &MemoryStore{
		path:             path,
		rnd:              rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
		now:              time.Now,
		reviewers:        make(map[int64]*models.Reviewer),
		events:           make(map[int64]*models.Event),
		annotations:      make(map[int64]*models.Annotation),
		nextReviewerID:   1,
		nextEventID:      1,
		nextAnnotationID: 1,
	}
	for _, opt := range opts {
		opt(s)
	}

	if path != "" {
		if err := s.load(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *MemoryStore) SeedEvents(_ context.Context, events []models.EventInit) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.events) > 0 {
		return 0, nil
	}

	prevNextID := s.nextEventID
	now := s.now().UTC()
	for _, init := range events {
		createdAt := init.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}
		event := &models.Event{
			ID:            s.nextEventID,
			VideoRef:      init.VideoRef,
			PlateImageRef: init.PlateImageRef,
			Kind:          init.Kind,
			Location:      init.Location,
			CreatedAt:     createdAt,
		}
		s.events[event.ID] = event
		s.nextEventID++
	}

	if err := s.persistLocked(); err != nil {
		s.events = make(map[int64]*models.Event)
		s.nextEventID = prevNextID
		return 0, err
	}
	return len(events), nil
}

func (s *MemoryStore) NextUnprocessed(_ context.Context) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	candidates := make([]int64, 0, len(s.events))
	for id, event := range s.events {
		if !event.Processed {
			candidates = append(candidates, id)
		}
	}
	if len(candidates) == 0 {
		return nil, models.ErrQueueExhausted
	}

	// Порядок обхода map случаен, сортировка делает выбор воспроизводимым при заданном rnd
	slices.Sort(candidates)
	picked := *s.events[candidates[s.rnd.IntN(len(candidates))]]
	return &picked, nil
}

func (s *MemoryStore) MarkProcessed(_ context.Context, eventID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.markProcessedLocked(eventID) {
		return nil
	}
	if err := s.persistLocked(); err != nil {
		s.events[eventID].Processed = false
		return err
	}
	return nil
}

// markProcessedLocked возвращает true, если флаг события изменился
func (s *MemoryStore) markProcessedLocked(eventID int64) bool {
	event, ok := s.events[eventID]
	if !ok || event.Processed {
		return false
	}
	event.Processed = true
	return true
}

func (s *MemoryStore) RecordAnnotation(_ context.Context, annotation *models.Annotation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *annotation
	stored.ID = s.nextAnnotationID
	stored.CreatedAt = s.now().UTC()
	if annotation.VehicleSnapshot != nil {
		snapshotCopy := *annotation.VehicleSnapshot
		stored.VehicleSnapshot = &snapshotCopy
	}

	s.annotations[stored.ID] = &stored
	s.nextAnnotationID++
	flipped := s.markProcessedLocked(stored.EventID)

	// Неудачная запись снимка откатывает и аннотацию, и флаг события
	if err := s.persistLocked(); err != nil {
		delete(s.annotations, stored.ID)
		s.nextAnnotationID--
		if flipped {
			s.events[stored.EventID].Processed = false
		}
		return err
	}

	annotation.ID = stored.ID
	annotation.CreatedAt = stored.CreatedAt
	return nil
}

func (s *MemoryStore) UpsertReviewer(_ context.Context, reviewer *models.Reviewer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.reviewers {
		if existing.Email == reviewer.Email {
			previous := *existing
			existing.PasswordHash = reviewer.PasswordHash
			existing.DisplayName = reviewer.DisplayName
			if err := s.persistLocked(); err != nil {
				*existing = previous
				return err
			}
			reviewer.ID = existing.ID
			return nil
		}
	}

	stored := *reviewer
	stored.ID = s.nextReviewerID
	s.reviewers[stored.ID] = &stored
	s.nextReviewerID++
	if err := s.persistLocked(); err != nil {
		delete(s.reviewers, stored.ID)
		s.nextReviewerID--
		return err
	}
	reviewer.ID = stored.ID
	return nil
}

func (s *MemoryStore) FindReviewerByEmail(_ context.Context, email string) (*models.Reviewer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, reviewer := range s.reviewers {
		if reviewer.Email == email {
			found := *reviewer
			return &found, nil
		}
	}
	return nil, models.ErrReviewerNotFound
}

func (s *MemoryStore) Stats(_ context.Context) (*models.QueueStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := &models.QueueStats{
		TotalEvents: len(s.events),
		Annotations: len(s.annotations),
	}
	for _, event := range s.events {
		if event.Processed {
			stats.ProcessedEvents++
		}
	}
	stats.PendingEvents = stats.TotalEvents - stats.ProcessedEvents
	for _, annotation := range s.annotations {
		switch annotation.Decision {
		case models.DecisionAccepted:
			stats.Accepted++
		case models.DecisionRejected:
			stats.Rejected++
		}
	}
	return stats, nil
}

func (s *MemoryStore) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prevEvents, prevAnnotations := s.events, s.annotations
	prevEventID, prevAnnotationID := s.nextEventID, s.nextAnnotationID

	s.events = make(map[int64]*models.Event)
	s.annotations = make(map[int64]*models.Annotation)
	s.nextEventID = 1
	s.nextAnnotationID = 1
	if err := s.persistLocked(); err != nil {
		s.events, s.annotations = prevEvents, prevAnnotations
		s.nextEventID, s.nextAnnotationID = prevEventID, prevAnnotationID
		return err
	}
	return nil
}

func (s *MemoryStore) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read store file %s: %w", s.path, err)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("failed to decode store file %s: %w", s.path, err)
	}

	for id, r := range snap.Reviewers {
		s.reviewers[id] = &models.Reviewer{ID: id, Email: r.Email, PasswordHash: r.PasswordHash, DisplayName: r.DisplayName}
		s.nextReviewerID = max(s.nextReviewerID, id+1)
	}
	for id, event := range snap.Events {
		if event == nil {
			return fmt.Errorf("failed to decode store file %s: event %d is null", s.path, id)
		}
		event.ID = id
		s.events[id] = event
		s.nextEventID = max(s.nextEventID, id+1)
	}
	for id, annotation := range snap.Annotations {
		if annotation == nil {
			return fmt.Errorf("failed to decode store file %s: annotation %d is null", s.path, id)
		}
		annotation.ID = id
		s.annotations[id] = annotation
		s.nextAnnotationID = max(s.nextAnnotationID, id+1)
	}
	return nil
}

// persistLocked перезаписывает файл снимка через временный файл и rename
func (s *MemoryStore) persistLocked() error {
	if s.path == "" {
		return nil
	}

	snap := snapshot{
		Reviewers:   make(map[int64]snapshotReviewer, len(s.reviewers)),
		Events:      s.events,
		Annotations: s.annotations,
	}
	for id, r := range s.reviewers {
		snap.Reviewers[id] = snapshotReviewer{ID: r.ID, Email: r.Email, PasswordHash: r.PasswordHash, DisplayName: r.DisplayName}
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp store file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write store snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close store snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace store file: %w", err)
	}
	return nil
}
