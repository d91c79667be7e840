package models

import (
	"time"
)

// EventKind - тип нарушения, зафиксированного камерой
type EventKind string

const (
	EventKindStopSign EventKind = "stop_sign_violation"
	EventKindRedLight EventKind = "red_light_violation"
	EventKindSpeeding EventKind = "speeding"
)

// IsValid проверяет, что тип события входит в допустимый набор
func (k EventKind) IsValid() bool {
	switch k {
	case EventKindStopSign, EventKindRedLight, EventKindSpeeding:
		return true
	}
	return false
}

// Event - дорожное событие, ожидающее проверки аннотатором
type Event struct {
	ID            int64     `json:"id"`
	VideoRef      string    `json:"videoRef"`
	PlateImageRef string    `json:"plateImageRef"`
	Kind          EventKind `json:"kind"`
	Location      string    `json:"location"`
	CreatedAt     time.Time `json:"createdAt"`
	Processed     bool      `json:"processed"`
}

// EventInit - данные для заполнения хранилища событиями
type EventInit struct {
	VideoRef      string    `json:"videoRef" yaml:"video_ref"`
	PlateImageRef string    `json:"plateImageRef" yaml:"plate_image_ref"`
	Kind          EventKind `json:"kind" yaml:"kind"`
	Location      string    `json:"location" yaml:"location"`
	CreatedAt     time.Time `json:"createdAt,omitempty" yaml:"created_at,omitempty"`
}

// QueueStats - сводка по очереди проверки
type QueueStats struct {
	TotalEvents     int `json:"totalEvents"`
	ProcessedEvents int `json:"processedEvents"`
	PendingEvents   int `json:"pendingEvents"`
	Annotations     int `json:"annotations"`
	Accepted        int `json:"accepted"`
	Rejected        int `json:"rejected"`
}
