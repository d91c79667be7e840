package v1

import (
	"time"
)

// LoginRequest DTO для входа аннотатора
// @Description DTO для входа аннотатора
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ReviewerResponse DTO аннотатора без хэша пароля
// @Description DTO аннотатора без хэша пароля
type ReviewerResponse struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

// LoginResponse DTO ответа на успешный вход
// @Description DTO ответа на успешный вход
type LoginResponse struct {
	Message  string           `json:"message"`
	Reviewer ReviewerResponse `json:"reviewer"`
}

// EventResponse DTO события на проверку
// @Description DTO события на проверку
type EventResponse struct {
	ID            int64     `json:"id"`
	VideoRef      string    `json:"videoRef"`
	PlateImageRef string    `json:"plateImageRef"`
	Kind          string    `json:"kind"`
	Location      string    `json:"location"`
	CreatedAt     time.Time `json:"createdAt"`
	Processed     bool      `json:"processed"`
}

// NextEventResponse DTO ответа с очередным событием
// @Description DTO ответа с очередным событием
type NextEventResponse struct {
	Event EventResponse `json:"event"`
}

// LookupRequest DTO запроса в DMV
// @Description DTO запроса в DMV
type LookupRequest struct {
	PlateNumber string `json:"plateNumber" validate:"required"`
}

// VehicleResponse DTO регистрационных данных
// @Description DTO регистрационных данных
type VehicleResponse struct {
	Plate            string `json:"plate"`
	Make             string `json:"make"`
	Model            string `json:"model"`
	Color            string `json:"color"`
	RegistrationDate string `json:"registrationDate"`
	ExpirationDate   string `json:"expirationDate"`
	OwnerName        string `json:"ownerName"`
	Address          string `json:"address"`
}

// VehicleSnapshotDTO - данные DMV, зафиксированные при решении
type VehicleSnapshotDTO struct {
	Make  string `json:"make"`
	Model string `json:"model"`
	Color string `json:"color"`
}

// SubmitAnnotationRequest DTO решения аннотатора
// @Description DTO решения аннотатора. issueReason обязателен при decision=rejected, при accepted игнорируется.
type SubmitAnnotationRequest struct {
	EventID            int64               `json:"eventId" validate:"required,gt=0"`
	ReviewerID         int64               `json:"reviewerId" validate:"required,gt=0"`
	PlateNumberEntered string              `json:"plateNumberEntered,omitempty" validate:"max=32"`
	Decision           string              `json:"decision" validate:"required,oneof=accepted rejected"`
	IssueReason        string              `json:"issueReason,omitempty" validate:"required_if=Decision rejected,issue_reason"`
	VehicleSnapshot    *VehicleSnapshotDTO `json:"vehicleSnapshot,omitempty"`
}

// AnnotationResponse DTO сохраненной аннотации
// @Description DTO сохраненной аннотации
type AnnotationResponse struct {
	ID                 int64               `json:"id"`
	EventID            int64               `json:"eventId"`
	ReviewerID         int64               `json:"reviewerId"`
	PlateNumberEntered string              `json:"plateNumberEntered,omitempty"`
	Decision           string              `json:"decision"`
	IssueReason        string              `json:"issueReason,omitempty"`
	VehicleSnapshot    *VehicleSnapshotDTO `json:"vehicleSnapshot,omitempty"`
	CreatedAt          time.Time           `json:"createdAt"`
}

// SubmitAnnotationResponse DTO ответа на решение
// @Description DTO ответа на решение
type SubmitAnnotationResponse struct {
	Message    string              `json:"message"`
	NextEvent  bool                `json:"nextEvent"`
	Annotation *AnnotationResponse `json:"annotation,omitempty"`
}

// SystemResponse DTO ответа на инициализацию и сброс хранилища
// @Description DTO ответа на инициализацию и сброс хранилища
type SystemResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
	Seeded  int    `json:"seeded"`
}

// ErrorResponse DTO ошибки
// @Description DTO ошибки
type ErrorResponse struct {
	Error   string `json:"error"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message,omitempty"`
}

// StatsResponse DTO ответа со статистикой очереди
// @Description DTO ответа со статистикой очереди
type StatsResponse struct {
	TotalEvents     int `json:"totalEvents"`
	ProcessedEvents int `json:"processedEvents"`
	PendingEvents   int `json:"pendingEvents"`
	Annotations     int `json:"annotations"`
	Accepted        int `json:"accepted"`
	Rejected        int `json:"rejected"`
}
