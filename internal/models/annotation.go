package models

import (
	"time"
)

// Decision - решение аннотатора по событию
type Decision string

const (
	DecisionAccepted Decision = "accepted"
	DecisionRejected Decision = "rejected"
)

// IsValid проверяет, что решение входит в допустимый набор
func (d Decision) IsValid() bool {
	return d == DecisionAccepted || d == DecisionRejected
}

// IssueReason - причина отклонения события
type IssueReason string

const (
	IssueFalsePositive  IssueReason = "false_positive"
	IssueMainCamera     IssueReason = "main_camera_issue"
	IssueLicensePlate   IssueReason = "license_plate_issue"
	IssueDMVInformation IssueReason = "dmv_information_issue"
)

// IssueReasons возвращает все причины отклонения в порядке отображения
func IssueReasons() []IssueReason {
	return []IssueReason{IssueFalsePositive, IssueMainCamera, IssueLicensePlate, IssueDMVInformation}
}

// IsValid проверяет, что причина входит в допустимый набор
func (r IssueReason) IsValid() bool {
	for _, reason := range IssueReasons() {
		if r == reason {
			return true
		}
	}
	return false
}

// VehicleSnapshot - данные DMV, зафиксированные в момент принятия решения
type VehicleSnapshot struct {
	Make  string `json:"make"`
	Model string `json:"model"`
	Color string `json:"color"`
}

// Annotation - запись о решении аннотатора. После создания не изменяется.
type Annotation struct {
	ID                 int64            `json:"id"`
	EventID            int64            `json:"eventId"`
	ReviewerID         int64            `json:"reviewerId"`
	PlateNumberEntered string           `json:"plateNumberEntered,omitempty"`
	Decision           Decision         `json:"decision"`
	IssueReason        IssueReason      `json:"issueReason,omitempty"`
	VehicleSnapshot    *VehicleSnapshot `json:"vehicleSnapshot,omitempty"`
	CreatedAt          time.Time        `json:"createdAt"`
}

// AnnotationInput - входные данные для записи решения
type AnnotationInput struct {
	EventID            int64            `json:"eventId"`
	ReviewerID         int64            `json:"reviewerId"`
	PlateNumberEntered string           `json:"plateNumberEntered,omitempty"`
	Decision           Decision         `json:"decision"`
	IssueReason        IssueReason      `json:"issueReason,omitempty"`
	VehicleSnapshot    *VehicleSnapshot `json:"vehicleSnapshot,omitempty"`
}
