package v1

import "github.com/shenikar/traffic_review/internal/models"

// ModelToReviewerResponse преобразует аннотатора в DTO, отбрасывая хэш пароля
func ModelToReviewerResponse(model *models.Reviewer) ReviewerResponse {
	return ReviewerResponse{
		ID:          model.ID,
		Email:       model.Email,
		DisplayName: model.DisplayName,
	}
}

func ModelToEventResponse(model *models.Event) EventResponse {
	return EventResponse{
		ID:            model.ID,
		VideoRef:      model.VideoRef,
		PlateImageRef: model.PlateImageRef,
		Kind:          string(model.Kind),
		Location:      model.Location,
		CreatedAt:     model.CreatedAt,
		Processed:     model.Processed,
	}
}

func ModelToVehicleResponse(model *models.VehicleRecord) VehicleResponse {
	return VehicleResponse{
		Plate:            model.Plate,
		Make:             model.Make,
		Model:            model.Model,
		Color:            model.Color,
		RegistrationDate: model.RegistrationDate,
		ExpirationDate:   model.ExpirationDate,
		OwnerName:        model.OwnerName,
		Address:          model.Address,
	}
}

// DTOToAnnotationInput преобразует запрос решения во входные данные сервиса
func DTOToAnnotationInput(dto SubmitAnnotationRequest) models.AnnotationInput {
	input := models.AnnotationInput{
		EventID:            dto.EventID,
		ReviewerID:         dto.ReviewerID,
		PlateNumberEntered: dto.PlateNumberEntered,
		Decision:           models.Decision(dto.Decision),
		IssueReason:        models.IssueReason(dto.IssueReason),
	}
	if dto.VehicleSnapshot != nil {
		input.VehicleSnapshot = &models.VehicleSnapshot{
			Make:  dto.VehicleSnapshot.Make,
			Model: dto.VehicleSnapshot.Model,
			Color: dto.VehicleSnapshot.Color,
		}
	}
	return input
}

func ModelToAnnotationResponse(model *models.Annotation) *AnnotationResponse {
	response := &AnnotationResponse{
		ID:                 model.ID,
		EventID:            model.EventID,
		ReviewerID:         model.ReviewerID,
		PlateNumberEntered: model.PlateNumberEntered,
		Decision:           string(model.Decision),
		IssueReason:        string(model.IssueReason),
		CreatedAt:          model.CreatedAt,
	}
	if model.VehicleSnapshot != nil {
		response.VehicleSnapshot = &VehicleSnapshotDTO{
			Make:  model.VehicleSnapshot.Make,
			Model: model.VehicleSnapshot.Model,
			Color: model.VehicleSnapshot.Color,
		}
	}
	return response
}

func ModelToStatsResponse(model *models.QueueStats) StatsResponse {
	return StatsResponse{
		TotalEvents:     model.TotalEvents,
		ProcessedEvents: model.ProcessedEvents,
		PendingEvents:   model.PendingEvents,
		Annotations:     model.Annotations,
		Accepted:        model.Accepted,
		Rejected:        model.Rejected,
	}
}
