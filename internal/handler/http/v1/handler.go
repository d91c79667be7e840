package v1

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shenikar/traffic_review/internal/config"
	"github.com/shenikar/traffic_review/internal/models"
	"github.com/shenikar/traffic_review/internal/service"
	"github.com/sirupsen/logrus"
)

const (
	exhaustedError   = "No more events to process"
	exhaustedMessage = "All events have been processed. Please reset the store to continue."
)

// Services - сервисы, которые обслуживает API v1
type Services struct {
	Events      service.EventService
	Annotations service.AnnotationService
	Auth        service.AuthService
	Lookup      service.LookupService
}

type Handler struct {
	services Services
	logger   *logrus.Logger
	validate *validator.Validate
	cfg      *config.Config
}

func NewHandler(services Services, logger *logrus.Logger, cfg *config.Config) *Handler {
	validate := validator.New()
	// Имена полей в ошибках совпадают с JSON-ключами запроса
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = validate.RegisterValidation("issue_reason", validIssueReason)

	return &Handler{
		services: services,
		logger:   logger,
		validate: validate,
		cfg:      cfg,
	}
}

// @Summary Reviewer login
// @Description Check reviewer credentials. No server-side session is created.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Reviewer credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} ErrorResponse "Missing email or password"
// @Failure 401 {object} ErrorResponse "Invalid credentials"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var input LoginRequest
	log := h.logger.WithField("method", "login")

	if !h.bindAndValidate(c, log, &input) {
		return
	}

	reviewer, err := h.services.Auth.Authenticate(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		h.writeError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Message:  "Login successful",
		Reviewer: ModelToReviewerResponse(reviewer),
	})
}

// @Summary Get next event
// @Description Get a random unprocessed event. 404 means the queue is exhausted.
// @Tags Events
// @Produce json
// @Success 200 {object} NextEventResponse
// @Failure 404 {object} ErrorResponse "No more events to process"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /events/next [get]
func (h *Handler) nextEvent(c *gin.Context) {
	log := h.logger.WithField("method", "nextEvent")

	event, err := h.services.Events.NextEvent(c.Request.Context())
	if err != nil {
		h.writeError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, NextEventResponse{Event: ModelToEventResponse(event)})
}

// @Summary Look up vehicle registration
// @Description Look up vehicle registration data by license plate
// @Tags DMV
// @Accept json
// @Produce json
// @Param lookup body LookupRequest true "Plate number"
// @Success 200 {object} VehicleResponse
// @Failure 400 {object} ErrorResponse "Missing plate number"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /dmv/lookup [post]
func (h *Handler) lookupVehicle(c *gin.Context) {
	var input LookupRequest
	log := h.logger.WithField("method", "lookupVehicle")

	if !h.bindAndValidate(c, log, &input) {
		return
	}

	record, err := h.services.Lookup.Lookup(c.Request.Context(), input.PlateNumber)
	if err != nil {
		h.writeError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, ModelToVehicleResponse(record))
}

// @Summary Submit annotation
// @Description Record an accept or reject decision and mark the event processed
// @Tags Annotations
// @Accept json
// @Produce json
// @Param annotation body SubmitAnnotationRequest true "Reviewer decision"
// @Success 200 {object} SubmitAnnotationResponse
// @Failure 400 {object} ErrorResponse "Missing or invalid fields"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /annotations [post]
func (h *Handler) submitAnnotation(c *gin.Context) {
	var input SubmitAnnotationRequest
	log := h.logger.WithField("method", "submitAnnotation")

	if !h.bindAndValidate(c, log, &input) {
		return
	}

	annotation, err := h.services.Annotations.Record(c.Request.Context(), DTOToAnnotationInput(input))
	if err != nil {
		h.writeError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, SubmitAnnotationResponse{
		Message:    "Annotation submitted successfully",
		NextEvent:  true,
		Annotation: ModelToAnnotationResponse(annotation),
	})
}

// @Summary Initialize store
// @Description Seed the review queue if it is empty. Safe to call repeatedly.
// @Tags System
// @Produce json
// @Success 200 {object} SystemResponse
// @Failure 500 {object} SystemResponse "Initialization failed"
// @Router /system/init [post]
func (h *Handler) initStore(c *gin.Context) {
	log := h.logger.WithField("method", "initStore")

	seeded, err := h.services.Events.Initialize(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to initialize store")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to initialize store", "success": false})
		return
	}

	c.JSON(http.StatusOK, SystemResponse{Message: "Store initialized successfully", Success: true, Seeded: seeded})
}

// @Summary Reset store
// @Description Remove all events and annotations and seed the queue again. Requires API key when keys are configured.
// @Tags System
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} SystemResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} SystemResponse "Reset failed"
// @Router /system/reset [post]
func (h *Handler) resetStore(c *gin.Context) {
	log := h.logger.WithField("method", "resetStore")

	seeded, err := h.services.Events.Reset(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to reset store")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset store", "success": false})
		return
	}

	c.JSON(http.StatusOK, SystemResponse{Message: "Store reset successfully", Success: true, Seeded: seeded})
}

// @Summary Get queue statistics
// @Description Get counts of events and annotations
// @Tags System
// @Produce json
// @Success 200 {object} StatsResponse
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /stats [get]
func (h *Handler) getStats(c *gin.Context) {
	log := h.logger.WithField("method", "getStats")

	stats, err := h.services.Events.Stats(c.Request.Context())
	if err != nil {
		h.writeError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, ModelToStatsResponse(stats))
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// bindAndValidate разбирает JSON и проверяет теги validate. При ошибке ответ уже записан.
func (h *Handler) bindAndValidate(c *gin.Context, log *logrus.Entry, input any) bool {
	if err := c.ShouldBindJSON(input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return false
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: fe.Field() + ": " + describeFieldError(fe), Field: fe.Field()})
			return false
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return false
	}
	return true
}

// writeError переводит ошибку сервиса в HTTP-ответ. Детали внутренних ошибок наружу не попадают.
func (h *Handler) writeError(c *gin.Context, log *logrus.Entry, err error) {
	var vErr *models.ValidationError
	switch {
	case errors.As(err, &vErr):
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: vErr.Error(), Field: vErr.Field})
	case errors.Is(err, models.ErrInvalidCredentials):
		log.Warn("Invalid credentials")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid credentials"})
	case errors.Is(err, models.ErrQueueExhausted):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: exhaustedError, Message: exhaustedMessage})
	case errors.Is(err, models.ErrNotFound):
		log.WithError(err).Warn("Resource not found")
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	default:
		log.WithError(err).Error("Request failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "required_if":
		return "is required when decision is rejected"
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "issue_reason":
		return "must be one of " + issueReasonList()
	case "gt":
		return "must be positive"
	case "max":
		return "is too long"
	}
	return "is invalid"
}

// validIssueReason проверяет причину только для отклоненного решения; при принятии она отбрасывается
func validIssueReason(fl validator.FieldLevel) bool {
	if fl.Parent().FieldByName("Decision").String() != string(models.DecisionRejected) {
		return true
	}
	return models.IssueReason(fl.Field().String()).IsValid()
}

func issueReasonList() string {
	reasons := models.IssueReasons()
	names := make([]string, len(reasons))
	for i, reason := range reasons {
		names[i] = string(reason)
	}
	return strings.Join(names, ", ")
}
