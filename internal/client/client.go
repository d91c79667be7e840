package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shenikar/traffic_review/internal/models"
)

const apiPrefix = "/api/v1"

// StatusError - ответ сервера с неожиданным статусом
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server responded with status %d: %s", e.StatusCode, e.Message)
}

// Client - клиент HTTP API сервиса проверки. Реализует session.Backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New создает клиент. httpClient может быть nil.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

type errorBody struct {
	Error   string `json:"error"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Login проверяет учетные данные. 401 превращается в models.ErrInvalidCredentials.
func (c *Client) Login(ctx context.Context, email, password string) (*models.Reviewer, error) {
	var resp struct {
		Reviewer models.Reviewer `json:"reviewer"`
	}
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &resp, nil); err != nil {
		return nil, err
	}
	return &resp.Reviewer, nil
}

// NextEvent запрашивает событие. 404 превращается в models.ErrQueueExhausted.
func (c *Client) NextEvent(ctx context.Context) (*models.Event, error) {
	var resp struct {
		Event models.Event `json:"event"`
	}
	if err := c.do(ctx, http.MethodGet, "/events/next", nil, &resp, nil); err != nil {
		return nil, err
	}
	return &resp.Event, nil
}

func (c *Client) Lookup(ctx context.Context, plate string) (*models.VehicleRecord, error) {
	var record models.VehicleRecord
	body := map[string]string{"plateNumber": plate}
	if err := c.do(ctx, http.MethodPost, "/dmv/lookup", body, &record, nil); err != nil {
		return nil, err
	}
	return &record, nil
}

func (c *Client) Submit(ctx context.Context, input models.AnnotationInput) (*models.Annotation, error) {
	var resp struct {
		Message    string             `json:"message"`
		NextEvent  bool               `json:"nextEvent"`
		Annotation *models.Annotation `json:"annotation"`
	}
	if err := c.do(ctx, http.MethodPost, "/annotations", input, &resp, nil); err != nil {
		return nil, err
	}
	if resp.Annotation == nil {
		return &models.Annotation{EventID: input.EventID, ReviewerID: input.ReviewerID, Decision: input.Decision}, nil
	}
	return resp.Annotation, nil
}

// Reset очищает и заново заполняет очередь. apiKey может быть пустым.
func (c *Client) Reset(ctx context.Context, apiKey string) (int, error) {
	var resp struct {
		Seeded int `json:"seeded"`
	}
	var headers map[string]string
	if apiKey != "" {
		headers = map[string]string{"X-API-Key": apiKey}
	}
	if err := c.do(ctx, http.MethodPost, "/system/reset", nil, &resp, headers); err != nil {
		return 0, err
	}
	return resp.Seeded, nil
}

func (c *Client) Stats(ctx context.Context) (*models.QueueStats, error) {
	var stats models.QueueStats
	if err := c.do(ctx, http.MethodGet, "/stats", nil, &stats, nil); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any, headers map[string]string) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("client: failed to encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, body)
	if err != nil {
		return fmt.Errorf("client: failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("client: %s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("client: failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return translateError(resp.StatusCode, path, data)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("client: failed to decode response: %w", err)
		}
	}
	return nil
}

// translateError восстанавливает вид ошибки по статусу ответа
func translateError(status int, path string, data []byte) error {
	var body errorBody
	_ = json.Unmarshal(data, &body)

	switch {
	case status == http.StatusBadRequest:
		return &models.ValidationError{
			Field:   body.Field,
			Message: strings.TrimPrefix(body.Error, body.Field+": "),
		}
	case status == http.StatusUnauthorized && path == "/auth/login":
		return models.ErrInvalidCredentials
	case status == http.StatusNotFound && path == "/events/next":
		return models.ErrQueueExhausted
	}

	message := body.Error
	if message == "" {
		message = http.StatusText(status)
	}
	return &StatusError{StatusCode: status, Message: message}
}
