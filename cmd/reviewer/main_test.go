package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shenikar/traffic_review/internal/client"
	"github.com/shenikar/traffic_review/internal/models"
	"github.com/shenikar/traffic_review/internal/session"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIssueReason(t *testing.T) {
	tests := []struct {
		arg     string
		want    models.IssueReason
		wantErr bool
	}{
		{arg: "1", want: models.IssueFalsePositive},
		{arg: "4", want: models.IssueDMVInformation},
		{arg: "MAIN_CAMERA_ISSUE", want: models.IssueMainCamera},
		{arg: "0", wantErr: true},
		{arg: "5", wantErr: true},
		{arg: "blurry", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := parseIssueReason(tt.arg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCLI_RunRejectFlow(t *testing.T) {
	// Подготовка: сервер с одним событием
	var submitted atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/events/next":
			if submitted.Load() {
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte(`{"error":"No more events to process"}`))
				return
			}
			_, _ = w.Write([]byte(`{"event":{"id":3,"videoRef":"v.mp4","plateImageRef":"p.jpg","kind":"speeding","location":"Highway 101","processed":false}}`))
		case "/api/v1/annotations":
			submitted.Store(true)
			_, _ = w.Write([]byte(`{"message":"Annotation submitted successfully","nextEvent":true,"annotation":{"id":1,"eventId":3,"reviewerId":1,"decision":"rejected","issueReason":"license_plate_issue"}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	c := client.New(srv.URL, srv.Client())
	var out bytes.Buffer
	app := &cli{
		session: session.New(c, models.Reviewer{ID: 1}, logger),
		client:  c,
		timeout: 5 * time.Second,
		out:     &out,
	}
	require.NoError(t, app.session.Start(context.Background()))

	// Действие
	input := strings.Join([]string{"confirm", "reject", "confirm", "reason 3", "bogus", "confirm", "quit"}, "\n")
	err := app.run(context.Background(), strings.NewReader(input))

	// Проверки
	require.NoError(t, err)
	assert.True(t, submitted.Load())
	assert.Equal(t, session.StateExhausted, app.session.State())
	assert.Contains(t, out.String(), "select an issue reason before rejecting")
	assert.Contains(t, out.String(), `unknown command "bogus"`)
	assert.Contains(t, out.String(), "No more events to process")
}
