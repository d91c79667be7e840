package seed

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/shenikar/traffic_review/internal/models"
)

//go:embed events.yaml
var defaultEvents []byte

// Load возвращает события для заполнения очереди: из YAML-файла, если путь задан,
// иначе встроенный набор по умолчанию
func Load(path string) ([]models.EventInit, error) {
	data := defaultEvents
	if path != "" {
		fileData, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
		}
		data = fileData
	}
	return Parse(data)
}

// Parse разбирает YAML-список событий и проверяет обязательные поля
func Parse(data []byte) ([]models.EventInit, error) {
	var events []models.EventInit
	if err := yaml.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("failed to parse seed events: %w", err)
	}

	for i, event := range events {
		if strings.TrimSpace(event.VideoRef) == "" {
			return nil, fmt.Errorf("seed event %d: video_ref is required", i+1)
		}
		if !event.Kind.IsValid() {
			return nil, fmt.Errorf("seed event %d: unknown kind %q", i+1, event.Kind)
		}
	}
	return events, nil
}
