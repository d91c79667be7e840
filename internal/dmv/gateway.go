package dmv

import (
	"context"
	"hash/fnv"
	"time"

	"github.com/shenikar/traffic_review/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	registrationDate = "2020-05-15"
	expirationDate   = "2025-05-15"
	ownerName        = "John Doe"
	ownerAddress     = "123 Main St, Anytown, ST 12345"
)

type vehicle struct {
	make, model, color string
}

var catalogue = []vehicle{
	{"Toyota", "Camry", "Silver"},
	{"Honda", "Civic", "Blue"},
	{"Ford", "F-150", "White"},
	{"Chevrolet", "Silverado", "Black"},
	{"Nissan", "Altima", "Red"},
	{"BMW", "3 Series", "Black"},
	{"Mercedes-Benz", "C-Class", "White"},
	{"Audi", "A4", "Gray"},
	{"Lexus", "ES", "Silver"},
	{"Hyundai", "Elantra", "Blue"},
	{"Kia", "Optima", "White"},
	{"Subaru", "Outback", "Green"},
	{"Mazda", "CX-5", "Red"},
	{"Volkswagen", "Jetta", "Black"},
	{"Tesla", "Model 3", "White"},
}

// MockGateway - заглушка реестра DMV. Возвращает правдоподобную синтетическую запись
// после искусственной задержки. Один и тот же номер всегда дает одну и ту же машину.
type MockGateway struct {
	latency time.Duration
	logger  *logrus.Logger
}

func NewMockGateway(latency time.Duration, logger *logrus.Logger) *MockGateway {
	return &MockGateway{
		latency: latency,
		logger:  logger,
	}
}

// Lookup ждет заданную задержку (или отмены контекста) и возвращает запись по номеру
func (g *MockGateway) Lookup(ctx context.Context, plate string) (*models.VehicleRecord, error) {
	if g.latency > 0 {
		timer := time.NewTimer(g.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	v := catalogue[catalogueIndex(plate)]
	g.logger.WithFields(logrus.Fields{
		"gateway": "dmv_mock",
		"plate":   plate,
		"make":    v.make,
	}).Debug("Synthetic DMV record returned")

	return &models.VehicleRecord{
		Plate:            plate,
		Make:             v.make,
		Model:            v.model,
		Color:            v.color,
		RegistrationDate: registrationDate,
		ExpirationDate:   expirationDate,
		OwnerName:        ownerName,
		Address:          ownerAddress,
	}, nil
}

func catalogueIndex(plate string) int {
	h := fnv.New32a()
	h.Write([]byte(plate))
	return int(h.Sum32() % uint32(len(catalogue)))
}
