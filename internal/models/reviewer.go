package models

// Reviewer - аннотатор. Хэш пароля никогда не сериализуется.
type Reviewer struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	DisplayName  string `json:"displayName"`
}

// VehicleRecord - регистрационные данные транспортного средства
type VehicleRecord struct {
	Plate            string `json:"plate"`
	Make             string `json:"make"`
	Model            string `json:"model"`
	Color            string `json:"color"`
	RegistrationDate string `json:"registrationDate"`
	ExpirationDate   string `json:"expirationDate"`
	OwnerName        string `json:"ownerName"`
	Address          string `json:"address"`
}

// Snapshot возвращает часть записи, сохраняемую вместе с аннотацией
func (v *VehicleRecord) Snapshot() *VehicleSnapshot {
	if v == nil {
		return nil
	}
	return &VehicleSnapshot{Make: v.Make, Model: v.Model, Color: v.Color}
}
