package store

import (
	"fmt"

	"github.com/dmitrijs2005/sgrsensor/internal/client/models"
)

// Seed creates an admin account and a demo sensor with two input signals
// and one output signal. On an empty store both get id 1.
func (s *Store) Seed(adminEmail, adminPassword string) error {
	if _, err := s.CreateUser(models.NewUser{
		Name:     "Admin",
		LastName: "SGR",
		Email:    adminEmail,
		Password: adminPassword,
	}, RoleAdmin); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	sn, err := s.CreateSensor(models.NewSensor{
		Name:           "SGR Sensor",
		Description:    "demo soft sensor",
		SamplingPeriod: 5,
		InputSize:      2,
		OutputSize:     1,
		ModelPath:      "demo",
	})
	if err != nil {
		return fmt.Errorf("seed sensor: %w", err)
	}

	for _, in := range []models.NewSignal{
		{SensorID: sn.ID, Name: "FT-101", Description: "feed flow", Unit: "m3/h", Group: models.GroupInput, Setpoint: 40, SetpointMin: 0, SetpointMax: 100, SetpointStep: 0.5},
		{SensorID: sn.ID, Name: "TT-102", Description: "reactor temperature", Unit: "C", Group: models.GroupInput, Setpoint: 180, SetpointMin: 150, SetpointMax: 220, SetpointStep: 1},
		{SensorID: sn.ID, Name: "AT-201", Description: "product purity", Unit: "%", Group: models.GroupOutput},
	} {
		if _, err := s.CreateSignal(in); err != nil {
			return fmt.Errorf("seed signal %s: %w", in.Name, err)
		}
	}
	return nil
}
