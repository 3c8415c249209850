package store

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/sgrsensor/internal/client/models"
)

func (s *Store) signalsOf(sensorID int64) []models.Signal {
	var out []models.Signal
	for _, sg := range sortedValues(s.signals) {
		if sg.SensorID == sensorID {
			out = append(out, sg)
		}
	}
	return out
}

// SignalsOf returns the sensor's signals in id order.
func (s *Store) SignalsOf(sensorID int64) ([]models.Signal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.sensors[sensorID]; !ok {
		return nil, notFound("sensor", sensorID)
	}
	return s.signalsOf(sensorID), nil
}

func (s *Store) CreateSignal(in models.NewSignal) (models.Signal, error) {
	if strings.TrimSpace(in.Name) == "" {
		return models.Signal{}, fmt.Errorf("signal name: %w", ErrMissingField)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if in.SensorID != 0 {
		if _, ok := s.sensors[in.SensorID]; !ok {
			return models.Signal{}, notFound("sensor", in.SensorID)
		}
	}

	sg := &models.Signal{
		ID:           s.nextID("signal"),
		SensorID:     in.SensorID,
		Name:         in.Name,
		Description:  in.Description,
		Unit:         in.Unit,
		Group:        in.Group,
		Setpoint:     in.Setpoint,
		SetpointMin:  in.SetpointMin,
		SetpointMax:  in.SetpointMax,
		SetpointStep: in.SetpointStep,
		Created:      s.stamp(),
	}
	s.signals[sg.ID] = sg
	return *sg, nil
}

func (s *Store) Signal(id int64) (models.Signal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sg, ok := s.signals[id]
	if !ok {
		return models.Signal{}, notFound("signal", id)
	}
	return *sg, nil
}

func (s *Store) Signals() []models.Signal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedValues(s.signals)
}

// PutSignal replaces an existing signal. ID and creation date are kept.
func (s *Store) PutSignal(id int64, sg models.Signal) (models.Signal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.signals[id]
	if !ok {
		return models.Signal{}, notFound("signal", id)
	}
	sg.ID, sg.Created = cur.ID, cur.Created
	*cur = sg
	return sg, nil
}

func (s *Store) DeleteSignal(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.signals[id]; !ok {
		return notFound("signal", id)
	}
	delete(s.signals, id)
	return nil
}

func (s *Store) DeleteSignals() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.signals)
}
