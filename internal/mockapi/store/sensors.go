package store

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/sgrsensor/internal/client/models"
)

// DataTimeLayout is the sample timestamp format of SensorData.
const DataTimeLayout = "2006-01-02 15:04:05"

// maxDataPoints caps a data window.
const maxDataPoints = 1000

// ---- sensors ----

func (s *Store) CreateSensor(in models.NewSensor) (models.Sensor, error) {
	if strings.TrimSpace(in.Name) == "" {
		return models.Sensor{}, fmt.Errorf("sensor name: %w", ErrMissingField)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sn := &models.Sensor{
		ID:             s.nextID("sensor"),
		Name:           in.Name,
		Description:    in.Description,
		SamplingPeriod: in.SamplingPeriod,
		InputSize:      in.InputSize,
		OutputSize:     in.OutputSize,
		Created:        s.stamp(),
	}
	s.sensors[sn.ID] = sn
	return *sn, nil
}

func (s *Store) Sensor(id int64) (models.Sensor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sn, ok := s.sensors[id]
	if !ok {
		return models.Sensor{}, notFound("sensor", id)
	}
	return *sn, nil
}

func (s *Store) Sensors() []models.Sensor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedValues(s.sensors)
}

// PutSensor replaces an existing sensor. ID and creation date are kept.
func (s *Store) PutSensor(id int64, sn models.Sensor) (models.Sensor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.sensors[id]
	if !ok {
		return models.Sensor{}, notFound("sensor", id)
	}
	sn.ID, sn.Created = cur.ID, cur.Created
	*cur = sn
	return sn, nil
}

// DeleteSensor removes the sensor and its signals.
func (s *Store) DeleteSensor(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sensors[id]; !ok {
		return notFound("sensor", id)
	}
	delete(s.sensors, id)
	delete(s.modes, id)
	delete(s.builds, id)
	for sid, sg := range s.signals {
		if sg.SensorID == id {
			delete(s.signals, sid)
		}
	}
	return nil
}

func (s *Store) DeleteSensors() {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.sensors)
	clear(s.modes)
	clear(s.builds)
	for sid, sg := range s.signals {
		if sg.SensorID != 0 {
			delete(s.signals, sid)
		}
	}
}

func (s *Store) SetSensorState(id int64, running bool) (models.SensorState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sn, ok := s.sensors[id]
	if !ok {
		return models.SensorState{}, notFound("sensor", id)
	}
	sn.State = running
	return models.SensorState{SensorID: id, State: running}, nil
}

func (s *Store) SensorStates() []models.SensorState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.SensorState, 0, len(s.sensors))
	for _, sn := range sortedValues(s.sensors) {
		out = append(out, models.SensorState{SensorID: sn.ID, State: sn.State})
	}
	return out
}

// ResetSensors stops every sensor.
func (s *Store) ResetSensors() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sn := range s.sensors {
		sn.State = false
	}
}

func (s *Store) Mode(id int64) (models.SensorMode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.sensors[id]; !ok {
		return models.SensorMode{}, notFound("sensor", id)
	}
	return models.SensorMode{SensorID: id, Mode: s.modes[id]}, nil
}

func (s *Store) SetMode(id int64, mode int) (models.SensorMode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sensors[id]; !ok {
		return models.SensorMode{}, notFound("sensor", id)
	}
	s.modes[id] = mode
	return models.SensorMode{SensorID: id, Mode: mode}, nil
}

func (s *Store) Builds(id int64) ([]models.Build, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.sensors[id]; !ok {
		return nil, notFound("sensor", id)
	}
	return slices.Clone(s.builds[id]), nil
}

// Build records a new model build for the sensor.
func (s *Store) Build(id int64) (models.Build, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sn, ok := s.sensors[id]
	if !ok {
		return models.Build{}, notFound("sensor", id)
	}
	b := models.Build{
		ID:      int64(len(s.builds[id]) + 1),
		Name:    fmt.Sprintf("%s-build-%d", sn.Name, len(s.builds[id])+1),
		Created: s.stamp(),
	}
	s.builds[id] = append(s.builds[id], b)
	return b, nil
}

// SetVariables assigns setpoints to the sensor's signals by position in
// signal id order. Extra signals keep their setpoint.
func (s *Store) SetVariables(id int64, values []models.Setpoint) ([]models.Signal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sensors[id]; !ok {
		return nil, notFound("sensor", id)
	}
	signals := s.signalsOf(id)
	if len(values) > len(signals) {
		return nil, fmt.Errorf("%d values for %d signals", len(values), len(signals))
	}
	for i, v := range values {
		s.signals[signals[i].ID].Setpoint = v.Setpoint
		signals[i].Setpoint = v.Setpoint
	}
	return signals, nil
}

// Data synthesizes one sample per sampling period in [start, end], each
// signal reading its setpoint (inputs) or current value (outputs). An
// empty window returns nil.
func (s *Store) Data(id int64, start, end time.Time) (*models.SensorData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sn, ok := s.sensors[id]
	if !ok {
		return nil, notFound("sensor", id)
	}

	period := time.Duration(max(sn.SamplingPeriod, 1)) * time.Second
	var stamps []string
	for t := start; !t.After(end) && len(stamps) < maxDataPoints; t = t.Add(period) {
		stamps = append(stamps, t.UTC().Format(DataTimeLayout))
	}
	if len(stamps) == 0 {
		return nil, nil
	}

	data := &models.SensorData{DateTime: stamps}
	for _, sg := range s.signalsOf(id) {
		v := sg.Setpoint
		if sg.Group == models.GroupOutput && sg.Value != nil {
			v = *sg.Value
		}
		series := models.SignalSeries{ID: sg.ID, Name: sg.Name, Description: sg.Description, Value: make([]float64, len(stamps))}
		for i := range series.Value {
			series.Value[i] = v
		}
		data.Values = append(data.Values, series)
	}
	return data, nil
}
