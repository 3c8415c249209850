package services

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/sgrsensor/internal/client/client"
	"github.com/dmitrijs2005/sgrsensor/internal/client/models"
	"github.com/dmitrijs2005/sgrsensor/internal/observable"
)

// DataTimeLayout is how window bounds are written into the data endpoint.
const DataTimeLayout = time.RFC3339

// SensorService drives soft sensors: CRUD, run control, mode selection,
// data windows and setpoints.
//
// Every call that learns a sensor's running state publishes it to the
// observable returned by StateOf, so views can follow start/stop without
// polling.
type SensorService interface {
	List(ctx context.Context) ([]models.Sensor, error)
	Get(ctx context.Context, id int64) (*models.Sensor, error)
	Create(ctx context.Context, s models.NewSensor) (*models.Sensor, error)
	Update(ctx context.Context, id int64, s models.NewSensor) (*models.Sensor, error)
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error

	Signals(ctx context.Context, id int64) ([]models.Signal, error)
	Builds(ctx context.Context, id int64) ([]models.Build, error)
	Build(ctx context.Context, id int64) error

	Start(ctx context.Context, id int64) error
	Stop(ctx context.Context, id int64) error
	Reset(ctx context.Context) error
	State(ctx context.Context, id int64) (bool, error)
	SetState(ctx context.Context, id int64, running bool) (bool, error)
	States(ctx context.Context) ([]models.SensorState, error)

	Mode(ctx context.Context, id int64) (int, error)
	SetMode(ctx context.Context, id int64, mode int) (int, error)

	Data(ctx context.Context, id int64, start, end time.Time) (*models.SensorData, error)
	SetVariables(ctx context.Context, id int64, setpoints []float64) ([]models.Signal, error)

	StateOf(id int64) *observable.Value[bool]
}

type sensorService struct {
	client client.Client

	mu     sync.Mutex
	states map[int64]*observable.Value[bool]
}

func NewSensorService(c client.Client) SensorService {
	return &sensorService{client: c, states: make(map[int64]*observable.Value[bool])}
}

func sensorPath(id int64, parts ...string) string {
	p := fmt.Sprintf("/sensor/%d", id)
	for _, part := range parts {
		p += "/" + part
	}
	return p
}

// StateOf returns the observable running state of sensor id. It starts
// false and follows every state the service observes.
func (s *sensorService) StateOf(id int64) *observable.Value[bool] {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.states[id]
	if !ok {
		v = observable.New(false)
		s.states[id] = v
	}
	return v
}

func (s *sensorService) publish(id int64, running bool) {
	s.StateOf(id).Set(running)
}

func (s *sensorService) List(ctx context.Context) ([]models.Sensor, error) {
	sensors, err := decodeList[models.Sensor](s.client.Get(ctx, "/sensor"))
	if err != nil {
		return nil, err
	}
	for _, sn := range sensors {
		s.publish(sn.ID, sn.State)
	}
	return sensors, nil
}

func (s *sensorService) Get(ctx context.Context, id int64) (*models.Sensor, error) {
	sn, err := decode[models.Sensor](s.client.Get(ctx, sensorPath(id)))
	if err != nil {
		return nil, err
	}
	s.publish(sn.ID, sn.State)
	return &sn, nil
}

func (s *sensorService) Create(ctx context.Context, in models.NewSensor) (*models.Sensor, error) {
	sn, err := decode[models.Sensor](s.client.Post(ctx, "/sensor", in))
	if err != nil {
		return nil, err
	}
	return &sn, nil
}

func (s *sensorService) Update(ctx context.Context, id int64, in models.NewSensor) (*models.Sensor, error) {
	sn, err := decode[models.Sensor](s.client.Put(ctx, sensorPath(id), in))
	if err != nil {
		return nil, err
	}
	return &sn, nil
}

func (s *sensorService) Delete(ctx context.Context, id int64) error {
	return expect(s.client.Delete(ctx, sensorPath(id)))
}

func (s *sensorService) DeleteAll(ctx context.Context) error {
	return expect(s.client.Delete(ctx, "/sensor"))
}

func (s *sensorService) Signals(ctx context.Context, id int64) ([]models.Signal, error) {
	return decodeList[models.Signal](s.client.Get(ctx, sensorPath(id, "signals")))
}

func (s *sensorService) Builds(ctx context.Context, id int64) ([]models.Build, error) {
	return decodeList[models.Build](s.client.Get(ctx, sensorPath(id, "builds")))
}

// Build asks the backend to train a new model build for the sensor.
func (s *sensorService) Build(ctx context.Context, id int64) error {
	return expect(s.client.Get(ctx, sensorPath(id, "build")))
}

func (s *sensorService) Start(ctx context.Context, id int64) error {
	if err := expect(s.client.Get(ctx, sensorPath(id, "start"))); err != nil {
		return fmt.Errorf("start sensor %d: %w", id, err)
	}
	s.publish(id, true)
	return nil
}

func (s *sensorService) Stop(ctx context.Context, id int64) error {
	if err := expect(s.client.Get(ctx, sensorPath(id, "stop"))); err != nil {
		return fmt.Errorf("stop sensor %d: %w", id, err)
	}
	s.publish(id, false)
	return nil
}

// Reset stops every sensor on the backend.
func (s *sensorService) Reset(ctx context.Context) error {
	if err := expect(s.client.Get(ctx, "/sensor/reset")); err != nil {
		return err
	}

	s.mu.Lock()
	states := make([]*observable.Value[bool], 0, len(s.states))
	for _, v := range s.states {
		states = append(states, v)
	}
	s.mu.Unlock()

	for _, v := range states {
		v.Set(false)
	}
	return nil
}

func (s *sensorService) State(ctx context.Context, id int64) (bool, error) {
	st, err := decode[models.SensorState](s.client.Get(ctx, sensorPath(id, "state")))
	if err != nil {
		return false, err
	}
	s.publish(id, st.State)
	return st.State, nil
}

func (s *sensorService) SetState(ctx context.Context, id int64, running bool) (bool, error) {
	flag := 0
	if running {
		flag = 1
	}
	st, err := decode[models.SensorState](s.client.Get(ctx, sensorPath(id, "state", fmt.Sprint(flag))))
	if err != nil {
		return false, err
	}
	s.publish(id, st.State)
	return st.State, nil
}

func (s *sensorService) States(ctx context.Context) ([]models.SensorState, error) {
	states, err := decodeList[models.SensorState](s.client.Get(ctx, "/sensor/states"))
	if err != nil {
		return nil, err
	}
	for _, st := range states {
		s.publish(st.SensorID, st.State)
	}
	return states, nil
}

func (s *sensorService) Mode(ctx context.Context, id int64) (int, error) {
	m, err := decode[models.SensorMode](s.client.Get(ctx, sensorPath(id, "mode")))
	if err != nil {
		return 0, err
	}
	return m.Mode, nil
}

func (s *sensorService) SetMode(ctx context.Context, id int64, mode int) (int, error) {
	if mode < 0 {
		return 0, fmt.Errorf("set mode: negative mode %d", mode)
	}
	m, err := decode[models.SensorMode](s.client.Get(ctx, sensorPath(id, "mode", fmt.Sprint(mode))))
	if err != nil {
		return 0, err
	}
	return m.Mode, nil
}

// Data returns the samples recorded between start and end. An empty window
// yields an empty SensorData rather than an error.
func (s *sensorService) Data(ctx context.Context, id int64, start, end time.Time) (*models.SensorData, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("data window: end %s before start %s", end.Format(DataTimeLayout), start.Format(DataTimeLayout))
	}
	endpoint := sensorPath(id, "data", start.UTC().Format(DataTimeLayout), end.UTC().Format(DataTimeLayout))

	data, err := decode[models.SensorData](s.client.Get(ctx, endpoint))
	if errors.Is(err, client.ErrNoData) {
		return &models.SensorData{}, nil
	}
	if err != nil {
		return nil, err
	}
	return &data, nil
}

// SetVariables writes setpoints for the sensor's signals, matched by
// position in signal id order. Each value is checked against the signal's
// range and step before anything is sent.
func (s *sensorService) SetVariables(ctx context.Context, id int64, setpoints []float64) ([]models.Signal, error) {
	signals, err := s.Signals(ctx, id)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(signals, func(a, b models.Signal) int { return cmp.Compare(a.ID, b.ID) })
	if len(setpoints) > len(signals) {
		return nil, fmt.Errorf("set variables: %d setpoints for %d signals", len(setpoints), len(signals))
	}

	values := make([]models.Setpoint, len(setpoints))
	for i, v := range setpoints {
		if err := signals[i].CheckSetpoint(v); err != nil {
			return nil, fmt.Errorf("signal %q: %w", signals[i].Name, err)
		}
		values[i] = models.Setpoint{Setpoint: v}
	}

	return decodeList[models.Signal](s.client.Post(ctx, "/sensor/variables", models.Variables{SensorID: id, Values: values}))
}
