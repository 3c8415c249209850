package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/sgrsensor/internal/client/client"
	"github.com/dmitrijs2005/sgrsensor/internal/client/models"
)

// SignalService manages process signals and their setpoints.
type SignalService interface {
	List(ctx context.Context) ([]models.Signal, error)
	Get(ctx context.Context, id int64) (*models.Signal, error)
	Create(ctx context.Context, s models.NewSignal) (*models.Signal, error)
	Update(ctx context.Context, id int64, s models.NewSignal) (*models.Signal, error)
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
	SetSetpoint(ctx context.Context, id int64, value float64) (*models.Signal, error)
}

type signalService struct {
	client client.Client
}

func NewSignalService(c client.Client) SignalService {
	return &signalService{client: c}
}

func signalPath(id int64) string {
	return fmt.Sprintf("/signal/%d", id)
}

func (s *signalService) List(ctx context.Context) ([]models.Signal, error) {
	return decodeList[models.Signal](s.client.Get(ctx, "/signal"))
}

func (s *signalService) Get(ctx context.Context, id int64) (*models.Signal, error) {
	sg, err := decode[models.Signal](s.client.Get(ctx, signalPath(id)))
	if err != nil {
		return nil, err
	}
	return &sg, nil
}

func (s *signalService) Create(ctx context.Context, in models.NewSignal) (*models.Signal, error) {
	if in.SetpointMax < in.SetpointMin {
		return nil, fmt.Errorf("create signal %q: setpoint_max %g below setpoint_min %g", in.Name, in.SetpointMax, in.SetpointMin)
	}
	sg, err := decode[models.Signal](s.client.Post(ctx, "/signal", in))
	if err != nil {
		return nil, err
	}
	return &sg, nil
}

func (s *signalService) Update(ctx context.Context, id int64, in models.NewSignal) (*models.Signal, error) {
	sg, err := decode[models.Signal](s.client.Put(ctx, signalPath(id), in))
	if err != nil {
		return nil, err
	}
	return &sg, nil
}

func (s *signalService) Delete(ctx context.Context, id int64) error {
	return expect(s.client.Delete(ctx, signalPath(id)))
}

func (s *signalService) DeleteAll(ctx context.Context) error {
	return expect(s.client.Delete(ctx, "/signal"))
}

// SetSetpoint reads the signal to learn its bounds, then writes the new
// setpoint. Out-of-range or off-grid values never reach the backend.
func (s *signalService) SetSetpoint(ctx context.Context, id int64, value float64) (*models.Signal, error) {
	sg, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := sg.CheckSetpoint(value); err != nil {
		return nil, fmt.Errorf("signal %q: %w", sg.Name, err)
	}

	out, err := decode[models.Signal](s.client.Put(ctx, signalPath(id), map[string]float64{"setpoint": value}))
	if err != nil {
		return nil, err
	}
	return &out, nil
}
