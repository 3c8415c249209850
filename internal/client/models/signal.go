package models

import (
	"errors"
	"fmt"
	"math"
)

// Signal groups.
const (
	GroupInput  = "input"
	GroupOutput = "output"
)

var ErrSetpointOutOfRange = errors.New("setpoint out of range")

// Signal is a process variable attached to a sensor. Input signals carry an
// operator setpoint bounded by SetpointMin/SetpointMax in SetpointStep
// increments.
type Signal struct {
	ID           int64     `json:"id"`
	SensorID     int64     `json:"sensor_id,omitempty"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Unit         string    `json:"unit"`
	Group        string    `json:"group,omitempty"`
	Value        *float64  `json:"value"`
	Setpoint     float64   `json:"setpoint"`
	SetpointMin  float64   `json:"setpoint_min"`
	SetpointMax  float64   `json:"setpoint_max"`
	SetpointStep float64   `json:"setpoint_step"`
	Created      Timestamp `json:"created_date,omitzero"`
}

// NewSignal is the body of a signal creation call.
type NewSignal struct {
	SensorID     int64   `json:"sensor_id,omitempty"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Unit         string  `json:"unit"`
	Group        string  `json:"group,omitempty"`
	Setpoint     float64 `json:"setpoint"`
	SetpointMin  float64 `json:"setpoint_min"`
	SetpointMax  float64 `json:"setpoint_max"`
	SetpointStep float64 `json:"setpoint_step"`
}

// CheckSetpoint returns an error wrapping ErrSetpointOutOfRange when v is
// outside [SetpointMin, SetpointMax] or not a whole number of steps above
// SetpointMin. A zero step disables the grid check.
func (s *Signal) CheckSetpoint(v float64) error {
	if math.IsNaN(v) || v < s.SetpointMin || v > s.SetpointMax {
		return fmt.Errorf("%w: %g not in [%g, %g]", ErrSetpointOutOfRange, v, s.SetpointMin, s.SetpointMax)
	}
	if s.SetpointStep <= 0 {
		return nil
	}
	steps := (v - s.SetpointMin) / s.SetpointStep
	if math.Abs(steps-math.Round(steps)) > 1e-9 {
		return fmt.Errorf("%w: %g is not a multiple of step %g", ErrSetpointOutOfRange, v, s.SetpointStep)
	}
	return nil
}
