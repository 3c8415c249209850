package models

// Sensor is a soft sensor: a model fed by input signals that estimates the
// output signals every SamplingPeriod seconds while running.
type Sensor struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	SamplingPeriod int       `json:"sampling_period"`
	InputSize      int       `json:"input_size"`
	OutputSize     int       `json:"output_size"`
	State          bool      `json:"state"`
	Created        Timestamp `json:"created_date,omitzero"`
}

// NewSensor is the body of a sensor creation call. ModelPath names the
// trained model file on the backend, without extension.
type NewSensor struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	SamplingPeriod int    `json:"sampling_period"`
	InputSize      int    `json:"input_size"`
	OutputSize     int    `json:"output_size"`
	ModelPath      string `json:"model_path"`
}

// SensorState reports whether a sensor is running.
type SensorState struct {
	SensorID int64 `json:"sensor_id"`
	State    bool  `json:"state"`
}

// SensorMode is the operating mode selector of a sensor.
type SensorMode struct {
	SensorID int64 `json:"sensor_id"`
	Mode     int   `json:"mode"`
}

// Build describes one trained model build available for a sensor.
type Build struct {
	ID      int64     `json:"id"`
	Name    string    `json:"name"`
	Created Timestamp `json:"created_date,omitzero"`
}

// SignalSeries is one signal's samples within a SensorData window.
type SignalSeries struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Value       []float64 `json:"value"`
}

// SensorData is a time window of samples, one series per signal, aligned
// on DateTime.
type SensorData struct {
	DateTime []string       `json:"date_time"`
	Values   []SignalSeries `json:"values"`
}

// Setpoint is one entry of a set-variables call. Entries are matched to
// the sensor's signals by position, in signal id order.
type Setpoint struct {
	Setpoint float64 `json:"setpoint"`
}

// Variables is the body of a set-variables call.
type Variables struct {
	SensorID int64      `json:"sensor_id"`
	Values   []Setpoint `json:"values"`
}
