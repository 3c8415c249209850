package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// timestampLayouts are tried in order. The backend serializes naive local
// datetimes without a zone ("2024-03-01T10:15:00.123456").
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Timestamp is a time.Time that accepts the backend's datetime formats.
// A JSON null or empty string leaves it zero.
type Timestamp struct {
	time.Time
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format("2006-01-02T15:04:05.999999"))
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == nil || *s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if v, err := time.Parse(layout, *s); err == nil {
			t.Time = v
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", *s)
}
