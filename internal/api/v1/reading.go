package v1

import (
	"fmt"
	"time"

	"github.com/aevon-lab/thermod/internal/core/record"
)

// Reading is one timestamped sample from the sensor.
// It is immutable once built by the ingestion worker.
type Reading struct {
	// Timestamp is local wall-clock time formatted with record.TimestampLayout.
	Timestamp string `json:"timestamp"`

	// Value is the parsed sample. Unparsable input is stored as 0.
	Value float64 `json:"-"`

	// Temperature is Value rendered with six fractional digits.
	// This is the string persisted in the store and served over HTTP.
	Temperature string `json:"temperature"`
}

// NewReading stamps v with t.
func NewReading(t time.Time, v float64) Reading {
	return Reading{
		Timestamp:   record.FormatTimestamp(t),
		Value:       v,
		Temperature: record.FormatValue(v),
	}
}

// Line returns the fixed-length record written to the ring logs.
func (r Reading) Line() string {
	return record.Fixed(fmt.Sprintf("%s %s", r.Timestamp, r.Temperature))
}

// CurrentResponse is the body of GET /current.
type CurrentResponse struct {
	Temperature string `json:"temperature"`
}

// AggregateResponse is one flushed window in GET /stats/hourly and GET /stats/daily.
type AggregateResponse struct {
	Timestamp   string `json:"timestamp"`
	Temperature string `json:"temperature"`
	Count       int    `json:"count"`
}
