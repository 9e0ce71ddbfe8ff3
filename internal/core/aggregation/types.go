package aggregation

import "time"

// Window labels used for the two built-in granularities.
const (
	LabelHourly = "1h"
	LabelDaily  = "1d"
)

// Aggregate is the durable result of draining one bucket.
type Aggregate struct {
	Window    string    // window label, e.g. "1h", "1d"
	At        time.Time // flush time
	Timestamp string    // At formatted with record.TimestampLayout
	Mean      float64
	Count     int
}
