package record

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Length is the width of every line in a line-addressable log, newline included.
// A record at slot n starts at byte offset n*Length.
const Length = 30

// TimestampLayout is the millisecond-precision local time format used for readings.
// Lexical order of formatted timestamps equals chronological order.
const TimestampLayout = "2006-01-02 15:04:05.000"

// valuePlaces matches the six fractional digits sensors have always been logged with.
const valuePlaces = 6

// Fixed renders s as a constant-width record: the first Length-1 bytes of s,
// right-padded with spaces, followed by a newline. Input longer than the
// payload width is truncated.
func Fixed(s string) string {
	var b strings.Builder
	b.Grow(Length)
	if len(s) > Length-1 {
		s = s[:Length-1]
	}
	b.WriteString(s)
	for b.Len() < Length-1 {
		b.WriteByte(' ')
	}
	b.WriteByte('\n')
	return b.String()
}

// Line builds the fixed record for a timestamped value: "<timestamp> <value>".
func Line(timestamp string, value float64) string {
	return Fixed(fmt.Sprintf("%s %s", timestamp, FormatValue(value)))
}

// FormatTimestamp formats t with TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// FormatValue renders a reading with six fractional digits (20.4 -> "20.400000").
func FormatValue(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(valuePlaces)
}

// Trim strips padding and the trailing newline from a fixed record.
func Trim(rec string) string {
	return strings.TrimRight(rec, " \n")
}
