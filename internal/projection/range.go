package projection

import (
	"strings"
	"time"

	"github.com/aevon-lab/thermod/internal/core/record"
)

// boundLayout parses "YYYY-MM-DD HH:MM:SS" with an optional fractional second.
const boundLayout = "2006-01-02 15:04:05"

// ResolveRange turns raw query bounds into an inclusive Range. If either
// bound is missing or unparsable the whole range becomes [startedAt, now].
func ResolveRange(q StatsQuery, startedAt, now time.Time) Range {
	start, okStart := parseBound(q.Start, false)
	end, okEnd := parseBound(q.End, true)
	if !okStart || !okEnd {
		return Range{
			Start: record.FormatTimestamp(startedAt),
			End:   record.FormatTimestamp(now),
		}
	}
	return Range{Start: start, End: end}
}

// parseBound accepts a space or "T" between date and time. A bound with whole
// seconds covers the full second: .000 for a start, .999 for an end.
func parseBound(raw string, isEnd bool) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}
	if len(s) > 10 && s[10] == 'T' {
		s = s[:10] + " " + s[11:]
	}

	t, err := time.ParseInLocation(boundLayout, s, time.Local)
	if err != nil {
		return "", false
	}
	if isEnd && !strings.Contains(s[len(boundLayout)-len("05"):], ".") {
		t = t.Add(999 * time.Millisecond)
	}
	return record.FormatTimestamp(t), true
}
