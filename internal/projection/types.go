package projection

// StatsQuery is the query string of /stats, /stats/hourly and /stats/daily.
// Both bounds are optional; see ResolveRange.
type StatsQuery struct {
	Start string `form:"start"`
	End   string `form:"end"`
}

// Range is a resolved, inclusive timestamp range in record.TimestampLayout.
type Range struct {
	Start string
	End   string
}
