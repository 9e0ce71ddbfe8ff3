package aggregation

import "sync"

// Bucket is the running mean of one aggregation window.
//
// The ingestion worker accumulates into it and the window's flusher drains it.
// Both paths take the bucket's own mutex, so hourly and daily buckets never
// contend with each other.
type Bucket struct {
	mu    sync.Mutex
	mean  float64
	count int
}

// NewBucket returns an empty bucket.
func NewBucket() *Bucket {
	return &Bucket{}
}

// Accumulate folds v into the running mean.
// The incremental form mean += (v-mean)/n never materializes the raw sum.
func (b *Bucket) Accumulate(v float64) {
	b.mu.Lock()
	b.count++
	b.mean += (v - b.mean) / float64(b.count)
	b.mu.Unlock()
}

// DrainAndReset returns the mean and sample count accumulated since the last
// drain and empties the bucket in the same critical section.
func (b *Bucket) DrainAndReset() (mean float64, count int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	mean, count = b.mean, b.count
	b.mean, b.count = 0, 0
	return mean, count
}

// Snapshot returns the current mean and count without resetting.
func (b *Bucket) Snapshot() (mean float64, count int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mean, b.count
}
