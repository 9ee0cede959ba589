package pipeline

import (
	"sort"
	"sync"
	"time"
)

// Pipeline stage names used for stats and metrics.
const (
	StageExtract  = "extract"
	StageTokenize = "tokenize"
	StageCount    = "count"
	StageTotal    = "total"
)

type sample struct {
	timestamp  time.Time
	durationMs float64
}

// StatsSnapshot is a point-in-time aggregate of stage latency samples.
type StatsSnapshot struct {
	Count int     `json:"count"`
	MinMs float64 `json:"min_ms"`
	MaxMs float64 `json:"max_ms"`
	AvgMs float64 `json:"avg_ms"`
	P50Ms float64 `json:"p50_ms"`
	P95Ms float64 `json:"p95_ms"`
	P99Ms float64 `json:"p99_ms"`
}

// StageStats tracks recent per-stage latencies within a rolling window.
type StageStats struct {
	mu      sync.Mutex
	samples map[string][]sample
	maxAge  time.Duration
	now     func() time.Time
}

func NewStageStats(maxAge time.Duration) *StageStats {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &StageStats{
		samples: make(map[string][]sample),
		maxAge:  maxAge,
		now:     time.Now,
	}
}

func (s *StageStats) Record(stage string, d time.Duration) {
	if d < 0 {
		d = 0
	}
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(stage, now)
	s.samples[stage] = append(s.samples[stage], sample{
		timestamp:  now,
		durationMs: float64(d) / float64(time.Millisecond),
	})
}

// Snapshot aggregates the samples of one stage.
func (s *StageStats) Snapshot(stage string) StatsSnapshot {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(stage, now)
	return summarize(s.samples[stage])
}

// All returns a snapshot for every stage that has recorded samples.
func (s *StageStats) All() map[string]StatsSnapshot {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]StatsSnapshot, len(s.samples))
	for stage := range s.samples {
		s.pruneLocked(stage, now)
		out[stage] = summarize(s.samples[stage])
	}
	return out
}

func (s *StageStats) pruneLocked(stage string, now time.Time) {
	cutoff := now.Add(-s.maxAge)
	samples := s.samples[stage]
	writeIdx := 0
	for _, sm := range samples {
		if !sm.timestamp.Before(cutoff) {
			samples[writeIdx] = sm
			writeIdx++
		}
	}
	if _, ok := s.samples[stage]; ok {
		s.samples[stage] = samples[:writeIdx]
	}
}

func summarize(samples []sample) StatsSnapshot {
	if len(samples) == 0 {
		return StatsSnapshot{}
	}
	values := make([]float64, 0, len(samples))
	var sum float64
	for _, sm := range samples {
		values = append(values, sm.durationMs)
		sum += sm.durationMs
	}
	sort.Float64s(values)

	return StatsSnapshot{
		Count: len(values),
		MinMs: values[0],
		MaxMs: values[len(values)-1],
		AvgMs: sum / float64(len(values)),
		P50Ms: percentile(values, 50),
		P95Ms: percentile(values, 95),
		P99Ms: percentile(values, 99),
	}
}

func percentile(sortedValues []float64, pct float64) float64 {
	if len(sortedValues) == 0 {
		return 0
	}
	if pct <= 0 {
		return sortedValues[0]
	}
	if pct >= 100 {
		return sortedValues[len(sortedValues)-1]
	}

	index := (float64(len(sortedValues)-1) * pct) / 100.0
	lower := int(index)
	upper := lower + 1
	if upper >= len(sortedValues) {
		return sortedValues[lower]
	}
	weight := index - float64(lower)
	lo, hi := sortedValues[lower], sortedValues[upper]
	return lo + ((hi - lo) * weight)
}
