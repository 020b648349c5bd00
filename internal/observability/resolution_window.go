package observability

import (
	"math"
	"sort"
	"strings"
	"sync"
	"time"
)

type TierStats struct {
	Tier    string  `json:"tier"`
	Samples int     `json:"samples"`
	LastMS  float64 `json:"last_ms"`
	AvgMS   float64 `json:"avg_ms"`
	P50MS   float64 `json:"p50_ms"`
	P95MS   float64 `json:"p95_ms"`
	P99MS   float64 `json:"p99_ms"`
}

type Indicator struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type ResolutionSnapshot struct {
	GeneratedAt time.Time   `json:"generated_at"`
	WindowSize  int         `json:"window_size"`
	Tiers       []TierStats `json:"tiers"`
	Indicators  []Indicator `json:"indicators,omitempty"`
}

// resolutionWindow keeps the last maxSamples latencies per tier in a ring buffer.
type resolutionWindow struct {
	mu         sync.RWMutex
	maxSamples int
	tiers      map[string]*latencyRing
	indicators map[string]int
}

type latencyRing struct {
	values []float64
	next   int
	filled bool
	last   float64
}

func newResolutionWindow(maxSamples int) *resolutionWindow {
	if maxSamples <= 0 {
		maxSamples = 256
	}
	return &resolutionWindow{
		maxSamples: maxSamples,
		tiers:      make(map[string]*latencyRing),
		indicators: make(map[string]int),
	}
}

func (w *resolutionWindow) Observe(tier string, ms float64) {
	if tier == "" || ms < 0 {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	ring, ok := w.tiers[tier]
	if !ok {
		ring = &latencyRing{values: make([]float64, w.maxSamples)}
		w.tiers[tier] = ring
	}
	ring.values[ring.next] = ms
	ring.last = ms
	ring.next++
	if ring.next >= len(ring.values) {
		ring.next = 0
		ring.filled = true
	}
}

func (w *resolutionWindow) ObserveIndicator(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.indicators[name]++
}

func (w *resolutionWindow) Snapshot() ResolutionSnapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()

	keys := make([]string, 0, len(w.tiers))
	for tier := range w.tiers {
		keys = append(keys, tier)
	}
	sort.Strings(keys)

	tiers := make([]TierStats, 0, len(keys))
	for _, tier := range keys {
		ring := w.tiers[tier]
		n := ring.next
		if ring.filled {
			n = len(ring.values)
		}
		if n <= 0 {
			continue
		}
		samples := make([]float64, n)
		copy(samples, ring.values[:n])
		sort.Float64s(samples)

		sum := 0.0
		for _, v := range samples {
			sum += v
		}

		tiers = append(tiers, TierStats{
			Tier:    tier,
			Samples: n,
			LastMS:  round2(ring.last),
			AvgMS:   round2(sum / float64(n)),
			P50MS:   round2(quantile(samples, 0.50)),
			P95MS:   round2(quantile(samples, 0.95)),
			P99MS:   round2(quantile(samples, 0.99)),
		})
	}

	names := make([]string, 0, len(w.indicators))
	for name := range w.indicators {
		names = append(names, name)
	}
	sort.Strings(names)
	indicators := make([]Indicator, 0, len(names))
	for _, name := range names {
		indicators = append(indicators, Indicator{Name: name, Count: w.indicators[name]})
	}

	return ResolutionSnapshot{
		GeneratedAt: time.Now().UTC(),
		WindowSize:  w.maxSamples,
		Tiers:       tiers,
		Indicators:  indicators,
	}
}

func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	idx := q * float64(len(sorted)-1)
	lo := int(math.Floor(idx))
	hi := int(math.Ceil(idx))
	if lo == hi {
		return sorted[lo]
	}
	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
