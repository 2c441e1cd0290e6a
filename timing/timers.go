//go:build benchprofile

package timing

import (
	"sort"
	"sync"
	"time"

)

const Enabled = true

// Recorder accumulates durations per pipeline stage.
type Recorder struct {
	mu   sync.Mutex
	data map[string][]time.Duration
}

func New() *Recorder { return &Recorder{data: make(map[string][]time.Duration)} }

func (r *Recorder) Add(stage string, d time.Duration) {
	r.mu.Lock()
	r.data[stage] = append(r.data[stage], d)
	r.mu.Unlock()
}

// Start returns a func that records the time elapsed since Start.
func (r *Recorder) Start(stage string) func() {
	start := time.Now()
	return func() { r.Add(stage, time.Since(start)) }
}

// Snapshot summarizes every stage, largest total first.
func (r *Recorder) Snapshot() []Row {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Row, 0, len(r.data))
	for stage, list := range r.data {
		if len(list) == 0 {
			continue
		}
		out = append(out, summarize(stage, list))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Total > out[j].Total })
	return out
}
