package agent

import "math/rand"

// Recorder collects imitation samples while a human plays.
//
// Every tick in which the human jumps is recorded with label 1. Ticks without a
// jump are sampled with label 0 once every interval ticks. Recording stops for
// good once the actor has passed freezeAfter obstacles.
type Recorder struct {
	interval    int
	freezeAfter int
	idle        int
	frozen      bool
	samples     []Sample
}

// NewRecorder creates a recorder. freezeAfter <= 0 never freezes.
func NewRecorder(interval, freezeAfter int) *Recorder {
	if interval < 1 {
		interval = 1
	}
	return &Recorder{
		interval:    interval,
		freezeAfter: freezeAfter,
	}
}

// Record observes one tick. passed is the actor's current passage count.
// It returns true on the tick in which the recorder freezes.
func (r *Recorder) Record(obs Observation, jumped bool, passed int) bool {
	if r.frozen {
		return false
	}
	if r.freezeAfter > 0 && passed >= r.freezeAfter {
		r.frozen = true
		return true
	}

	if jumped {
		r.samples = append(r.samples, Sample{Input: obs.Vector(), Label: 1})
		r.idle = 0
		return false
	}

	r.idle++
	if r.idle >= r.interval {
		r.samples = append(r.samples, Sample{Input: obs.Vector(), Label: 0})
		r.idle = 0
	}
	return false
}

// Frozen reports whether recording has stopped.
func (r *Recorder) Frozen() bool {
	return r.frozen
}

// Samples returns a copy of the recorded pairs in recording order.
func (r *Recorder) Samples() []Sample {
	out := make([]Sample, len(r.samples))
	copy(out, r.samples)
	return out
}

// Len returns the number of recorded pairs.
func (r *Recorder) Len() int {
	return len(r.samples)
}

// RandomSamples generates n random pairs for an untrained predictor:
// dy in [-200, 200], dx in [0, 600] pixels, label uniform in [0, 1).
func RandomSamples(rng *rand.Rand, n int, width, height float64) []Sample {
	samples := make([]Sample, n)
	for i := range samples {
		dy := float64(rng.Intn(401) - 200)
		dx := float64(rng.Intn(601))
		samples[i] = Sample{
			Input: Normalize(dy, dx, width, height),
			Label: rng.Float64(),
		}
	}
	return samples
}
