// Package agent defines the decision seam between the simulation and whatever
// drives an actor's jump: a human at the keyboard or a trained predictor.
package agent

import (
	"math"

	"github.com/vovakirdan/flappy-neural/internal/core"
)

// DefaultThreshold is the prediction score above which a learned controller jumps.
const DefaultThreshold = 0.55

// Observation is what a controller sees each tick: the offset from the actor to
// the gap of the nearest obstacle it has not passed yet.
type Observation struct {
	DY float64 // gapCenterY - actorY (positive = gap is below the actor)
	DX float64 // |obstacleCenterX - actorX|

	// World size used to normalize the vector fed to predictors.
	Width, Height float64
}

// NewObservation builds an observation for a world of the given size.
func NewObservation(gapCenterY, actorY, obstacleCenterX, actorX, width, height float64) Observation {
	return Observation{
		DY:     gapCenterY - actorY,
		DX:     math.Abs(obstacleCenterX - actorX),
		Width:  width,
		Height: height,
	}
}

// Vector returns the normalized 2-vector input for a predictor.
func (o Observation) Vector() [2]float64 {
	return Normalize(o.DY, o.DX, o.Width, o.Height)
}

// Normalize scales raw offsets into predictor input range.
func Normalize(dy, dx, width, height float64) [2]float64 {
	var v [2]float64
	if height > 0 {
		v[0] = dy / height
	}
	if width > 0 {
		v[1] = dx / width
	}
	return v
}

// Sample is one training pair: a 2-vector input and a 1-vector label.
type Sample struct {
	Input [2]float64
	Label float64
}

// Predictor is a trainable binary scorer.
type Predictor interface {
	// Predict scores an input; larger means "jump".
	Predict(input [2]float64) float64

	// Train fits the predictor to the samples. An empty set is a no-op.
	Train(samples []Sample)
}

// Controller decides, once per tick, whether an actor should jump.
// A nil Controller never jumps.
type Controller interface {
	Decide(obs Observation, in core.InputFrame) bool
}

// Human forwards the keyboard: it jumps exactly when the frame carries ActionJump.
type Human struct{}

// Decide implements Controller.
func (Human) Decide(_ Observation, in core.InputFrame) bool {
	return in.Has(core.ActionJump)
}

// Learned jumps when its predictor scores the observation above Threshold.
type Learned struct {
	Predictor Predictor
	Threshold float64

	// Samples is the training set the predictor was fitted on.
	// The genetic algorithm recombines these between generations.
	Samples []Sample
}

// NewLearned trains predictor on samples and wraps it in a controller.
func NewLearned(p Predictor, samples []Sample, threshold float64) *Learned {
	p.Train(samples)
	return &Learned{
		Predictor: p,
		Threshold: threshold,
		Samples:   samples,
	}
}

// Decide implements Controller.
func (l *Learned) Decide(obs Observation, _ core.InputFrame) bool {
	if l == nil || l.Predictor == nil {
		return false
	}
	return l.Predictor.Predict(obs.Vector()) > l.Threshold
}

// ControllerFunc adapts a plain function to Controller.
type ControllerFunc func(obs Observation, in core.InputFrame) bool

// Decide implements Controller.
func (f ControllerFunc) Decide(obs Observation, in core.InputFrame) bool {
	return f(obs, in)
}

// Kind names the controller family for display.
func Kind(c Controller) string {
	switch c.(type) {
	case nil:
		return "none"
	case Human, *Human:
		return "human"
	case *Learned:
		return "learned"
	default:
		return "scripted"
	}
}
