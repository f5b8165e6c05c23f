package core

import (
	"fmt"
	"time"

	"learnai.dev/ai-basics/internal/dom"
	"learnai.dev/ai-basics/internal/scheduler"
)

const (
	TrainingSteps = 3

	StartTrainingLabel    = "▶ Start Training"
	TrainingLabel         = "Training..."
	TrainingCompleteLabel = "✓ Training Complete!"

	startTrainingButtonID = "start-training-btn"
)

// TrainingSequencer walks the training simulation through its three steps
// on fixed delays measured from the start of the run.
type TrainingSequencer struct {
	doc   dom.Registry
	sched scheduler.Scheduler
	step2 time.Duration
	step3 time.Duration

	step    int
	pending []scheduler.Handle
}

func NewTrainingSequencer(doc dom.Registry, sched scheduler.Scheduler, step2, step3 time.Duration) *TrainingSequencer {
	return &TrainingSequencer{doc: doc, sched: sched, step2: step2, step3: step3, step: 1}
}

// Start restarts the simulation from step 1. Transitions still pending from
// an earlier run are cancelled first.
func (s *TrainingSequencer) Start() {
	s.Reset()

	if btn, ok := s.doc.Find(startTrainingButtonID); ok {
		btn.SetDisabled(true)
		btn.SetText(TrainingLabel)
	}
	s.updateProgressDots(1)

	s.pending = append(s.pending,
		s.sched.After(s.step2, func() {
			s.ShowStep(2)
		}),
		s.sched.After(s.step3, func() {
			s.pending = nil
			s.ShowStep(3)
			if btn, ok := s.doc.Find(startTrainingButtonID); ok {
				btn.SetDisabled(false)
				btn.SetText(TrainingCompleteLabel)
			}
		}),
	)
}

// ShowStep shows only container n and marks the first n progress dots.
func (s *TrainingSequencer) ShowStep(n int) {
	s.step = n

	for i := 1; i <= TrainingSteps; i++ {
		if el, ok := s.doc.Find(stepID(i)); ok {
			el.AddClass("hidden")
		}
	}
	if el, ok := s.doc.Find(stepID(n)); ok {
		el.RemoveClass("hidden")
	}

	s.updateProgressDots(n)
}

// Reset returns to step 1 and re-arms the start control.
func (s *TrainingSequencer) Reset() {
	s.cancelPending()
	s.step = 1
	s.ShowStep(1)

	if btn, ok := s.doc.Find(startTrainingButtonID); ok {
		btn.SetDisabled(false)
		btn.SetText(StartTrainingLabel)
	}
	s.updateProgressDots(1)
}

func (s *TrainingSequencer) Step() int { return s.step }

// Running reports whether transitions are still scheduled.
func (s *TrainingSequencer) Running() bool { return len(s.pending) > 0 }

func (s *TrainingSequencer) updateProgressDots(step int) {
	for i, dot := range s.doc.FindAll(".progress-dot") {
		if i < step {
			dot.AddClass("active")
		} else {
			dot.RemoveClass("active")
		}
	}
}

func (s *TrainingSequencer) cancelPending() {
	for _, h := range s.pending {
		s.sched.Cancel(h)
	}
	s.pending = nil
}

func stepID(n int) string {
	return fmt.Sprintf("sim-step-%d", n)
}
