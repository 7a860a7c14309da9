// Package tick orders the per-frame work of the viewer.
package tick

import "github.com/milk9111/anchorview/tracking"

// Tick is the input of one display frame.
type Tick struct {
	Frame tracking.Frame
	// Delta is the time since the previous tick, in seconds.
	Delta float64
	Index uint64
}

type System interface {
	Update(t *Tick)
}

// Func adapts a plain function to System.
type Func func(t *Tick)

func (f Func) Update(t *Tick) {
	if f != nil {
		f(t)
	}
}

// Scheduler runs its systems in the order they were added.
type Scheduler struct {
	systems []System
	index   uint64
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

// Run builds the next tick and hands it to every system.
func (s *Scheduler) Run(frame tracking.Frame, dt float64) *Tick {
	t := &Tick{Frame: frame, Delta: dt, Index: s.index}
	s.index++
	s.Update(t)
	return t
}

func (s *Scheduler) Update(t *Tick) {
	for _, system := range s.systems {
		system.Update(t)
	}
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}
