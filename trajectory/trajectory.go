/*package trajectory stores the parsed per-timestep particle records of a
simulation, keyed by sampled time and by particle id. A Trajectory is built
once from loaded records and is read-only afterwards: every lookup that can
fail reports absence rather than an error.*/
package trajectory

import (
	"sort"

	"github.com/phil-mansfield/orbvis/geom"
)

// Kind distinguishes the two input particle tables.
type Kind int

const (
	BlackHole Kind = iota
	NeutronStar
)

// Record is the state of one particle at one sampled time. Identity is the
// (ID, Time) pair. Units: Time in Myr, Mass in Msun, X in pc, V in pc/Myr.
type Record struct {
	ID   int64
	Time float64
	Mass float64
	X, V geom.Vec
	Kind Kind
}

// Trajectory maps sampled times to the set of particles alive at that time.
// A particle's id is stable across its lifetime; absence from a timestep
// means it was destroyed, escaped, or merged away at or before that time.
type Trajectory struct {
	times  []float64
	steps  map[float64][]Record
	byID   map[float64]map[int64]int
	bounds float64
}

// New builds a Trajectory from a flat record list. Records may arrive in any
// order; within a timestep, later records with a duplicate id are dropped.
func New(records []Record) *Trajectory {
	t := &Trajectory{
		steps: make(map[float64][]Record),
		byID:  make(map[float64]map[int64]int),
	}

	for _, rec := range records {
		idx, ok := t.byID[rec.Time]
		if !ok {
			idx = make(map[int64]int)
			t.byID[rec.Time] = idx
			t.times = append(t.times, rec.Time)
		}
		if _, dup := idx[rec.ID]; dup {
			continue
		}
		idx[rec.ID] = len(t.steps[rec.Time])
		t.steps[rec.Time] = append(t.steps[rec.Time], rec)

		if n := rec.X.Norm(); n > t.bounds {
			t.bounds = n
		}
	}

	sort.Float64s(t.times)
	return t
}

// SortedTimes returns the sampled epochs in ascending order. The returned
// slice is owned by the Trajectory and must not be modified.
func (t *Trajectory) SortedTimes() []float64 {
	return t.times
}

// RecordsAt returns every particle alive at the given sampled time, or nil
// if the time was never sampled. The returned slice must not be modified.
func (t *Trajectory) RecordsAt(time float64) []Record {
	return t.steps[time]
}

// Find returns the record of the given particle at the given sampled time.
func (t *Trajectory) Find(id int64, time float64) (Record, bool) {
	idx, ok := t.byID[time]
	if !ok {
		return Record{}, false
	}
	i, ok := idx[id]
	if !ok {
		return Record{}, false
	}
	return t.steps[time][i], true
}

// LiveIDs returns the set of particle ids alive at the given sampled time.
func (t *Trajectory) LiveIDs(time float64) map[int64]bool {
	idx := t.byID[time]
	live := make(map[int64]bool, len(idx))
	for id := range idx {
		live[id] = true
	}
	return live
}

// LastTimeBefore returns the latest sampled time strictly before the given
// time, or ok=false if no sample precedes it.
func (t *Trajectory) LastTimeBefore(time float64) (float64, bool) {
	i := sort.SearchFloat64s(t.times, time)
	if i == 0 {
		return 0, false
	}
	return t.times[i-1], true
}

// Contains reports whether the given time falls within the sampled range.
func (t *Trajectory) Contains(time float64) bool {
	if len(t.times) == 0 {
		return false
	}
	return time >= t.times[0] && time <= t.times[len(t.times)-1]
}

// Bounds returns the largest distance of any record from the origin. It is
// used as the extent of the simulation when steering the camera.
func (t *Trajectory) Bounds() float64 {
	return t.bounds
}
