/*package event describes the discrete interaction events of a simulation
(binary membership exchanges and mergers) and classifies which particles act
in a selected event at a given playback time.

Classification is a pure function of the event, the time, and the set of
live particle ids, so the same inputs always yield the same role map and no
state carries over between selections.*/
package event

// Kind tags the two event variants.
type Kind int

const (
	Exchange Kind = iota + 1
	Merge
)

func (k Kind) String() string {
	switch k {
	case Exchange:
		return "exchange"
	case Merge:
		return "merge"
	}
	return "unknown"
}

// Event is one row of the interaction catalog. For an Exchange, Old1 and
// Old2 are the members of the binary before the encounter and New1 and New2
// the members after it; members may persist across the event. For a Merge,
// Old1 and Old2 are the two progenitors and New1 and New2 are unused.
type Event struct {
	Kind       Kind
	Time       float64
	Old1, Old2 int64
	New1, New2 int64
}

// Role is a particle's part in a selected event at the current time.
type Role int

const (
	Inactive Role = iota
	BinaryMember
	Interloper
	Ejected
	Remnant
)

func (r Role) String() string {
	switch r {
	case BinaryMember:
		return "binary-member"
	case Interloper:
		return "interloper"
	case Ejected:
		return "ejected"
	case Remnant:
		return "remnant"
	}
	return "inactive"
}

// Phase is the playback time's position relative to the event time.
type Phase int

const (
	Pre Phase = iota
	Post
)

// RoleMap is the transient classification of a selected event at one
// playback time. Ids without an entry are Inactive.
type RoleMap struct {
	Phase Phase
	Roles map[int64]Role

	// Pair holds the ids of the binary to reconstruct an orbit for, when
	// the phase has one.
	Pair    [2]int64
	HasPair bool
}

// RoleOf returns the role of the given particle, Inactive when unassigned.
func (rm *RoleMap) RoleOf(id int64) Role {
	return rm.Roles[id]
}

// ActorIDs returns the ids with a non-Inactive role.
func (rm *RoleMap) ActorIDs() []int64 {
	ids := make([]int64, 0, len(rm.Roles))
	for id, role := range rm.Roles {
		if role != Inactive {
			ids = append(ids, id)
		}
	}
	return ids
}

// Classify assigns event roles at playback time t given the set of live
// particle ids. Times at or after the event time count as post-phase.
//
// For a merge's post phase the remnant is whichever progenitor id is still
// live. If neither or both progenitors are live the data is malformed for
// this event; no remnant is assigned and callers draw no post-merge vectors.
func Classify(ev Event, t float64, live map[int64]bool) RoleMap {
	rm := RoleMap{Roles: make(map[int64]Role)}
	if t >= ev.Time {
		rm.Phase = Post
	}

	switch ev.Kind {
	case Exchange:
		if rm.Phase == Pre {
			rm.Roles[ev.Old1] = BinaryMember
			rm.Roles[ev.Old2] = BinaryMember
			for _, id := range []int64{ev.New1, ev.New2} {
				if id != ev.Old1 && id != ev.Old2 {
					rm.Roles[id] = Interloper
				}
			}
			rm.Pair = [2]int64{ev.Old1, ev.Old2}
			rm.HasPair = true
		} else {
			rm.Roles[ev.New1] = BinaryMember
			rm.Roles[ev.New2] = BinaryMember
			for _, id := range []int64{ev.Old1, ev.Old2} {
				if id != ev.New1 && id != ev.New2 {
					rm.Roles[id] = Ejected
				}
			}
			rm.Pair = [2]int64{ev.New1, ev.New2}
			rm.HasPair = true
		}

	case Merge:
		if rm.Phase == Pre {
			rm.Roles[ev.Old1] = BinaryMember
			rm.Roles[ev.Old2] = BinaryMember
			rm.Pair = [2]int64{ev.Old1, ev.Old2}
			rm.HasPair = true
		} else if id, ok := RemnantOf(ev, live); ok {
			rm.Roles[id] = Remnant
		}
	}

	return rm
}

// RemnantOf returns the surviving progenitor id of a merge. ok is false for
// non-merge events and for malformed data where neither or both progenitors
// are still live.
func RemnantOf(ev Event, live map[int64]bool) (int64, bool) {
	if ev.Kind != Merge {
		return 0, false
	}
	l1, l2 := live[ev.Old1], live[ev.Old2]
	switch {
	case l1 && !l2:
		return ev.Old1, true
	case l2 && !l1:
		return ev.Old2, true
	}
	return 0, false
}
