package io

import (
	"fmt"

	"github.com/phil-mansfield/table"

	"github.com/phil-mansfield/orbvis/event"
)

// Numeric event kinds of the catalog format.
const (
	exchangeKind = 1
	mergeKind    = 2
)

// ReadEvents reads the interaction-event catalog: a whitespace-delimited
// numeric table with columns kind, time, id1, id2, id3, id4, where kind is
// 1 for an exchange (id1, id2 the old binary, id3, id4 the new) and 2 for a
// merge (id1, id2 the progenitors, id3 and id4 padded with -1). Lines
// starting with # are comments.
func ReadEvents(path string) ([]event.Event, error) {
	cols, err := table.ReadTable(path, []int{0, 1, 2, 3, 4, 5}, nil)
	if err != nil {
		return nil, err
	}
	kinds, times := cols[0], cols[1]
	id1s, id2s, id3s, id4s := cols[2], cols[3], cols[4], cols[5]

	evs := make([]event.Event, len(kinds))
	for i := range kinds {
		ev := event.Event{
			Time: times[i],
			Old1: int64(id1s[i]),
			Old2: int64(id2s[i]),
		}

		switch int(kinds[i]) {
		case exchangeKind:
			ev.Kind = event.Exchange
			ev.New1, ev.New2 = int64(id3s[i]), int64(id4s[i])
		case mergeKind:
			ev.Kind = event.Merge
		default:
			return nil, fmt.Errorf(
				"%s: row %d: unknown event kind %g", path, i+1, kinds[i],
			)
		}

		evs[i] = ev
	}
	return evs, nil
}
