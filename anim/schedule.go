package anim

import "time"

// Entry places one group on the timeline.
type Entry struct {
	Group  *Group
	Offset time.Duration
}

// Schedule is the merged layout of a timeline's groups.
type Schedule struct {
	Entries []Entry
	Total   time.Duration
}

// Plan lays groups out in authorship order.
//
// committed is the last chain point and frontier the end of the longest branch
// scheduled so far. A PlayWith group starts at committed. A PlayThen group first
// moves the chain point to the frontier, starts there, and its end becomes both
// the new chain point and the new frontier. Groups without targets take no time.
func Plan(groups []*Group) Schedule {
	var (
		s         Schedule
		committed time.Duration
		frontier  time.Duration
	)
	s.Entries = make([]Entry, 0, len(groups))
	for _, g := range groups {
		empty := !g.hasTargets()
		if g.chained && !empty {
			committed = frontier
		}
		offset := committed
		s.Entries = append(s.Entries, Entry{Group: g, Offset: offset})
		if empty {
			continue
		}

		end := offset + g.Timing().Span()
		if g.chained {
			committed = end
			frontier = end
		} else if end > frontier {
			frontier = end
		}
	}
	s.Total = frontier
	return s
}

// Animations flattens every entry at its offset.
func (s Schedule) Animations() []Animation {
	var out []Animation
	for _, e := range s.Entries {
		out = append(out, e.Group.Flatten(e.Offset)...)
	}
	return out
}

func (g *Group) hasTargets() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.targets) > 0
}
