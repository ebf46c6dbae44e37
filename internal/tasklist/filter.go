package tasklist

import (
	"fmt"
	"sort"

	"taskwave/internal/service"
)

// Filter selects tasks by completion.
type Filter string

const (
	FilterAll          Filter = "all"
	FilterCompleted    Filter = "completed"
	FilterNotCompleted Filter = "notCompleted"
)

// Filters lists the filters in display order.
var Filters = []Filter{FilterAll, FilterCompleted, FilterNotCompleted}

// ParseFilter accepts the filter names, case-sensitively, plus "" for all.
func ParseFilter(s string) (Filter, error) {
	switch Filter(s) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterCompleted, FilterNotCompleted:
		return Filter(s), nil
	}
	return "", fmt.Errorf("invalid filter: %s (want all, completed or notCompleted)", s)
}

// Next returns the filter after f, wrapping around.
func (f Filter) Next() Filter {
	for i, g := range Filters {
		if g == f {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return FilterAll
}

// Label is the human name of the filter.
func (f Filter) Label() string {
	switch f {
	case FilterCompleted:
		return "Completed"
	case FilterNotCompleted:
		return "Not Completed"
	default:
		return "All"
	}
}

// Match reports whether the task passes the filter.
func (f Filter) Match(t service.Task) bool {
	switch f {
	case FilterCompleted:
		return t.Completed
	case FilterNotCompleted:
		return !t.Completed
	default:
		return true
	}
}

// SortOrder orders tasks by creation time.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder accepts asc, desc, or "" for the default (desc).
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(s) {
	case "", SortDesc:
		return SortDesc, nil
	case SortAsc:
		return SortAsc, nil
	}
	return "", fmt.Errorf("invalid sort order: %s (want asc or desc)", s)
}

// Toggle flips the order.
func (o SortOrder) Toggle() SortOrder {
	if o == SortAsc {
		return SortDesc
	}
	return SortAsc
}

// Label is the human name of the order.
func (o SortOrder) Label() string {
	if o == SortAsc {
		return "Oldest First"
	}
	return "Newest First"
}

// Apply returns the filtered and sorted tasks as a new slice. The input is
// not modified. Tasks with equal creation times keep their input order.
func Apply(tasks []service.Task, f Filter, o SortOrder) []service.Task {
	out := make([]service.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].CreatedAt.Time, out[j].CreatedAt.Time
		if o == SortAsc {
			return a.Before(b)
		}
		return a.After(b)
	})
	return out
}
