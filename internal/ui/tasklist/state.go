package tasklist

import (
	"sort"
	"strings"

	"github.com/nhle/tasktracker/internal/model"
)

// Phase is where the authoritative list is in its load lifecycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseLoaded
	PhaseFailed
)

// SortKey selects the ordering of the derived view.
type SortKey string

const (
	SortDeadline SortKey = "deadline"
	SortTitle    SortKey = "title"
	SortStatus   SortKey = "status"
)

// SortKeys lists the sort keys in the order tab cycles through them.
var SortKeys = []SortKey{SortDeadline, SortTitle, SortStatus}

// StatusFilters lists the status filters in the order s cycles through them.
var StatusFilters = []string{model.StatusAll, model.StatusPending, model.StatusCompleted}

// Filter holds the derived-view controls.
type Filter struct {
	Query  string
	Status string
	Sort   SortKey
}

// DefaultFilter shows every task ordered by deadline.
func DefaultFilter() Filter {
	return Filter{Status: model.StatusAll, Sort: SortDeadline}
}

// Counters summarises the authoritative list.
type Counters struct {
	Total     int
	Completed int
	Pending   int
}

// State owns the authoritative task list and the filter controls. It only
// changes through the transition methods below; Visible and Counters are
// read-only projections.
type State struct {
	tasks     []model.Task
	phase     Phase
	loadErr   error
	updateErr error
	filter    Filter
}

// NewState returns an idle state with the default filter.
func NewState() State {
	return State{filter: DefaultFilter()}
}

// LoadStarted marks a fetch as in flight.
func (s *State) LoadStarted() {
	s.phase = PhaseLoading
	s.loadErr = nil
}

// LoadSucceeded replaces the authoritative list.
func (s *State) LoadSucceeded(tasks []model.Task) {
	s.tasks = append([]model.Task(nil), tasks...)
	s.phase = PhaseLoaded
	s.loadErr = nil
}

// LoadFailed records a failed fetch. The previous list is dropped so
// nothing stale is rendered next to the error.
func (s *State) LoadFailed(err error) {
	s.tasks = nil
	s.phase = PhaseFailed
	s.loadErr = err
}

// UpdateSucceeded merges a server-returned record into the list by ID,
// appending it when the ID is new (the create path). Outside PhaseLoaded
// there is no authoritative list to merge into, so the record is dropped
// and the next load picks it up.
func (s *State) UpdateSucceeded(task model.Task) {
	s.updateErr = nil
	if s.phase != PhaseLoaded {
		return
	}
	for i := range s.tasks {
		if s.tasks[i].ID == task.ID {
			next := append([]model.Task(nil), s.tasks...)
			next[i] = task
			s.tasks = next
			return
		}
	}
	s.tasks = append(append([]model.Task(nil), s.tasks...), task)
}

// UpdateFailed records a failed save. The authoritative list is untouched.
func (s *State) UpdateFailed(err error) {
	s.updateErr = err
}

// FilterChanged swaps the derived-view controls. Empty status or sort
// values fall back to the defaults.
func (s *State) FilterChanged(f Filter) {
	if f.Status == "" {
		f.Status = model.StatusAll
	}
	if f.Sort == "" {
		f.Sort = SortDeadline
	}
	s.filter = f
}

// Phase reports the load lifecycle position.
func (s State) Phase() Phase { return s.phase }

// Filter returns the active derived-view controls.
func (s State) Filter() Filter { return s.filter }

// LoadErr is the cause of the last failed load, if any.
func (s State) LoadErr() error { return s.loadErr }

// UpdateErr is the cause of the last failed save, if any.
func (s State) UpdateErr() error { return s.updateErr }

// Tasks returns a copy of the authoritative list.
func (s State) Tasks() []model.Task { return append([]model.Task(nil), s.tasks...) }

func (s State) Loading() bool { return s.phase == PhaseLoading }
func (s State) Failed() bool  { return s.phase == PhaseFailed }

// Find returns the task with the given ID from the authoritative list.
func (s State) Find(id int64) (model.Task, bool) {
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

// Counters recomputes the summary from the authoritative list.
func (s State) Counters() Counters {
	var c Counters
	c.Total = len(s.tasks)
	for _, t := range s.tasks {
		if t.IsCompleted {
			c.Completed++
		}
	}
	c.Pending = c.Total - c.Completed
	return c
}

// Visible returns the derived view: text query, then status filter, then a
// stable sort. The authoritative list is never reordered.
func (s State) Visible() []model.Task {
	return Derive(s.tasks, s.filter)
}

// Derive applies f to tasks and returns a new slice.
func Derive(tasks []model.Task, f Filter) []model.Task {
	query := strings.ToLower(strings.TrimSpace(f.Query))

	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if query != "" &&
			!strings.Contains(strings.ToLower(t.Title), query) &&
			!strings.Contains(strings.ToLower(t.Description), query) {
			continue
		}
		switch f.Status {
		case model.StatusPending:
			if t.IsCompleted {
				continue
			}
		case model.StatusCompleted:
			if !t.IsCompleted {
				continue
			}
		}
		out = append(out, t)
	}

	switch f.Sort {
	case SortTitle:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	case SortStatus:
		sort.SliceStable(out, func(i, j int) bool { return !out[i].IsCompleted && out[j].IsCompleted })
	default:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Deadline.Before(out[j].Deadline) })
	}
	return out
}

// NextStatus returns the status filter after current in the cycle.
func NextStatus(current string) string {
	for i, st := range StatusFilters {
		if st == current {
			return StatusFilters[(i+1)%len(StatusFilters)]
		}
	}
	return model.StatusAll
}

// NextSort returns the sort key after current in the cycle.
func NextSort(current SortKey) SortKey {
	for i, k := range SortKeys {
		if k == current {
			return SortKeys[(i+1)%len(SortKeys)]
		}
	}
	return SortDeadline
}

// ParseSort maps a user-supplied name to a SortKey.
func ParseSort(name string) (SortKey, bool) {
	for _, k := range SortKeys {
		if string(k) == name {
			return k, true
		}
	}
	return "", false
}

// ParseStatus validates a user-supplied status filter name.
func ParseStatus(name string) (string, bool) {
	for _, st := range StatusFilters {
		if st == name {
			return st, true
		}
	}
	return "", false
}
