package tasklist

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/tasktracker/internal/model"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func sampleTasks() []model.Task {
	return []model.Task{
		{ID: 1, Title: "write report", Description: "quarterly numbers", Deadline: day(5), IsCompleted: false},
		{ID: 2, Title: "Buy milk", Description: "2 litres", Deadline: day(1), IsCompleted: true},
		{ID: 3, Title: "call Bob", Description: "about the REPORT", Deadline: day(3), IsCompleted: false},
		{ID: 4, Title: "archive", Description: "old files", Deadline: day(3), IsCompleted: true},
	}
}

func ids(tasks []model.Task) []int64 {
	out := make([]int64, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestNewState_Defaults(t *testing.T) {
	s := NewState()

	assert.Equal(t, PhaseIdle, s.Phase())
	assert.Equal(t, model.StatusAll, s.Filter().Status)
	assert.Equal(t, SortDeadline, s.Filter().Sort)
	assert.Equal(t, Counters{}, s.Counters())
}

func TestState_LoadLifecycle(t *testing.T) {
	s := NewState()

	s.LoadStarted()
	assert.True(t, s.Loading())

	s.LoadSucceeded(sampleTasks())
	assert.Equal(t, PhaseLoaded, s.Phase())
	assert.Equal(t, Counters{Total: 4, Completed: 2, Pending: 2}, s.Counters())

	loadErr := errors.New("boom")
	s.LoadFailed(loadErr)
	assert.True(t, s.Failed())
	assert.Equal(t, loadErr, s.LoadErr())
	assert.Empty(t, s.Tasks())
	assert.Empty(t, s.Visible())
}

func TestState_EmptyCounters(t *testing.T) {
	s := NewState()
	s.LoadSucceeded([]model.Task{})

	assert.Equal(t, Counters{Total: 0, Completed: 0, Pending: 0}, s.Counters())
}

func TestState_UpdateSucceededMergesByID(t *testing.T) {
	s := NewState()
	s.LoadSucceeded(sampleTasks())

	s.UpdateSucceeded(model.Task{ID: 3, Title: "call Bob", Deadline: day(3), IsCompleted: true})

	got, ok := s.Find(3)
	require.True(t, ok)
	assert.True(t, got.IsCompleted)
	assert.Equal(t, []int64{1, 2, 3, 4}, ids(s.Tasks()), "merge keeps position")
	assert.Equal(t, Counters{Total: 4, Completed: 3, Pending: 1}, s.Counters())
}

func TestState_UpdateSucceededAppendsNewID(t *testing.T) {
	s := NewState()
	s.LoadSucceeded(sampleTasks())

	s.UpdateSucceeded(model.Task{ID: 9, Title: "new", Deadline: day(9)})

	assert.Equal(t, []int64{1, 2, 3, 4, 9}, ids(s.Tasks()))
	assert.Equal(t, 5, s.Counters().Total)
}

func TestState_UpdateSucceededIgnoredUntilLoaded(t *testing.T) {
	s := NewState()
	s.LoadStarted()
	s.LoadFailed(errors.New("boom"))

	s.UpdateSucceeded(model.Task{ID: 9, Title: "new", Deadline: day(9)})

	assert.True(t, s.Failed())
	assert.Empty(t, s.Tasks())
	assert.Equal(t, Counters{}, s.Counters())
}

func TestState_UpdateFailedLeavesListUntouched(t *testing.T) {
	s := NewState()
	s.LoadSucceeded(sampleTasks())
	before := s.Tasks()

	err := errors.New("save failed")
	s.UpdateFailed(err)

	assert.Equal(t, before, s.Tasks())
	assert.Equal(t, err, s.UpdateErr())

	s.UpdateSucceeded(before[0])
	assert.NoError(t, s.UpdateErr())
}

func TestState_LoadSucceededCopiesInput(t *testing.T) {
	in := sampleTasks()
	s := NewState()
	s.LoadSucceeded(in)

	in[0].Title = "mutated"
	got, _ := s.Find(1)
	assert.Equal(t, "write report", got.Title)
}

func TestDerive_StatusFilter(t *testing.T) {
	tasks := sampleTasks()

	completed := Derive(tasks, Filter{Status: model.StatusCompleted, Sort: SortDeadline})
	for _, task := range completed {
		assert.True(t, task.IsCompleted)
	}
	assert.ElementsMatch(t, []int64{2, 4}, ids(completed))

	pending := Derive(tasks, Filter{Status: model.StatusPending, Sort: SortDeadline})
	for _, task := range pending {
		assert.False(t, task.IsCompleted)
	}
	assert.ElementsMatch(t, []int64{1, 3}, ids(pending))

	all := Derive(tasks, Filter{Status: model.StatusAll, Sort: SortDeadline})
	assert.Len(t, all, len(tasks))
}

func TestDerive_QueryMatchesTitleOrDescriptionCaseInsensitive(t *testing.T) {
	got := Derive(sampleTasks(), Filter{Query: "Report", Status: model.StatusAll, Sort: SortDeadline})

	// Task 1 matches on title, task 3 on description.
	assert.Equal(t, []int64{3, 1}, ids(got))
}

func TestDerive_QueryThenStatus(t *testing.T) {
	got := Derive(sampleTasks(), Filter{Query: "i", Status: model.StatusCompleted, Sort: SortTitle})

	assert.Equal(t, []int64{2, 4}, ids(got))
}

func TestDerive_SortDeadlineIsStableAndAscending(t *testing.T) {
	got := Derive(sampleTasks(), Filter{Status: model.StatusAll, Sort: SortDeadline})

	// 3 and 4 share a deadline and keep their relative order.
	assert.Equal(t, []int64{2, 3, 4, 1}, ids(got))
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].Deadline.Before(got[i-1].Deadline))
	}
}

func TestDerive_SortTitleLexicographic(t *testing.T) {
	got := Derive(sampleTasks(), Filter{Status: model.StatusAll, Sort: SortTitle})

	// Byte-wise: upper case sorts before lower case.
	assert.Equal(t, []string{"Buy milk", "archive", "call Bob", "write report"},
		[]string{got[0].Title, got[1].Title, got[2].Title, got[3].Title})
}

func TestDerive_SortStatusPendingFirstStable(t *testing.T) {
	got := Derive(sampleTasks(), Filter{Status: model.StatusAll, Sort: SortStatus})

	assert.Equal(t, []int64{1, 3, 2, 4}, ids(got))
}

func TestState_VisibleDoesNotMutateAuthoritativeList(t *testing.T) {
	s := NewState()
	s.LoadSucceeded(sampleTasks())

	s.FilterChanged(Filter{Query: "bob", Status: model.StatusPending, Sort: SortTitle})
	_ = s.Visible()

	assert.Equal(t, []int64{1, 2, 3, 4}, ids(s.Tasks()))
	assert.Equal(t, 4, s.Counters().Total, "counters ignore the filter")
}

func TestState_FilterChangedDefaults(t *testing.T) {
	s := NewState()
	s.FilterChanged(Filter{Query: "x"})

	assert.Equal(t, Filter{Query: "x", Status: model.StatusAll, Sort: SortDeadline}, s.Filter())
}

func TestCycles(t *testing.T) {
	assert.Equal(t, model.StatusPending, NextStatus(model.StatusAll))
	assert.Equal(t, model.StatusCompleted, NextStatus(model.StatusPending))
	assert.Equal(t, model.StatusAll, NextStatus(model.StatusCompleted))
	assert.Equal(t, model.StatusAll, NextStatus("bogus"))

	assert.Equal(t, SortTitle, NextSort(SortDeadline))
	assert.Equal(t, SortStatus, NextSort(SortTitle))
	assert.Equal(t, SortDeadline, NextSort(SortStatus))
}

func TestParse(t *testing.T) {
	k, ok := ParseSort("title")
	assert.True(t, ok)
	assert.Equal(t, SortTitle, k)
	_, ok = ParseSort("priority")
	assert.False(t, ok)

	st, ok := ParseStatus("pending")
	assert.True(t, ok)
	assert.Equal(t, model.StatusPending, st)
	_, ok = ParseStatus("done")
	assert.False(t, ok)
}
