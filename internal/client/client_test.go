package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/tasktracker/internal/api"
	"github.com/nhle/tasktracker/internal/client"
	"github.com/nhle/tasktracker/internal/model"
	"github.com/nhle/tasktracker/internal/store"
	"github.com/nhle/tasktracker/internal/testutil"
)

func newTestAPI(t *testing.T) (*client.Client, *store.SQLStore) {
	t.Helper()
	s := testutil.NewTestStore(t)
	srv := api.NewServer(s, model.ServerConfig{Mode: gin.TestMode})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return client.NewClient(ts.URL+"/", 5*time.Second), s
}

// unreachableClient points at a server that has already been shut down.
func unreachableClient(t *testing.T) *client.Client {
	t.Helper()
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()
	return client.NewClient(url, time.Second)
}

func TestFetchTasks(t *testing.T) {
	c, s := newTestAPI(t)
	ctx := context.Background()

	tasks, err := c.FetchTasks(ctx)
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)

	a := testutil.SeedTask(t, s, "A", testutil.Date(2024, 1, 1), false)
	b := testutil.SeedTask(t, s, "B", testutil.Date(2024, 1, 2), true)

	tasks, err = c.FetchTasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Task{a, b}, tasks)
}

func TestFetchTasks_Unreachable(t *testing.T) {
	c := unreachableClient(t)

	tasks, err := c.FetchTasks(context.Background())
	assert.Nil(t, tasks)
	assert.ErrorIs(t, err, client.ErrLoadFailed)
}

func TestFetchTasks_ServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Failed to fetch tasks"}`))
	}))
	defer ts.Close()

	_, err := client.NewClient(ts.URL, time.Second).FetchTasks(context.Background())
	require.ErrorIs(t, err, client.ErrLoadFailed)
	assert.Contains(t, err.Error(), "Failed to fetch tasks")
}

func TestFetchTasks_BadBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer ts.Close()

	_, err := client.NewClient(ts.URL, time.Second).FetchTasks(context.Background())
	assert.ErrorIs(t, err, client.ErrLoadFailed)
}

func TestUpdateTask(t *testing.T) {
	c, s := newTestAPI(t)
	orig := testutil.SeedTask(t, s, "A", testutil.Date(2024, 1, 1), false)

	// The payload ID is overwritten with the target ID.
	updated, err := c.UpdateTask(context.Background(), orig.ID, model.Task{
		ID:          orig.ID + 100,
		Title:       "B",
		Description: "d",
		Deadline:    testutil.Date(2024, 2, 1),
		IsCompleted: true,
	})
	require.NoError(t, err)
	assert.Equal(t, orig.ID, updated.ID)
	assert.Equal(t, "B", updated.Title)
	assert.True(t, updated.IsCompleted)
}

func TestUpdateTask_NotFound(t *testing.T) {
	c, _ := newTestAPI(t)

	_, err := c.UpdateTask(context.Background(), 404, model.Task{Title: "x"})
	require.ErrorIs(t, err, client.ErrUpdateFailed)
	assert.NotErrorIs(t, err, client.ErrLoadFailed)
}

func TestUpdateTask_Unreachable(t *testing.T) {
	c := unreachableClient(t)

	_, err := c.UpdateTask(context.Background(), 1, model.Task{Title: "x"})
	assert.ErrorIs(t, err, client.ErrUpdateFailed)
}

func TestCreateTask(t *testing.T) {
	c, s := newTestAPI(t)

	created, err := c.CreateTask(context.Background(), model.Task{
		ID:          77,
		Title:       "A",
		Description: "d",
		Deadline:    testutil.Date(2024, 1, 1),
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	stored, err := s.GetTask(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, *created, *stored)
}

func TestCreateTask_Unreachable(t *testing.T) {
	c := unreachableClient(t)

	_, err := c.CreateTask(context.Background(), model.Task{Title: "x"})
	assert.ErrorIs(t, err, client.ErrCreateFailed)
}

func TestFromConfig(t *testing.T) {
	c := client.FromConfig(model.ClientConfig{BaseURL: "http://example.test/", TimeoutSec: 0})
	assert.Equal(t, "http://example.test", c.BaseURL())
}
