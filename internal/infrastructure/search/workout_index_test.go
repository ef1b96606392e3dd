package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-fitness-tracker/internal/domain/entity"
)

type recorded struct {
	method, path string
	body         map[string]any
}

func fakeES(t *testing.T, reply func(w http.ResponseWriter, r *http.Request)) (*elasticsearch.Client, *[]recorded) {
	t.Helper()
	var (
		mu   sync.Mutex
		reqs []recorded
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recorded{method: r.Method, path: r.URL.Path}
		if b, _ := io.ReadAll(r.Body); len(b) > 0 {
			_ = json.Unmarshal(b, &rec.body)
		}
		mu.Lock()
		reqs = append(reqs, rec)
		mu.Unlock()
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		reply(w, r)
	}))
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return es, &reqs
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestIndexWorkoutPublic(t *testing.T) {
	es, reqs := fakeES(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"result":"created"}`))
	})
	idx := NewWorkoutIndex(es, "workouts", quietLogger())

	err := idx.IndexWorkout(context.Background(), &entity.Workout{
		ID: 7, UserID: 1, Name: "Leg Day", IsPublic: true, Date: time.Now(),
		Exercises: []entity.Exercise{{Name: "Squat"}},
	})
	require.NoError(t, err)

	require.Len(t, *reqs, 1)
	got := (*reqs)[0]
	assert.Equal(t, http.MethodPut, got.method)
	assert.Equal(t, "/workouts/_doc/7", got.path)
	assert.Equal(t, "Leg Day", got.body["name"])
	assert.Equal(t, []any{"Squat"}, got.body["exercises"])
}

func TestIndexWorkoutSkipsPrivate(t *testing.T) {
	es, reqs := fakeES(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	idx := NewWorkoutIndex(es, "workouts", quietLogger())

	require.NoError(t, idx.IndexWorkout(context.Background(), &entity.Workout{ID: 1, Name: "secret"}))
	assert.Empty(t, *reqs)
}

func TestSearchWorkouts(t *testing.T) {
	es, reqs := fakeES(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"hits":{"hits":[{"_id":"3"},{"_id":"oops"},{"_id":"1"}]}}`))
	})
	idx := NewWorkoutIndex(es, "workouts", quietLogger())

	ids, err := idx.SearchWorkouts(context.Background(), "squat", 5)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 1}, ids)

	require.Len(t, *reqs, 1)
	assert.True(t, strings.HasSuffix((*reqs)[0].path, "/_search"))
	assert.EqualValues(t, 5, (*reqs)[0].body["size"])
}

func TestSearchWorkoutsMissingIndex(t *testing.T) {
	es, _ := fakeES(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"type":"index_not_found_exception"},"status":404}`))
	})
	idx := NewWorkoutIndex(es, "workouts", quietLogger())

	ids, err := idx.SearchWorkouts(context.Background(), "squat", 5)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestEnsureIndexCreatesMissingIndex(t *testing.T) {
	es, reqs := fakeES(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"acknowledged":true}`))
	})
	idx := NewWorkoutIndex(es, "workouts", quietLogger())

	require.NoError(t, idx.EnsureIndex(context.Background()))
	require.Len(t, *reqs, 2)
	assert.Equal(t, http.MethodPut, (*reqs)[1].method)
	assert.Equal(t, "/workouts", (*reqs)[1].path)
	assert.Contains(t, (*reqs)[1].body, "mappings")
}

func TestEnsureIndexExisting(t *testing.T) {
	es, reqs := fakeES(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	idx := NewWorkoutIndex(es, "workouts", quietLogger())

	require.NoError(t, idx.EnsureIndex(context.Background()))
	assert.Len(t, *reqs, 1)
}

func TestEnsureIndexRaceIsNotAnError(t *testing.T) {
	es, _ := fakeES(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"type":"resource_already_exists_exception"},"status":400}`))
	})
	idx := NewWorkoutIndex(es, "workouts", quietLogger())

	assert.NoError(t, idx.EnsureIndex(context.Background()))
}
