package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-fitness-tracker/internal/domain/entity"
)

const requestTimeout = 3 * time.Second

// WorkoutIndex keeps a search copy of public workouts in Elasticsearch. The
// database stays the source of truth: searches return ids only.
type WorkoutIndex struct {
	ES     *elasticsearch.Client
	Index  string
	Logger *logrus.Logger
}

func NewWorkoutIndex(es *elasticsearch.Client, index string, logger *logrus.Logger) *WorkoutIndex {
	return &WorkoutIndex{ES: es, Index: index, Logger: logger}
}

type workoutDoc struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	Exercises []string  `json:"exercises"`
	Date      time.Time `json:"date"`
}

const indexMapping = `{
  "mappings": {
    "properties": {
      "id":        {"type": "long"},
      "user_id":   {"type": "long"},
      "name":      {"type": "text"},
      "exercises": {"type": "text"},
      "date":      {"type": "date"}
    }
  }
}`

// EnsureIndex creates the index with its mapping unless it already exists.
func (x *WorkoutIndex) EnsureIndex(ctx context.Context) error {
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := x.ES.Indices.Exists([]string{x.Index}, x.ES.Indices.Exists.WithContext(c))
	if err != nil {
		return err
	}
	_ = res.Body.Close()
	switch res.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
	default:
		return fmt.Errorf("es exists %s: %s", x.Index, res.Status())
	}

	res, err = x.ES.Indices.Create(x.Index,
		x.ES.Indices.Create.WithContext(c),
		x.ES.Indices.Create.WithBody(strings.NewReader(indexMapping)),
	)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		// another instance may have created it between the two calls
		body, _ := io.ReadAll(res.Body)
		if res.StatusCode == http.StatusBadRequest && strings.Contains(string(body), "resource_already_exists_exception") {
			return nil
		}
		return fmt.Errorf("es create %s: %s", x.Index, res.Status())
	}
	x.Logger.WithField("index", x.Index).Info("search index created")
	return nil
}

// IndexWorkout stores w under its id. Private workouts are ignored.
func (x *WorkoutIndex) IndexWorkout(ctx context.Context, w *entity.Workout) error {
	if !w.IsPublic {
		return nil
	}
	doc := workoutDoc{ID: w.ID, UserID: w.UserID, Name: w.Name, Date: w.Date.UTC(), Exercises: make([]string, 0, len(w.Exercises))}
	for _, ex := range w.Exercises {
		doc.Exercises = append(doc.Exercises, ex.Name)
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	id := strconv.FormatInt(w.ID, 10)
	req := esapi.IndexRequest{Index: x.Index, DocumentID: id, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index %s: %s", id, res.Status())
	}
	return nil
}

// SearchWorkouts runs a multi_match over name and exercise names and returns
// matching workout ids in relevance order.
func (x *WorkoutIndex) SearchWorkouts(ctx context.Context, q string, size int) ([]int64, error) {
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^2", "exercises"},
			},
		},
		"size":    size,
		"_source": false,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := x.ES.Search(x.ES.Search.WithContext(c), x.ES.Search.WithIndex(x.Index), x.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		// a missing index just means nothing public has been indexed yet
		if res.StatusCode == http.StatusNotFound {
			return []int64{}, nil
		}
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		id, err := strconv.ParseInt(h.ID, 10, 64)
		if err != nil {
			x.Logger.WithField("doc_id", h.ID).Warn("es search: skipping non-numeric id")
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}
