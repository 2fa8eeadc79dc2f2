// Package pending queues brand ratings that could not be delivered and
// retries them later. Ratings older than the retention window are dropped
// instead of retried forever.
package pending

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"sync"
	"time"

	"github.com/realkdc/top-thc-brands/pkg/rating"
)

// MaxAge is how long an undelivered rating stays eligible for retry.
const MaxAge = 7 * 24 * time.Hour

// Rating is a queued rating submission
type Rating struct {
	BrandID   string        `json:"brand_id"`
	Scores    rating.Scores `json:"scores"`
	Timestamp time.Time     `json:"timestamp"`
}

// Store persists the queue between runs
type Store interface {
	Load() ([]Rating, error)
	Save(ratings []Rating) error
}

// Submitter delivers a single rating. A nil error means delivered; a
// transient error keeps the rating queued for the next flush.
type Submitter interface {
	Rate(ctx context.Context, brandID string, scores rating.Scores) error
}

// Queue holds undelivered ratings and flushes them through a submitter
type Queue struct {
	mu        sync.Mutex
	store     Store
	submitter Submitter
	maxAge    time.Duration
	ratings   []Rating
}

// NewQueue creates a queue backed by the given store. The store's existing
// contents are loaded immediately so a restart picks up where it left off.
func NewQueue(store Store, submitter Submitter) (*Queue, error) {
	ratings, err := store.Load()
	if err != nil {
		return nil, err
	}
	return &Queue{
		store:     store,
		submitter: submitter,
		maxAge:    MaxAge,
		ratings:   ratings,
	}, nil
}

// Enqueue adds a rating to the queue and persists it
func (q *Queue) Enqueue(brandID string, scores rating.Scores) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.ratings = append(q.ratings, Rating{
		BrandID:   brandID,
		Scores:    scores,
		Timestamp: time.Now().UTC(),
	})
	return q.store.Save(q.ratings)
}

// Flush attempts each queued rating once. Delivered ratings leave the queue;
// failed ones stay unless they have aged past the retention window. It
// returns how many ratings were delivered.
func (q *Queue) Flush(ctx context.Context) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	cutoff := time.Now().UTC().Add(-q.maxAge)
	delivered := 0
	var remaining []Rating
	var errs []error

	for _, queued := range q.ratings {
		if err := ctx.Err(); err != nil {
			remaining = append(remaining, queued)
			continue
		}

		err := q.submitter.Rate(ctx, queued.BrandID, queued.Scores)
		if err == nil {
			delivered++
			continue
		}
		errs = append(errs, err)
		if queued.Timestamp.After(cutoff) {
			remaining = append(remaining, queued)
		}
	}

	q.ratings = remaining
	if err := q.store.Save(q.ratings); err != nil {
		errs = append(errs, err)
	}
	return delivered, errors.Join(errs...)
}

// Len reports how many ratings are waiting
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.ratings)
}

// FileStore persists the queue as a JSON file
type FileStore struct {
	path string
}

// NewFileStore creates a store writing to path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the queue file. A missing file is an empty queue.
func (s *FileStore) Load() ([]Rating, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var ratings []Rating
	if err := json.Unmarshal(data, &ratings); err != nil {
		return nil, err
	}
	return ratings, nil
}

// Save writes the queue file, replacing previous contents
func (s *FileStore) Save(ratings []Rating) error {
	if ratings == nil {
		ratings = []Rating{}
	}
	data, err := json.Marshal(ratings)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}
