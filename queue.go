package acis

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Submitter is any request that can be executed against the server. The
// request builder types all implement it.
type Submitter interface {
	Submit(ctx context.Context) (*Query, error)
}

// Transform converts a completed query into the value stored in the queue
// results, e.g. a result-type constructor.
type Transform func(*Query) (any, error)

// RequestQueue executes multiple requests in parallel. Server-side
// processing is usually the bottleneck for ACIS calls, so overlapping
// requests can improve throughput considerably.
type RequestQueue struct {
	limit   int
	entries []queueEntry
}

type queueEntry struct {
	request   Submitter
	transform Transform
}

// NewRequestQueue creates a queue that runs at most limit requests at a
// time; limit <= 0 means no limit.
func NewRequestQueue(limit int) *RequestQueue {
	return &RequestQueue{limit: limit}
}

// Add appends a request to the queue. If transform is non-nil the completed
// query is passed through it and the return value is stored; otherwise the
// query itself is stored.
func (q *RequestQueue) Add(request Submitter, transform Transform) {
	q.entries = append(q.entries, queueEntry{request, transform})
}

// Execute runs every request in the queue and returns the results in the
// order the requests were added. The first failure cancels the outstanding
// requests and is returned.
func (q *RequestQueue) Execute(ctx context.Context) ([]any, error) {
	results := make([]any, len(q.entries))
	g, ctx := errgroup.WithContext(ctx)
	if q.limit > 0 {
		g.SetLimit(q.limit)
	}
	for i, entry := range q.entries {
		i, entry := i, entry
		g.Go(func() error {
			query, err := entry.request.Submit(ctx)
			if err != nil {
				return err
			}
			if entry.transform == nil {
				results[i] = query
				return nil
			}
			value, err := entry.transform(query)
			if err != nil {
				return err
			}
			results[i] = value
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Clear removes all requests from the queue.
func (q *RequestQueue) Clear() {
	q.entries = nil
}
