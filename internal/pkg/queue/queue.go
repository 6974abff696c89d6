package queue

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"leadengine/internal/pkg/models"
)

// Lifecycle states of an asynchronous enrichment job.
const (
	StatusQueued  = "queued"
	StatusRunning = "running"
	StatusDone    = "done"
	StatusFailed  = "failed"
)

// A batch of companies awaiting background enrichment.
type Job struct {
	ID        string                 `json:"id"`
	Status    string                 `json:"status"`
	Companies []models.CompanyRecord `json:"companies,omitempty"`
	Results   []models.CompanyRecord `json:"results,omitempty"`
	Error     string                 `json:"error,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// Bounded FIFO of enrichment jobs. Job status survives removal so callers
// can poll a job by ID after a worker has picked it up.
type JobQueue struct {
	mu       sync.Mutex
	capacity int
	q        []*Job
	jobs     map[string]*Job
	seq      atomic.Uint64
}

// Creates an empty job queue with a specified capacity
func NewJobQueue(capacity int) (*JobQueue, error) {
	if capacity <= 0 {
		return nil, errors.New("capacity should be greater than 0")
	}
	return &JobQueue{
		capacity: capacity,
		q:        make([]*Job, 0, capacity),
		jobs:     map[string]*Job{},
	}, nil
}

// Enqueues a new batch and returns its job ID
func (jq *JobQueue) Enqueue(companies []models.CompanyRecord) (string, error) {
	jq.mu.Lock()
	defer jq.mu.Unlock()
	if len(jq.q) >= jq.capacity {
		return "", errors.New("queue is full")
	}

	now := time.Now()
	job := &Job{
		ID:        fmt.Sprintf("job-%d-%d", now.UnixNano(), jq.seq.Add(1)),
		Status:    StatusQueued,
		Companies: companies,
		CreatedAt: now,
		UpdatedAt: now,
	}
	jq.q = append(jq.q, job)
	jq.jobs[job.ID] = job
	return job.ID, nil
}

// Removes the oldest queued job and marks it running
func (jq *JobQueue) Dequeue() (*Job, error) {
	jq.mu.Lock()
	defer jq.mu.Unlock()
	if len(jq.q) == 0 {
		return nil, errors.New("queue is empty")
	}
	job := jq.q[0]
	jq.q = jq.q[1:]
	job.Status = StatusRunning
	job.UpdatedAt = time.Now()
	return job, nil
}

// Records the outcome of a finished job
func (jq *JobQueue) Complete(id string, results []models.CompanyRecord, jobErr error) {
	jq.mu.Lock()
	defer jq.mu.Unlock()
	job, ok := jq.jobs[id]
	if !ok {
		return
	}
	job.UpdatedAt = time.Now()
	if jobErr != nil {
		job.Status = StatusFailed
		job.Error = jobErr.Error()
		return
	}
	job.Status = StatusDone
	job.Results = results
}

// Looks up a job by ID; the returned copy is safe to serialize
func (jq *JobQueue) Status(id string) (Job, bool) {
	jq.mu.Lock()
	defer jq.mu.Unlock()
	job, ok := jq.jobs[id]
	if !ok {
		return Job{}, false
	}
	return *job, true
}

// Returns the number of jobs waiting to be picked up
func (jq *JobQueue) Length() int {
	jq.mu.Lock()
	defer jq.mu.Unlock()
	return len(jq.q)
}

// Returns true if no jobs are waiting
func (jq *JobQueue) IsEmpty() bool {
	return jq.Length() == 0
}
