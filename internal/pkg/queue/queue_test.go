package queue

import (
	"errors"
	"testing"

	"leadengine/internal/pkg/models"
)

func TestNewJobQueueRejectsBadCapacity(t *testing.T) {
	if _, err := NewJobQueue(0); err == nil {
		t.Error("Expected error for zero capacity")
	}
	if _, err := NewJobQueue(-1); err == nil {
		t.Error("Expected error for negative capacity")
	}
}

func TestEnqueueDequeueOrder(t *testing.T) {
	jq, err := NewJobQueue(10)
	if err != nil {
		t.Fatal(err)
	}

	first, err := jq.Enqueue([]models.CompanyRecord{{CompanyName: "First"}})
	if err != nil {
		t.Fatal(err)
	}
	second, err := jq.Enqueue([]models.CompanyRecord{{CompanyName: "Second"}})
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Error("Job IDs must be unique")
	}
	if jq.Length() != 2 {
		t.Errorf("Length = %d, want 2", jq.Length())
	}

	job, err := jq.Dequeue()
	if err != nil {
		t.Fatal(err)
	}
	if job.ID != first {
		t.Errorf("Dequeued %q, want %q", job.ID, first)
	}
	if job.Status != StatusRunning {
		t.Errorf("Dequeued job status = %q, want running", job.Status)
	}
}

func TestEnqueueFullQueue(t *testing.T) {
	jq, err := NewJobQueue(1)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := jq.Enqueue(nil); err != nil {
		t.Fatal(err)
	}
	if _, err := jq.Enqueue(nil); err == nil {
		t.Error("Expected error when the queue is full")
	}
}

func TestDequeueEmptyQueue(t *testing.T) {
	jq, err := NewJobQueue(1)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := jq.Dequeue(); err == nil {
		t.Error("Expected error when the queue is empty")
	}
}

func TestJobStatusLifecycle(t *testing.T) {
	jq, err := NewJobQueue(5)
	if err != nil {
		t.Fatal(err)
	}

	id, err := jq.Enqueue([]models.CompanyRecord{{CompanyName: "Acme"}})
	if err != nil {
		t.Fatal(err)
	}

	job, ok := jq.Status(id)
	if !ok || job.Status != StatusQueued {
		t.Fatalf("Status after enqueue = %+v, ok=%v", job, ok)
	}

	if _, err := jq.Dequeue(); err != nil {
		t.Fatal(err)
	}
	job, _ = jq.Status(id)
	if job.Status != StatusRunning {
		t.Errorf("Status after dequeue = %q", job.Status)
	}

	results := []models.CompanyRecord{{CompanyName: "Acme", ContactEmail: "info@acme.io"}}
	jq.Complete(id, results, nil)
	job, _ = jq.Status(id)
	if job.Status != StatusDone {
		t.Errorf("Status after complete = %q", job.Status)
	}
	if len(job.Results) != 1 || job.Results[0].ContactEmail != "info@acme.io" {
		t.Errorf("Results = %v", job.Results)
	}
}

func TestJobCompleteWithError(t *testing.T) {
	jq, err := NewJobQueue(5)
	if err != nil {
		t.Fatal(err)
	}

	id, _ := jq.Enqueue(nil)
	jq.Dequeue()
	jq.Complete(id, nil, errors.New("context canceled"))

	job, _ := jq.Status(id)
	if job.Status != StatusFailed || job.Error != "context canceled" {
		t.Errorf("Job = %+v", job)
	}
}

func TestStatusUnknownJob(t *testing.T) {
	jq, _ := NewJobQueue(1)
	if _, ok := jq.Status("missing"); ok {
		t.Error("Expected ok=false for unknown job")
	}
}
