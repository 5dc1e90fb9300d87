// Package contract provides interfaces and shared utilities for the hpma CLI's internal architecture.
package contract

import (
	"time"

	"github.com/hpmalabs/hpma/schema"
)

// QuestionBank resolves question ids to their descriptors.
// This allows the scoring core to be tested against small hand-built banks.
type QuestionBank interface {
	// Version identifies the bank contents for cache keys and history records.
	Version() string

	// Lookup returns the descriptor of a baseline or context question.
	Lookup(id int) (schema.Question, bool)

	// Questions returns every baseline question in id order.
	Questions() []schema.Question

	// ByModule returns the baseline questions of one module in id order.
	ByModule(module schema.Module) []schema.Question

	// Sentinels returns the forward-keyed HEXACO items re-asked in every context, in facet order.
	Sentinels() []schema.Question

	// ContextItems returns the generated context questions in id order.
	ContextItems() []schema.Question
}

// CacheManager defines the interface for managing cache stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetProfileStore() CacheStore
	GetHistoryStore() HistoryStore
}

// CacheStore defines the interface for cache data storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// HistoryStore defines the interface for tracking scoring runs and the profiles they produced.
type HistoryStore interface {
	// BeginRun creates a new scoring run and returns its unique ID
	BeginRun(startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the scoring run with completion data
	EndRun(runID int64, endTime time.Time, totalAssessments int) error

	// RecordAssessment stores the summary of one scored profile
	RecordAssessment(runID int64, source string, profile *schema.Profile) error

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// GetAllRuns returns every recorded run
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllAssessments returns every recorded assessment
	GetAllAssessments() ([]schema.AssessmentRecord, error)

	// Close closes the underlying connection
	Close() error
}
