package service

import (
	"fmt"
	"sync"
	"time"
)

// IngestionMetrics tracks statistics for a single ingestion run
type IngestionMetrics struct {
	mu               sync.RWMutex
	StartTime        time.Time
	Duration         time.Duration
	TotalRecords     int
	Inserted         int
	Skipped          int
	ValidationErrors int
	Errors           int
}

// NewIngestionMetrics creates a new metrics tracker
func NewIngestionMetrics() *IngestionMetrics {
	return &IngestionMetrics{
		StartTime: time.Now(),
	}
}

// Reset resets all metrics
func (m *IngestionMetrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.StartTime = time.Now()
	m.Duration = 0
	m.TotalRecords = 0
	m.Inserted = 0
	m.Skipped = 0
	m.ValidationErrors = 0
	m.Errors = 0
}

// RecordFetched adds to the total fetched record count
func (m *IngestionMetrics) RecordFetched(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TotalRecords += count
}

// RecordInserted increments the inserted record count
func (m *IngestionMetrics) RecordInserted(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Inserted += count
}

// RecordSkipped increments the skipped record count
func (m *IngestionMetrics) RecordSkipped() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Skipped++
}

// RecordValidationError increments the validation error count
func (m *IngestionMetrics) RecordValidationError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ValidationErrors++
}

// RecordError increments the error count
func (m *IngestionMetrics) RecordError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors++
}

// String returns a formatted string representation of metrics
func (m *IngestionMetrics) String() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return fmt.Sprintf(
		"IngestionMetrics{Total=%d, Inserted=%d, Skipped=%d, ValidationErrors=%d, Errors=%d, Duration=%v}",
		m.TotalRecords,
		m.Inserted,
		m.Skipped,
		m.ValidationErrors,
		m.Errors,
		m.Duration,
	)
}
