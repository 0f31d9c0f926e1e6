package contract

import (
	"context"

	"github.com/aaronvstory/photochop-progress-analyzer/schema"
	"github.com/stretchr/testify/mock"
)

// MockSnapshotProducer is a testify mock for SnapshotProducer.
type MockSnapshotProducer struct {
	mock.Mock
}

var _ SnapshotProducer = &MockSnapshotProducer{} // Compile-time check

// Scan implements the SnapshotProducer interface.
func (m *MockSnapshotProducer) Scan(ctx context.Context, basePath string) (schema.ScanResult, error) {
	ret := m.Called(ctx, basePath)
	result, _ := ret.Get(0).(schema.ScanResult)
	return result, ret.Error(1)
}

// MockHistoryStore is a testify mock for HistoryStore.
type MockHistoryStore struct {
	mock.Mock
}

var _ HistoryStore = &MockHistoryStore{} // Compile-time check

// Append implements the HistoryStore interface.
func (m *MockHistoryStore) Append(snap schema.Snapshot) error {
	ret := m.Called(snap)
	return ret.Error(0)
}

// Load implements the HistoryStore interface.
func (m *MockHistoryStore) Load() ([]schema.Snapshot, error) {
	ret := m.Called()
	snaps, _ := ret.Get(0).([]schema.Snapshot)
	return snaps, ret.Error(1)
}

// GetStatus implements the HistoryStore interface.
func (m *MockHistoryStore) GetStatus() (schema.HistoryStatus, error) {
	ret := m.Called()
	status, _ := ret.Get(0).(schema.HistoryStatus)
	return status, ret.Error(1)
}

// Clear implements the HistoryStore interface.
func (m *MockHistoryStore) Clear() error {
	ret := m.Called()
	return ret.Error(0)
}

// Close implements the HistoryStore interface.
func (m *MockHistoryStore) Close() error {
	ret := m.Called()
	return ret.Error(0)
}
