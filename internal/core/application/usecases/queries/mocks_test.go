package queries_test

import (
	"kitchen/internal/core/domain/model/kernel"
)

// mockAggregateTracker satisfies the repositories' tracker dependency when
// tests seed data outside a unit of work.
type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {}
