package item_test

import (
	"testing"

	"kitchen/internal/core/domain/model/item"
	"kitchen/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allStatuses() []item.Status {
	return []item.Status{
		item.Pending, item.Preparing, item.Ready,
		item.Served, item.Rejected, item.Cancelled,
	}
}

func TestStatus_CanTransitionTo_FullTable(t *testing.T) {
	legal := map[item.Status]map[item.Status]bool{
		item.Pending:   {item.Preparing: true, item.Rejected: true, item.Cancelled: true},
		item.Preparing: {item.Ready: true, item.Rejected: true, item.Cancelled: true},
		item.Ready:     {item.Served: true, item.Preparing: true},
		item.Served:    {},
		item.Rejected:  {},
		item.Cancelled: {},
	}

	// Every (from, to) pair is checked, so the table cannot silently grow.
	for _, from := range allStatuses() {
		for _, to := range allStatuses() {
			t.Run(from.String()+"->"+to.String(), func(t *testing.T) {
				assert.Equal(t, legal[from][to], from.CanTransitionTo(to))
			})
		}
	}
}

func TestStatus_SameStatusIsRejected(t *testing.T) {
	for _, s := range allStatuses() {
		assert.False(t, s.CanTransitionTo(s), "same-status transition must be illegal for %s", s)
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.False(t, item.Pending.IsTerminal())
	assert.False(t, item.Preparing.IsTerminal())
	assert.False(t, item.Ready.IsTerminal())
	assert.True(t, item.Served.IsTerminal())
	assert.True(t, item.Rejected.IsTerminal())
	assert.True(t, item.Cancelled.IsTerminal())
}

func TestStatus_DescribeTransition(t *testing.T) {
	t.Run("legal transition has no reason", func(t *testing.T) {
		assert.Empty(t, item.Pending.DescribeTransition(item.Preparing))
	})

	t.Run("same status", func(t *testing.T) {
		assert.Equal(t, "item is already Ready", item.Ready.DescribeTransition(item.Ready))
	})

	t.Run("terminal status", func(t *testing.T) {
		assert.Equal(t, "Served is a terminal status", item.Served.DescribeTransition(item.Preparing))
	})

	t.Run("skipping a step", func(t *testing.T) {
		assert.Equal(t, "Ready cannot follow Pending", item.Pending.DescribeTransition(item.Ready))
	})
}

func TestStatus_Validate(t *testing.T) {
	for _, s := range allStatuses() {
		assert.NoError(t, s.Validate())
	}
	assert.ErrorIs(t, item.Unknown.Validate(), errs.ErrValueIsInvalid)
	assert.ErrorIs(t, item.Status(42).Validate(), errs.ErrValueIsInvalid)
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "Pending", item.Pending.String())
	assert.Equal(t, "Preparing", item.Preparing.String())
	assert.Equal(t, "Ready", item.Ready.String())
	assert.Equal(t, "Served", item.Served.String())
	assert.Equal(t, "Rejected", item.Rejected.String())
	assert.Equal(t, "Cancelled", item.Cancelled.String())
	assert.Equal(t, "Unknown", item.Status(42).String())
}

func TestStatusFromString(t *testing.T) {
	t.Run("parses valid names case-insensitively", func(t *testing.T) {
		tests := map[string]item.Status{
			"Pending":   item.Pending,
			"preparing": item.Preparing,
			"READY":     item.Ready,
			" served ":  item.Served,
			"Rejected":  item.Rejected,
			"cancelled": item.Cancelled,
		}
		for raw, expected := range tests {
			status, err := item.StatusFromString(raw)
			require.NoError(t, err, raw)
			assert.Equal(t, expected, status, raw)
		}
	})

	t.Run("rejects unrecognized names", func(t *testing.T) {
		for _, raw := range []string{"", "Unknown", "done", "in-progress"} {
			_, err := item.StatusFromString(raw)
			assert.ErrorIs(t, err, errs.ErrValueIsInvalid, raw)
		}
	})
}
