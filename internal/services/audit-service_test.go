package services

import (
	"context"
	"sync"
	"testing"

	"github.com/Procesia/docs_service/internal/domain"
	"github.com/Procesia/docs_service/internal/reqctx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memAuditRepo struct {
	mu      sync.Mutex
	entries []domain.AuditLog
	fail    error
}

func (r *memAuditRepo) Record(entry *domain.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return r.fail
	}
	r.entries = append(r.entries, *entry)
	return nil
}

func TestAuditTrailResolvesContextIdentity(t *testing.T) {
	repo := &memAuditRepo{}
	trail := NewAuditTrail(repo)

	ctx := reqctx.WithRequestID(context.Background(), "req-42")
	ctx = reqctx.WithUserID(ctx, "user-7")

	err := trail.Record(ctx, AuditEntry{
		Entity: "documents",
		Action: "update",
	})
	require.NoError(t, err)

	require.Len(t, repo.entries, 1)
	entry := repo.entries[0]
	require.NotNil(t, entry.PerformedBy)
	assert.Equal(t, "user-7", *entry.PerformedBy)
	require.NotNil(t, entry.RequestID)
	assert.Equal(t, "req-42", *entry.RequestID)
	assert.False(t, entry.PerformedAt.IsZero())
}

func TestAuditTrailExplicitActorWins(t *testing.T) {
	repo := &memAuditRepo{}
	trail := NewAuditTrail(repo)

	ctx := reqctx.WithUserID(context.Background(), "user-from-ctx")
	err := trail.Record(ctx, AuditEntry{
		Entity:      "documents",
		Action:      "create",
		PerformedBy: "user-explicit",
	})
	require.NoError(t, err)

	require.Len(t, repo.entries, 1)
	require.NotNil(t, repo.entries[0].PerformedBy)
	assert.Equal(t, "user-explicit", *repo.entries[0].PerformedBy)
}

func TestAuditTrailSanitizesMetadata(t *testing.T) {
	repo := &memAuditRepo{}
	trail := NewAuditTrail(repo)

	err := trail.Record(context.Background(), AuditEntry{
		Entity: "documents",
		Action: "update",
		Metadata: map[string]interface{}{
			"count":  3,
			"name":   "handbook",
			"nested": map[string]string{"a": "b"},
		},
	})
	require.NoError(t, err)

	require.Len(t, repo.entries, 1)
	metadata := repo.entries[0].Metadata
	assert.Equal(t, 3, metadata["count"])
	assert.Equal(t, "handbook", metadata["name"])
	// non-scalar values are stringified rather than rejected
	assert.Equal(t, "map[a:b]", metadata["nested"])
}
