package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache(t *testing.T) {
	ctx := t.Context()
	cache := NewCache()

	require.NoError(t, cache.DBConnectionTest(ctx))

	_, err := cache.GetInvocationDoc(ctx, "missing", "user-1")
	assert.ErrorIs(t, err, ErrNotFound)

	doc := &InvocationDocument{
		ID:                "invocation-1",
		PartitionKey:      "user-1",
		Tool:              "whoAmI",
		PrincipalObjectID: "user-1",
		Succeeded:         true,
		InvokedAt:         time.Now().UTC(),
	}
	require.NoError(t, cache.SetInvocationDoc(ctx, doc))

	got, err := cache.GetInvocationDoc(ctx, "invocation-1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, doc, got)

	// Upsert replaces the stored document.
	doc2 := *doc
	doc2.Succeeded = false
	require.NoError(t, cache.SetInvocationDoc(ctx, &doc2))

	got, err = cache.GetInvocationDoc(ctx, "invocation-1", "user-1")
	require.NoError(t, err)
	assert.False(t, got.Succeeded)
}
