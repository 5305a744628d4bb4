package postgresql

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvisoryLockTryAcquire_RequiresDedicatedConnection(t *testing.T) {
	t.Parallel()

	_, db := newMockDB(t)
	lock := NewAdvisoryLock(db)

	acquired, release, err := lock.TryAcquire(context.Background(), AutoCheckoutLockKey)
	require.Error(t, err)
	assert.False(t, acquired)
	assert.Nil(t, release)
}
