package postgresql

import (
	"context"
	"fmt"

	"github.com/saifullah-max/pegahcm-backend-sub000/internal/pkg/database"
)

// AutoCheckoutLockKey identifies the advisory lock held while an auto
// checkout pass runs, so that concurrent instances never run two at once.
const AutoCheckoutLockKey int64 = 7241_0001

// AdvisoryLock wraps Postgres session advisory locks. The lock and unlock
// must run on the same connection, so one is pinned for the lock's lifetime.
type AdvisoryLock struct {
	db *database.DB
}

func NewAdvisoryLock(db *database.DB) *AdvisoryLock {
	return &AdvisoryLock{db: db}
}

// TryAcquire attempts to take the lock without blocking. On success the
// returned release func must be called to free the lock and its connection.
// acquired == false means another holder has it.
func (l *AdvisoryLock) TryAcquire(ctx context.Context, key int64) (acquired bool, release func(), err error) {
	conn, err := l.db.AcquireConn(ctx)
	if err != nil {
		return false, nil, fmt.Errorf("failed to acquire connection for advisory lock: %w", err)
	}

	if err := conn.QueryRow(ctx, `SELECT pg_try_advisory_lock($1)`, key).Scan(&acquired); err != nil {
		conn.Release()
		return false, nil, fmt.Errorf("failed to take advisory lock: %w", err)
	}
	if !acquired {
		conn.Release()
		return false, nil, nil
	}

	release = func() {
		// Best effort: closing the session would drop the lock anyway.
		_, _ = conn.Exec(context.Background(), `SELECT pg_advisory_unlock($1)`, key)
		conn.Release()
	}

	return true, release, nil
}
