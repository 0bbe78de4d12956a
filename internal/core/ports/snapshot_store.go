package ports

import "context"

// Storage keys for the durable snapshots. The users key holds a JSON array of
// user records; the session key holds a single {user, timestamp} object.
const (
	UsersKey   = "directory:users"
	SessionKey = "directory:session"
)

// SnapshotStore is the durable key-value store behind the simulated backend
// and the session manager. Get returns domain.ErrSnapshotMissing when the key
// has never been written.
type SnapshotStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// Ping reports whether the underlying store is reachable; used by the
	// readiness probe.
	Ping(ctx context.Context) error
}
