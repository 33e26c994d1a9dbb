// Copyright (c) 2026 Coursia. All rights reserved.
// Author: lam.vothanh.dev@gmail.com

package content

import "context"

// TreeRepository defines the local persistence contract for course content
// trees.
//
// # Failure Semantics
//
// The local store is deliberately forgiving: a missing key, corrupt payload,
// or I/O failure on Load degrades to an empty tree, and a failed Save is
// swallowed after logging — the in-memory tree remains the source of truth
// for the session. Callers therefore never branch on storage errors; only
// the remote sheet bridge reports failures upward.
//
// # Implementations
//
// The canonical implementation is the Redis keyed store (store_redis.go).
// Tests use an in-memory fake.
type TreeRepository interface {
	// Load returns the tree stored for courseID, passed through
	// [NormalizeChapters] — this is the single point where legacy records
	// are upgraded. Returns an empty tree when nothing usable is stored.
	Load(ctx context.Context, courseID string) Tree

	// Save serializes and stores the full tree under the course's key,
	// replacing any previous value. Write failures are swallowed.
	Save(ctx context.Context, courseID string, tree Tree)
}
