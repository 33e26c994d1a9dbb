// Copyright (c) 2026 Coursia. All rights reserved.
// Author: lam.vothanh.dev@gmail.com

package content

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/lamvothanh/coursia/internal/platform/constants"
)

// redisTreeRepository implements [TreeRepository] on Redis.
//
// Each course's tree is one JSON-encoded Chapter[] value under the key
// "{namespace}-{courseID}". Save-then-Load within a session round-trips the
// tree structurally, except legacy-field stripping which is one-directional.
type redisTreeRepository struct {
	client *redis.Client
	logger *slog.Logger
}

// NewTreeRepository constructs the Redis-backed tree store.
func NewTreeRepository(client *redis.Client, logger *slog.Logger) TreeRepository {
	return &redisTreeRepository{client: client, logger: logger}
}

// treeKey builds the per-course storage key.
func treeKey(courseID string) string {
	return constants.ContentTreeNamespace + "-" + courseID
}

/*
Load retrieves and normalizes the stored tree for a course.

Description: Never fails. A missing key is an empty curriculum; a corrupt
payload is logged and treated the same way.

Parameters:
  - ctx: context.Context
  - courseID: string

Returns:
  - Tree: The normalized tree, possibly empty
*/
func (repository *redisTreeRepository) Load(ctx context.Context, courseID string) Tree {
	payload, err := repository.client.Get(ctx, treeKey(courseID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			repository.logger.Warn("content_tree_load_failed",
				slog.String("course_id", courseID),
				slog.Any("error", err),
			)
		}
		return Tree{}
	}

	var raw []RawChapter
	if err := json.Unmarshal(payload, &raw); err != nil {
		repository.logger.Warn("content_tree_payload_corrupt",
			slog.String("course_id", courseID),
			slog.Any("error", err),
		)
		return Tree{}
	}

	return NormalizeChapters(raw)
}

/*
Save stores the full tree for a course, replacing the previous value.

Description: Failures are swallowed after a warning log; the caller's
in-memory tree remains authoritative for the rest of the session.

Parameters:
  - ctx: context.Context
  - courseID: string
  - tree: Tree
*/
func (repository *redisTreeRepository) Save(ctx context.Context, courseID string, tree Tree) {
	payload, err := json.Marshal(tree.Raw())
	if err != nil {
		repository.logger.Warn("content_tree_encode_failed",
			slog.String("course_id", courseID),
			slog.Any("error", err),
		)
		return
	}

	// No TTL: the tree lives until explicitly replaced or deleted.
	if err := repository.client.Set(ctx, treeKey(courseID), payload, 0).Err(); err != nil {
		repository.logger.Warn("content_tree_save_failed",
			slog.String("course_id", courseID),
			slog.Any("error", err),
		)
	}
}
