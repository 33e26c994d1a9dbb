// Copyright (c) 2026 Coursia. All rights reserved.
// Author: lam.vothanh.dev@gmail.com

package content_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lamvothanh/coursia/internal/content"
)

// wireTreeStore is a TreeRepository that persists trees through the same wire
// form as the keyed store: JSON-encoded raw chapters on save, normalization
// on load.
type wireTreeStore struct {
	payloads map[string][]byte
}

func (s *wireTreeStore) Load(_ context.Context, courseID string) content.Tree {
	payload, ok := s.payloads[courseID]
	if !ok {
		return content.Tree{}
	}
	var raw []content.RawChapter
	if err := json.Unmarshal(payload, &raw); err != nil {
		return content.Tree{}
	}
	return content.NormalizeChapters(raw)
}

func (s *wireTreeStore) Save(_ context.Context, courseID string, tree content.Tree) {
	payload, err := json.Marshal(tree.Raw())
	if err != nil {
		return
	}
	s.payloads[courseID] = payload
}

/*
TestTreeRepository_Forgiving verifies the store never surfaces IO failures:
an unreachable backend yields an empty tree on Load and a silently dropped
Save.
*/
func TestTreeRepository_Forgiving(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	t.Cleanup(func() { _ = client.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := content.NewTreeRepository(client, logger)
	ctx := context.Background()

	tree := store.Load(ctx, "course-1")
	assert.Empty(t, tree)

	// Must not panic or block; the in-memory tree stays authoritative.
	store.Save(ctx, "course-1", content.Tree{{ID: "ch-1", Title: "Basics"}})
}

/*
TestTreeRepository_RoundTrip verifies the wire-form round trip: a legacy
payload written by an older client is upgraded exactly once on load, and a
tree saved through the store comes back identical on every subsequent load.
*/
func TestTreeRepository_RoundTrip(t *testing.T) {
	var store content.TreeRepository = &wireTreeStore{payloads: map[string][]byte{
		"course-1": []byte(`[{
			"id": "ch-1",
			"title": "Basics",
			"lessons": [
				{"id": "ls-1", "title": "Intro", "videoId": "vid-9", "libraryId": "lib-3"},
				{"id": "ls-2", "title": "Setup", "duration": "04:30", "requiredLevel": "premium",
				 "directPlayUrl": "https://iframe.mediadelivery.net/embed/lib-3/vid-10"}
			]
		}]`),
	}}
	ctx := context.Background()

	loaded := store.Load(ctx, "course-1")
	require.Len(t, loaded, 1)
	require.Len(t, loaded[0].Lessons, 2)
	assert.Equal(t, "https://iframe.mediadelivery.net/embed/lib-3/vid-9", loaded[0].Lessons[0].DirectPlayURL)
	assert.Equal(t, content.LevelFree, loaded[0].Lessons[0].RequiredLevel)

	// Saving the upgraded tree and reloading it is a fixed point: the legacy
	// pair is gone from the wire form, so normalization has nothing left to do.
	store.Save(ctx, "course-1", loaded)
	reloaded := store.Load(ctx, "course-1")
	assert.Equal(t, loaded, reloaded)

	store.Save(ctx, "course-1", reloaded)
	assert.Equal(t, reloaded, store.Load(ctx, "course-1"))
}
