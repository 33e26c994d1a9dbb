// Copyright (c) 2026 Coursia. All rights reserved.
// Author: lam.vothanh.dev@gmail.com

package content_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lamvothanh/coursia/internal/content"
)

// gatedTree mixes tiers and a videoless lesson to exercise the resolver.
//
//	ch-1: ls-1 (premium, video)   ls-2 (free, no video)
//	ch-2: ls-3 (free, video)      ls-4 (vip, video)
func gatedTree() content.Tree {
	return content.Tree{
		{
			ID: "ch-1",
			Lessons: []content.Lesson{
				{ID: "ls-1", Title: "Paid intro", RequiredLevel: content.LevelPremium, DirectPlayURL: "https://iframe.mediadelivery.net/embed/lib/v1"},
				{ID: "ls-2", Title: "Coming soon", RequiredLevel: content.LevelFree},
			},
		},
		{
			ID: "ch-2",
			Lessons: []content.Lesson{
				{ID: "ls-3", Title: "Free sample", RequiredLevel: content.LevelFree, DirectPlayURL: "https://iframe.mediadelivery.net/embed/lib/v3"},
				{ID: "ls-4", Title: "Masterclass", RequiredLevel: content.LevelVIP, DirectPlayURL: "https://iframe.mediadelivery.net/embed/lib/v4"},
			},
		},
	}
}

/*
TestResolveInitial walks the tier matrix for initial lesson selection.
*/
func TestResolveInitial(t *testing.T) {
	tree := gatedTree()

	tests := []struct {
		name   string
		viewer content.AccessLevel
		want   content.Selection
	}{
		{
			// ls-1 is locked, ls-2 has no video; first playable for a free
			// viewer is ls-3 in the second chapter.
			"free_viewer_skips_locked_and_videoless",
			content.LevelFree,
			content.Selection{LessonID: "ls-3", ChapterID: "ch-2", Playable: true},
		},
		{
			"premium_viewer_gets_first_premium",
			content.LevelPremium,
			content.Selection{LessonID: "ls-1", ChapterID: "ch-1", Playable: true},
		},
		{
			"vip_viewer_gets_first_playable",
			content.LevelVIP,
			content.Selection{LessonID: "ls-1", ChapterID: "ch-1", Playable: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, content.ResolveInitial(tree, tt.viewer))
		})
	}
}

/*
TestResolveInitial_Fallback verifies that when nothing qualifies the very
first lesson is selected with Playable false, so the player surface always
has a selection to render.
*/
func TestResolveInitial_Fallback(t *testing.T) {
	allLocked := content.Tree{
		{
			ID: "ch-1",
			Lessons: []content.Lesson{
				{ID: "ls-1", RequiredLevel: content.LevelVIP, DirectPlayURL: "https://iframe.mediadelivery.net/embed/lib/v1"},
			},
		},
	}

	selection := content.ResolveInitial(allLocked, content.LevelFree)
	assert.Equal(t, content.Selection{LessonID: "ls-1", ChapterID: "ch-1", Playable: false}, selection)

	// First chapter empty: fallback still finds the first lesson anywhere.
	leadingEmpty := content.Tree{
		{ID: "ch-0", Lessons: []content.Lesson{}},
		{ID: "ch-1", Lessons: []content.Lesson{{ID: "ls-1", RequiredLevel: content.LevelVIP}}},
	}
	selection = content.ResolveInitial(leadingEmpty, content.LevelFree)
	assert.Equal(t, "ls-1", selection.LessonID)
	assert.Equal(t, "ch-1", selection.ChapterID)
	assert.False(t, selection.Playable)
}

/*
TestResolveInitial_EmptyTree verifies the empty-selection outcome.
*/
func TestResolveInitial_EmptyTree(t *testing.T) {
	assert.Equal(t, content.Selection{}, content.ResolveInitial(nil, content.LevelVIP))
	assert.Equal(t, content.Selection{}, content.ResolveInitial(content.Tree{}, content.LevelFree))
}

/*
TestNext verifies forward navigation, including the chapter boundary and the
locked-target rejection.
*/
func TestNext(t *testing.T) {
	tree := gatedTree()

	t.Run("crosses_chapter_boundary", func(t *testing.T) {
		selection := content.Next(tree, "ls-2", content.LevelFree)
		assert.Equal(t, content.Selection{LessonID: "ls-3", ChapterID: "ch-2", Playable: true}, selection)
	})

	t.Run("locked_target_keeps_current", func(t *testing.T) {
		// ls-4 requires vip; a premium viewer stays on ls-3.
		selection := content.Next(tree, "ls-3", content.LevelPremium)
		assert.Equal(t, "ls-3", selection.LessonID)
		assert.True(t, selection.Playable)
	})

	t.Run("vip_reaches_locked_target", func(t *testing.T) {
		selection := content.Next(tree, "ls-3", content.LevelVIP)
		assert.Equal(t, "ls-4", selection.LessonID)
		assert.True(t, selection.Playable)
	})

	t.Run("last_lesson_keeps_current", func(t *testing.T) {
		selection := content.Next(tree, "ls-4", content.LevelVIP)
		assert.Equal(t, "ls-4", selection.LessonID)
	})

	t.Run("unknown_current_yields_empty", func(t *testing.T) {
		assert.Equal(t, content.Selection{}, content.Next(tree, "ls-missing", content.LevelVIP))
	})

	t.Run("videoless_target_is_reachable_but_unplayable", func(t *testing.T) {
		// Navigation is tier-gated only; ls-2 has no video but is a valid stop.
		selection := content.Next(tree, "ls-1", content.LevelPremium)
		assert.Equal(t, "ls-2", selection.LessonID)
		assert.False(t, selection.Playable)
	})
}

/*
TestPrev verifies backward navigation with the same rejection rules.
*/
func TestPrev(t *testing.T) {
	tree := gatedTree()

	t.Run("crosses_chapter_boundary", func(t *testing.T) {
		selection := content.Prev(tree, "ls-3", content.LevelVIP)
		assert.Equal(t, content.Selection{LessonID: "ls-2", ChapterID: "ch-1", Playable: false}, selection)
	})

	t.Run("locked_target_keeps_current", func(t *testing.T) {
		// ls-1 requires premium; a free viewer on ls-2 stays put.
		selection := content.Prev(tree, "ls-2", content.LevelFree)
		assert.Equal(t, "ls-2", selection.LessonID)
	})

	t.Run("first_lesson_keeps_current", func(t *testing.T) {
		selection := content.Prev(tree, "ls-1", content.LevelVIP)
		assert.Equal(t, "ls-1", selection.LessonID)
	})
}
