// Copyright (c) 2026 Coursia. All rights reserved.
// Author: lam.vothanh.dev@gmail.com

package content_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lamvothanh/coursia/internal/content"
)

// seedTree builds a two-chapter fixture used across the authoring tests.
func seedTree() content.Tree {
	return content.Tree{
		{
			ID:    "ch-1",
			Title: "Basics",
			Lessons: []content.Lesson{
				{ID: "ls-1", Title: "Intro", RequiredLevel: content.LevelFree, DirectPlayURL: "https://iframe.mediadelivery.net/embed/lib/v1"},
				{ID: "ls-2", Title: "Setup", RequiredLevel: content.LevelFree, DirectPlayURL: "https://iframe.mediadelivery.net/embed/lib/v2"},
				{ID: "ls-3", Title: "Tooling", RequiredLevel: content.LevelPremium, DirectPlayURL: "https://iframe.mediadelivery.net/embed/lib/v3"},
			},
		},
		{
			ID:    "ch-2",
			Title: "Advanced",
			Lessons: []content.Lesson{
				{ID: "ls-4", Title: "Concurrency", RequiredLevel: content.LevelVIP, DirectPlayURL: "https://iframe.mediadelivery.net/embed/lib/v4"},
			},
		},
	}
}

/*
TestAddChapter verifies appending and the blank-title no-op.
*/
func TestAddChapter(t *testing.T) {
	tree := seedTree()

	next := content.AddChapter(tree, "  Deployment  ")
	require.Len(t, next, 3)
	assert.Equal(t, "Deployment", next[2].Title)
	assert.NotEmpty(t, next[2].ID)
	assert.Empty(t, next[2].Lessons)

	// Blank titles are silent no-ops.
	assert.Len(t, content.AddChapter(tree, ""), 2)
	assert.Len(t, content.AddChapter(tree, "   "), 2)

	// Input stays untouched.
	assert.Len(t, tree, 2)
}

/*
TestRenameChapter verifies in-place retitling and the unknown-ID no-op.
*/
func TestRenameChapter(t *testing.T) {
	tree := seedTree()

	next := content.RenameChapter(tree, "ch-1", "Foundations")
	assert.Equal(t, "Foundations", next[0].Title)
	assert.Equal(t, "ch-1", next[0].ID)
	assert.Equal(t, "Basics", tree[0].Title)

	assert.Equal(t, tree, content.RenameChapter(tree, "ch-missing", "X"))
	assert.Equal(t, tree, content.RenameChapter(tree, "ch-1", "  "))
}

/*
TestDeleteChapter verifies the cascade: deleting a chapter removes all of its
lessons from the curriculum.
*/
func TestDeleteChapter(t *testing.T) {
	tree := seedTree()
	require.Equal(t, 4, tree.LessonCount())

	next := content.DeleteChapter(tree, "ch-1")
	require.Len(t, next, 1)
	assert.Equal(t, "ch-2", next[0].ID)
	assert.Equal(t, 1, next.LessonCount())

	// Unknown chapter is a no-op; input unchanged either way.
	assert.Equal(t, tree, content.DeleteChapter(tree, "ch-missing"))
	assert.Equal(t, 4, tree.LessonCount())
}

/*
TestAddLesson verifies appending at the end of a chapter, fresh ID
assignment, and field normalization on the way in.
*/
func TestAddLesson(t *testing.T) {
	tree := seedTree()

	next := content.AddLesson(tree, "ch-2", content.LessonFields{
		Title:         "Channels",
		Duration:      "12:00",
		RequiredLevel: "vip",
		DirectPlayURL: "https://player.mediadelivery.net/embed/lib/v5",
	})

	lessons := next[1].Lessons
	require.Len(t, lessons, 2)

	added := lessons[1]
	assert.NotEmpty(t, added.ID)
	assert.Equal(t, "Channels", added.Title)
	assert.Equal(t, content.LevelVIP, added.RequiredLevel)
	// Host normalization applies to authored URLs too.
	assert.Equal(t, "https://iframe.mediadelivery.net/embed/lib/v5", added.DirectPlayURL)

	assert.Equal(t, tree, content.AddLesson(tree, "ch-missing", content.LessonFields{Title: "X"}))
	assert.Equal(t, tree, content.AddLesson(tree, "ch-2", content.LessonFields{Title: " "}))
}

/*
TestEditLesson verifies that edits preserve ID and position while replacing
the mutable fields.
*/
func TestEditLesson(t *testing.T) {
	tree := seedTree()

	next := content.EditLesson(tree, "ch-1", "ls-2", content.LessonFields{
		Title:         "Environment Setup",
		Duration:      "08:45",
		RequiredLevel: "premium",
		DirectPlayURL: "https://iframe.mediadelivery.net/embed/lib/v2",
	})

	edited := next[0].Lessons[1]
	assert.Equal(t, "ls-2", edited.ID)
	assert.Equal(t, "Environment Setup", edited.Title)
	assert.Equal(t, content.LevelPremium, edited.RequiredLevel)

	// Unknown tier degrades to free rather than failing the edit.
	degraded := content.EditLesson(tree, "ch-1", "ls-2", content.LessonFields{
		Title:         "Setup",
		RequiredLevel: "gold",
	})
	assert.Equal(t, content.LevelFree, degraded[0].Lessons[1].RequiredLevel)

	assert.Equal(t, tree, content.EditLesson(tree, "ch-1", "ls-missing", content.LessonFields{Title: "X"}))
	assert.Equal(t, tree, content.EditLesson(tree, "ch-2", "ls-1", content.LessonFields{Title: "X"}))
	assert.Equal(t, "Setup", tree[0].Lessons[1].Title)
}

/*
TestDeleteLesson verifies single-lesson removal and the unknown-pair no-op.
*/
func TestDeleteLesson(t *testing.T) {
	tree := seedTree()

	next := content.DeleteLesson(tree, "ch-1", "ls-2")
	require.Len(t, next[0].Lessons, 2)
	assert.Equal(t, "ls-1", next[0].Lessons[0].ID)
	assert.Equal(t, "ls-3", next[0].Lessons[1].ID)

	// Lesson exists but in another chapter: no-op.
	assert.Equal(t, tree, content.DeleteLesson(tree, "ch-2", "ls-2"))
	assert.Len(t, tree[0].Lessons, 3)
}

/*
TestReorderLesson verifies the remove-then-insert splice and every rejection
rule: unknown chapter, out-of-range indices, and equal indices.
*/
func TestReorderLesson(t *testing.T) {
	tree := seedTree()

	t.Run("move_forward", func(t *testing.T) {
		next := content.ReorderLesson(tree, "ch-1", 0, 2)
		ids := lessonIDs(next[0])
		assert.Equal(t, []string{"ls-2", "ls-3", "ls-1"}, ids)
	})

	t.Run("move_backward", func(t *testing.T) {
		next := content.ReorderLesson(tree, "ch-1", 2, 0)
		ids := lessonIDs(next[0])
		assert.Equal(t, []string{"ls-3", "ls-1", "ls-2"}, ids)
	})

	t.Run("other_chapters_untouched", func(t *testing.T) {
		next := content.ReorderLesson(tree, "ch-1", 0, 1)
		assert.Equal(t, []string{"ls-4"}, lessonIDs(next[1]))
	})

	t.Run("rejections", func(t *testing.T) {
		assert.Equal(t, tree, content.ReorderLesson(tree, "ch-missing", 0, 1))
		assert.Equal(t, tree, content.ReorderLesson(tree, "ch-1", 0, 3))
		assert.Equal(t, tree, content.ReorderLesson(tree, "ch-1", -1, 1))
		assert.Equal(t, tree, content.ReorderLesson(tree, "ch-1", 1, 1))
	})

	// Input ordering survives every transform above.
	assert.Equal(t, []string{"ls-1", "ls-2", "ls-3"}, lessonIDs(tree[0]))
}

/*
TestTree_Clone verifies that clones never alias the input's lesson slices.
*/
func TestTree_Clone(t *testing.T) {
	tree := seedTree()
	cloned := tree.Clone()

	cloned[0].Lessons[0].Title = "Mutated"
	assert.Equal(t, "Intro", tree[0].Lessons[0].Title)

	assert.Nil(t, content.Tree(nil).Clone())
}

/*
TestTree_Flatten verifies curriculum-order traversal across chapters.
*/
func TestTree_Flatten(t *testing.T) {
	flat := seedTree().Flatten()
	require.Len(t, flat, 4)

	assert.Equal(t, "ls-1", flat[0].Lesson.ID)
	assert.Equal(t, "ch-1", flat[0].ChapterID)
	assert.Equal(t, "ls-4", flat[3].Lesson.ID)
	assert.Equal(t, "ch-2", flat[3].ChapterID)
}

// lessonIDs extracts the ID sequence of a chapter's lessons.
func lessonIDs(chapter content.Chapter) []string {
	ids := make([]string, 0, len(chapter.Lessons))
	for _, lesson := range chapter.Lessons {
		ids = append(ids, lesson.ID)
	}
	return ids
}
