// Copyright (c) 2026 Coursia. All rights reserved.
// Author: lam.vothanh.dev@gmail.com

package content

// # Playback Resolution
//
// The resolver consumes the tree plus a viewer's membership tier and decides
// which lesson plays first and which navigation moves are allowed. Locked
// targets are silently rejected: the UI is expected to render the locked
// state up front, but the resolver stays defensive regardless.

// Selection is the outcome of initial lesson resolution for a viewer.
type Selection struct {
	// LessonID is the selected lesson, or empty when the tree has no lessons.
	LessonID string `json:"lessonId"`

	// ChapterID owns the selected lesson. Seeds the expanded-chapter UI
	// state so the selection is visible on first render.
	ChapterID string `json:"chapterId"`

	// Playable is true when the lesson has a video and the viewer's tier
	// admits it. The fallback selection may be locked or videoless.
	Playable bool `json:"playable"`
}

// ResolveInitial selects the lesson to present when a viewer opens a course.
//
// Walks chapters in order and lessons within each chapter in order, picking
// the first lesson that both has a video and is admitted by the viewer's
// tier. When no lesson qualifies, it falls back to the very first lesson in
// the tree — locked or videoless — so the player surface always has
// something to display. An empty tree yields an empty selection.
func ResolveInitial(tree Tree, viewer AccessLevel) Selection {
	for _, chapter := range tree {
		for _, lesson := range chapter.Lessons {
			if lesson.IsPlayable() && viewer.Allows(lesson.RequiredLevel) {
				return Selection{
					LessonID:  lesson.ID,
					ChapterID: chapter.ID,
					Playable:  true,
				}
			}
		}
	}

	// Fallback: first lesson regardless of playability or access.
	for _, chapter := range tree {
		if len(chapter.Lessons) > 0 {
			return Selection{
				LessonID:  chapter.Lessons[0].ID,
				ChapterID: chapter.ID,
				Playable:  false,
			}
		}
	}

	return Selection{}
}

// Next moves the selection to the lesson after currentID in the flattened
// curriculum sequence.
//
// The move is silently rejected — the current selection is returned
// unchanged — when currentID is not in the tree, the current lesson is the
// last one, or the target lesson's tier exceeds the viewer's.
func Next(tree Tree, currentID string, viewer AccessLevel) Selection {
	return step(tree, currentID, viewer, +1)
}

// Prev moves the selection to the lesson before currentID, with the same
// rejection rules as [Next].
func Prev(tree Tree, currentID string, viewer AccessLevel) Selection {
	return step(tree, currentID, viewer, -1)
}

// step implements directional navigation over the flattened lesson sequence.
func step(tree Tree, currentID string, viewer AccessLevel, direction int) Selection {
	flat := tree.Flatten()

	currentIndex := -1
	for i, entry := range flat {
		if entry.Lesson.ID == currentID {
			currentIndex = i
			break
		}
	}
	if currentIndex < 0 {
		return Selection{}
	}

	current := selectionAt(flat, currentIndex, viewer)

	targetIndex := currentIndex + direction
	if targetIndex < 0 || targetIndex >= len(flat) {
		return current
	}

	target := flat[targetIndex]
	if !viewer.Allows(target.Lesson.RequiredLevel) {
		return current
	}

	return selectionAt(flat, targetIndex, viewer)
}

// selectionAt builds a [Selection] for the flattened entry at index.
func selectionAt(flat []FlatLesson, index int, viewer AccessLevel) Selection {
	entry := flat[index]
	return Selection{
		LessonID:  entry.Lesson.ID,
		ChapterID: entry.ChapterID,
		Playable:  entry.Lesson.IsPlayable() && viewer.Allows(entry.Lesson.RequiredLevel),
	}
}
