// Copyright (c) 2026 Coursia. All rights reserved.
// Author: lam.vothanh.dev@gmail.com

package content

import (
	"strings"

	"github.com/lamvothanh/coursia/pkg/uuid"
)

// # Authoring Transforms
//
// Every transform takes the current tree and returns a new tree; the input
// is never mutated. Precondition failures (empty titles, unknown IDs,
// out-of-range indices, cross-chapter drags) are silent no-ops that return
// the input unchanged — the HTTP layer pre-validates and reports, while the
// engine itself stays defensive.

// LessonFields carries the mutable fields of a lesson for add/edit
// operations. ID and position are owned by the engine and never supplied.
type LessonFields struct {
	Title         string
	Duration      string
	RequiredLevel AccessLevel
	DirectPlayURL string
}

// AddChapter appends a new empty chapter with a fresh ID.
//
// A blank (or whitespace-only) title is rejected as a no-op.
func AddChapter(tree Tree, title string) Tree {
	title = strings.TrimSpace(title)
	if title == "" {
		return tree
	}

	next := tree.Clone()
	return append(next, Chapter{
		ID:      uuid.New(),
		Title:   title,
		Lessons: []Lesson{},
	})
}

// RenameChapter replaces a chapter's title in place.
//
// No-op when the title is blank or the chapter does not exist.
func RenameChapter(tree Tree, chapterID, title string) Tree {
	title = strings.TrimSpace(title)
	if title == "" {
		return tree
	}

	index := tree.findChapter(chapterID)
	if index < 0 {
		return tree
	}

	next := tree.Clone()
	next[index].Title = title
	return next
}

// DeleteChapter removes a chapter and cascades to all of its lessons.
//
// Irreversible — there is no soft-delete or undo. No-op when the chapter
// does not exist.
func DeleteChapter(tree Tree, chapterID string) Tree {
	index := tree.findChapter(chapterID)
	if index < 0 {
		return tree
	}

	next := tree.Clone()
	return append(next[:index], next[index+1:]...)
}

// AddLesson appends a new lesson, with a fresh ID, to the end of a chapter's
// lesson list.
//
// No-op when the chapter does not exist or the title is blank.
func AddLesson(tree Tree, chapterID string, fields LessonFields) Tree {
	title := strings.TrimSpace(fields.Title)
	if title == "" {
		return tree
	}

	index := tree.findChapter(chapterID)
	if index < 0 {
		return tree
	}

	next := tree.Clone()
	next[index].Lessons = append(next[index].Lessons, Lesson{
		ID:            uuid.New(),
		Title:         title,
		Duration:      fields.Duration,
		RequiredLevel: ParseAccessLevel(string(fields.RequiredLevel)),
		DirectPlayURL: NormalizeHost(fields.DirectPlayURL),
	})
	return next
}

// EditLesson replaces the mutable fields of an existing lesson, preserving
// its ID and position.
//
// No-op when the chapter/lesson pair does not exist or the title is blank.
func EditLesson(tree Tree, chapterID, lessonID string, fields LessonFields) Tree {
	title := strings.TrimSpace(fields.Title)
	if title == "" {
		return tree
	}

	chapterIndex, lessonIndex := tree.findLesson(chapterID, lessonID)
	if chapterIndex < 0 {
		return tree
	}

	next := tree.Clone()
	lesson := &next[chapterIndex].Lessons[lessonIndex]
	lesson.Title = title
	lesson.Duration = fields.Duration
	lesson.RequiredLevel = ParseAccessLevel(string(fields.RequiredLevel))
	lesson.DirectPlayURL = NormalizeHost(fields.DirectPlayURL)
	return next
}

// DeleteLesson removes a single lesson from its chapter.
//
// No-op when the chapter/lesson pair does not exist.
func DeleteLesson(tree Tree, chapterID, lessonID string) Tree {
	chapterIndex, lessonIndex := tree.findLesson(chapterID, lessonID)
	if chapterIndex < 0 {
		return tree
	}

	next := tree.Clone()
	lessons := next[chapterIndex].Lessons
	next[chapterIndex].Lessons = append(lessons[:lessonIndex], lessons[lessonIndex+1:]...)
	return next
}

// ReorderLesson moves a lesson within a single chapter via a
// remove-then-insert splice.
//
// Reordering is confined to one chapter: a drag that originates and
// terminates in different chapters never reaches this transform, and the
// indices here are validated against the one chapter's bounds. No-op when
// the chapter is unknown, either index is out of range, or the indices are
// equal.
func ReorderLesson(tree Tree, chapterID string, fromIndex, toIndex int) Tree {
	index := tree.findChapter(chapterID)
	if index < 0 {
		return tree
	}

	lessonCount := len(tree[index].Lessons)
	if fromIndex == toIndex ||
		fromIndex < 0 || fromIndex >= lessonCount ||
		toIndex < 0 || toIndex >= lessonCount {
		return tree
	}

	next := tree.Clone()
	lessons := next[index].Lessons

	moved := lessons[fromIndex]
	lessons = append(lessons[:fromIndex], lessons[fromIndex+1:]...)

	lessons = append(lessons, Lesson{})
	copy(lessons[toIndex+1:], lessons[toIndex:])
	lessons[toIndex] = moved

	next[index].Lessons = lessons
	return next
}
