// Copyright (c) 2026 Coursia. All rights reserved.
// Author: lam.vothanh.dev@gmail.com

/*
Package content implements the course content tree: the ordered chapters and
lessons that make up a course curriculum.

It defines the canonical entities (Chapter, Lesson), the access-tier model,
the normalization rules that upgrade loosely-typed legacy records into the
canonical shape, the pure authoring transforms (add/edit/delete/reorder), and
the playback resolver that selects lessons for a viewer.

# Architecture

  - Entities and transforms in this package are pure: every authoring
    operation takes a [Tree] and returns a new one, never mutating its input.
  - Persistence goes through the [TreeRepository] interface; the canonical
    implementation is the Redis keyed store (store_redis.go).
  - Remote propagation to the spreadsheet bridge lives in the sheetsync
    subpackage and is strictly best-effort: it never blocks authoring.
*/
package content

// # Access Tiers

// AccessLevel is the membership tier required to play a lesson.
//
// Tiers form a total order: free < premium < vip. A viewer may access a
// lesson iff the viewer's tier ordinal is >= the lesson's tier ordinal.
type AccessLevel string

const (
	// LevelFree lessons are playable by any viewer, including anonymous ones.
	LevelFree AccessLevel = "free"
	// LevelPremium lessons require a paid membership.
	LevelPremium AccessLevel = "premium"
	// LevelVIP lessons require the top membership tier.
	LevelVIP AccessLevel = "vip"
)

// Ordinal maps a tier to its rank in the total order.
func (l AccessLevel) Ordinal() int {
	switch l {
	case LevelVIP:
		return 2
	case LevelPremium:
		return 1
	default:
		return 0
	}
}

// Allows reports whether a viewer holding tier l may access content
// requiring the target tier.
func (l AccessLevel) Allows(required AccessLevel) bool {
	return l.Ordinal() >= required.Ordinal()
}

// IsValid reports whether l is a recognised [AccessLevel] value.
func (l AccessLevel) IsValid() bool {
	switch l {
	case LevelFree, LevelPremium, LevelVIP:
		return true
	}
	return false
}

// ParseAccessLevel converts an arbitrary persisted string into an
// [AccessLevel]. Unknown or empty input degrades to [LevelFree] — legacy
// records must stay renderable, never rejected.
func ParseAccessLevel(raw string) AccessLevel {
	level := AccessLevel(raw)
	if level.IsValid() {
		return level
	}
	return LevelFree
}

// # Entities

// Lesson is a single playable content unit within a chapter.
type Lesson struct {
	// ID is an opaque stable identifier, unique within the parent chapter.
	// IDs are never reused after deletion.
	ID string `json:"id"`

	// Title is the display name. Non-empty once persisted.
	Title string `json:"title"`

	// Duration is a display string in MM:SS form. Empty means unknown;
	// authors may override it manually.
	Duration string `json:"duration"`

	// RequiredLevel gates playback and navigation to this lesson.
	RequiredLevel AccessLevel `json:"requiredLevel"`

	// DirectPlayURL is the canonical playback URL: either an embedded-player
	// URL or a direct media file URL. Empty means the lesson has no video yet.
	DirectPlayURL string `json:"directPlayUrl"`
}

// IsPlayable reports whether the lesson has a video attached. A lesson with
// an empty DirectPlayURL stays visible in the curriculum but is never
// selected as playable.
func (l Lesson) IsPlayable() bool {
	return l.DirectPlayURL != ""
}

// Chapter is an ordered, named grouping of lessons within a course.
type Chapter struct {
	// ID is an opaque stable identifier, unique within the course.
	ID string `json:"id"`

	// Title is the display name of the chapter.
	Title string `json:"title"`

	// Lessons is the curriculum sequence. Order is meaningful and
	// author-reorderable, but only within this chapter.
	Lessons []Lesson `json:"lessons"`
}

// # Content Tree

// Tree is the full course content: the ordered chapter sequence scoped to a
// single course ID. A nil Tree is a valid empty curriculum.
type Tree []Chapter

// LessonCount returns the total number of lessons across all chapters.
func (t Tree) LessonCount() int {
	total := 0
	for _, chapter := range t {
		total += len(chapter.Lessons)
	}
	return total
}

// Clone returns a deep copy of the tree.
//
// Authoring transforms operate on clones so that a returned tree never
// aliases the lesson slices of its input.
func (t Tree) Clone() Tree {
	if t == nil {
		return nil
	}

	cloned := make(Tree, len(t))
	for i, chapter := range t {
		cloned[i] = chapter
		cloned[i].Lessons = make([]Lesson, len(chapter.Lessons))
		copy(cloned[i].Lessons, chapter.Lessons)
	}
	return cloned
}

// FlatLesson pairs a lesson with its owning chapter for flattened traversal.
type FlatLesson struct {
	ChapterID string
	Lesson    Lesson
}

// Flatten returns every lesson in curriculum order: chapters in order,
// lessons within each chapter in order.
func (t Tree) Flatten() []FlatLesson {
	var flat []FlatLesson
	for _, chapter := range t {
		for _, lesson := range chapter.Lessons {
			flat = append(flat, FlatLesson{ChapterID: chapter.ID, Lesson: lesson})
		}
	}
	return flat
}

// findChapter returns the index of the chapter with the given ID, or -1.
func (t Tree) findChapter(chapterID string) int {
	for i, chapter := range t {
		if chapter.ID == chapterID {
			return i
		}
	}
	return -1
}

// findLesson returns the chapter and lesson indices for a lesson ID within a
// specific chapter, or (-1, -1) when either is absent.
func (t Tree) findLesson(chapterID, lessonID string) (chapterIndex, lessonIndex int) {
	chapterIndex = t.findChapter(chapterID)
	if chapterIndex < 0 {
		return -1, -1
	}

	for i, lesson := range t[chapterIndex].Lessons {
		if lesson.ID == lessonID {
			return chapterIndex, i
		}
	}
	return -1, -1
}
