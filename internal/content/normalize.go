// Copyright (c) 2026 Coursia. All rights reserved.
// Author: lam.vothanh.dev@gmail.com

package content

import (
	"net/url"
	"strings"
)

// # Video Platform Hosts

// The video platform serves the same embed player from two host variants.
// Authors copy-paste URLs from both UI surfaces, so the "player" variant is
// rewritten to the canonical "iframe" variant on every load.
const (
	embedHostCanonical = "iframe.mediadelivery.net"
	embedHostPlayer    = "player.mediadelivery.net"
)

// # Legacy Shapes

// RawLesson is the loosely-typed lesson record as it arrives from storage or
// the remote sheet. Older records expressed video identity as a
// (videoId, libraryId) pair instead of a single direct-play URL.
type RawLesson struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Duration      string `json:"duration,omitempty"`
	RequiredLevel string `json:"requiredLevel,omitempty"`
	DirectPlayURL string `json:"directPlayUrl,omitempty"`

	// Legacy video identity. Migrated into DirectPlayURL on load and never
	// round-tripped back out.
	VideoID   string `json:"videoId,omitempty"`
	LibraryID string `json:"libraryId,omitempty"`
}

// RawChapter is the loosely-typed chapter record at the deserialization
// boundary.
type RawChapter struct {
	ID      string      `json:"id"`
	Title   string      `json:"title"`
	Lessons []RawLesson `json:"lessons"`
}

// # Normalization

// NormalizeChapters converts loosely-typed chapter records into the strict
// canonical [Tree].
//
// This is the single point where legacy records are upgraded. It never
// fails: missing optional fields default (duration to "", requiredLevel to
// free) and unparseable URLs pass through untouched, favouring a
// renderable-but-incomplete lesson over a rejected one.
//
// Normalization is idempotent: applying it to already-canonical input is a
// no-op.
func NormalizeChapters(raw []RawChapter) Tree {
	if len(raw) == 0 {
		return Tree{}
	}

	tree := make(Tree, 0, len(raw))
	for _, rawChapter := range raw {
		chapter := Chapter{
			ID:      rawChapter.ID,
			Title:   rawChapter.Title,
			Lessons: make([]Lesson, 0, len(rawChapter.Lessons)),
		}

		for _, rawLesson := range rawChapter.Lessons {
			chapter.Lessons = append(chapter.Lessons, normalizeLesson(rawLesson))
		}

		tree = append(tree, chapter)
	}

	return tree
}

// Raw converts a canonical tree back into the loose wire shape used by
// storage and the sheet bridge. Legacy fields are left empty — migration is
// one-directional.
func (t Tree) Raw() []RawChapter {
	raw := make([]RawChapter, 0, len(t))
	for _, chapter := range t {
		rawChapter := RawChapter{
			ID:      chapter.ID,
			Title:   chapter.Title,
			Lessons: make([]RawLesson, 0, len(chapter.Lessons)),
		}
		for _, lesson := range chapter.Lessons {
			rawChapter.Lessons = append(rawChapter.Lessons, RawLesson{
				ID:            lesson.ID,
				Title:         lesson.Title,
				Duration:      lesson.Duration,
				RequiredLevel: string(lesson.RequiredLevel),
				DirectPlayURL: lesson.DirectPlayURL,
			})
		}
		raw = append(raw, rawChapter)
	}
	return raw
}

// normalizeLesson maps a single loose record to the canonical [Lesson].
func normalizeLesson(raw RawLesson) Lesson {
	return Lesson{
		ID:            raw.ID,
		Title:         raw.Title,
		Duration:      raw.Duration,
		RequiredLevel: ParseAccessLevel(raw.RequiredLevel),
		DirectPlayURL: resolvePlayURL(raw),
	}
}

// resolvePlayURL resolves a lesson's playable URL.
//
// Precedence: an explicit directPlayUrl wins; otherwise a legacy
// (videoId, libraryId) pair is synthesized into an embed URL; otherwise the
// lesson has no video and the URL is empty. The result always passes through
// host normalization.
func resolvePlayURL(raw RawLesson) string {
	if raw.DirectPlayURL != "" {
		return NormalizeHost(raw.DirectPlayURL)
	}

	if raw.VideoID != "" && raw.LibraryID != "" {
		return "https://" + embedHostCanonical + "/embed/" + raw.LibraryID + "/" + raw.VideoID
	}

	return ""
}

// NormalizeHost rewrites the "player" embed-host variant to the canonical
// "iframe" variant, preserving path and query. Any URL that does not match
// the player host — including unparseable input — passes through unchanged.
func NormalizeHost(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	if !strings.EqualFold(parsed.Host, embedHostPlayer) {
		return rawURL
	}

	parsed.Host = embedHostCanonical
	return parsed.String()
}

// IsEmbedURL classifies a playback URL as an embeddable player page versus a
// direct media file.
//
// The classification only chooses the playback surface (iframe versus native
// media element); it carries no other behavioural contract. A URL counts as
// an embed when it points at a known video-platform embed host with an
// /embed/ or /play/ path.
func IsEmbedURL(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	host := strings.ToLower(parsed.Host)
	if host != embedHostCanonical && host != embedHostPlayer {
		return false
	}

	path := parsed.EscapedPath()
	return strings.HasPrefix(path, "/embed/") || strings.HasPrefix(path, "/play/")
}
