// Copyright (c) 2026 Coursia. All rights reserved.
// Author: lam.vothanh.dev@gmail.com

package content_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lamvothanh/coursia/internal/content"
)

/*
TestParseAccessLevel verifies that unknown and empty tier strings degrade to
the free tier instead of failing.
*/
func TestParseAccessLevel(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want content.AccessLevel
	}{
		{"free", "free", content.LevelFree},
		{"premium", "premium", content.LevelPremium},
		{"vip", "vip", content.LevelVIP},
		{"empty_defaults_to_free", "", content.LevelFree},
		{"unknown_defaults_to_free", "platinum", content.LevelFree},
		{"case_sensitive", "VIP", content.LevelFree},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, content.ParseAccessLevel(tt.raw))
		})
	}
}

/*
TestAccessLevel_Allows checks the tier total order: free < premium < vip.
*/
func TestAccessLevel_Allows(t *testing.T) {
	tests := []struct {
		name     string
		viewer   content.AccessLevel
		required content.AccessLevel
		allowed  bool
	}{
		{"free_views_free", content.LevelFree, content.LevelFree, true},
		{"free_blocked_from_premium", content.LevelFree, content.LevelPremium, false},
		{"free_blocked_from_vip", content.LevelFree, content.LevelVIP, false},
		{"premium_views_free", content.LevelPremium, content.LevelFree, true},
		{"premium_views_premium", content.LevelPremium, content.LevelPremium, true},
		{"premium_blocked_from_vip", content.LevelPremium, content.LevelVIP, false},
		{"vip_views_everything", content.LevelVIP, content.LevelVIP, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.viewer.Allows(tt.required))
		})
	}
}

/*
TestNormalizeChapters_LegacyVideoPair verifies that a legacy
(videoId, libraryId) pair is synthesized into a canonical embed URL.
*/
func TestNormalizeChapters_LegacyVideoPair(t *testing.T) {
	raw := []content.RawChapter{
		{
			ID:    "ch-1",
			Title: "Basics",
			Lessons: []content.RawLesson{
				{ID: "ls-1", Title: "Intro", VideoID: "vid-9", LibraryID: "lib-3"},
			},
		},
	}

	tree := content.NormalizeChapters(raw)
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Lessons, 1)

	lesson := tree[0].Lessons[0]
	assert.Equal(t, "https://iframe.mediadelivery.net/embed/lib-3/vid-9", lesson.DirectPlayURL)
	assert.True(t, lesson.IsPlayable())
}

/*
TestNormalizeChapters_DirectURLWins verifies precedence: an explicit
directPlayUrl beats the legacy pair when both are present.
*/
func TestNormalizeChapters_DirectURLWins(t *testing.T) {
	raw := []content.RawChapter{
		{
			ID: "ch-1",
			Lessons: []content.RawLesson{
				{
					ID:            "ls-1",
					Title:         "Intro",
					DirectPlayURL: "https://cdn.example.com/media/intro.mp4",
					VideoID:       "vid-9",
					LibraryID:     "lib-3",
				},
			},
		},
	}

	tree := content.NormalizeChapters(raw)
	assert.Equal(t, "https://cdn.example.com/media/intro.mp4", tree[0].Lessons[0].DirectPlayURL)
}

/*
TestNormalizeChapters_Defaults verifies that missing optional fields default
instead of rejecting the record.
*/
func TestNormalizeChapters_Defaults(t *testing.T) {
	raw := []content.RawChapter{
		{
			ID: "ch-1",
			Lessons: []content.RawLesson{
				{ID: "ls-1", Title: "No video yet"},
			},
		},
	}

	tree := content.NormalizeChapters(raw)
	lesson := tree[0].Lessons[0]

	assert.Equal(t, "", lesson.Duration)
	assert.Equal(t, content.LevelFree, lesson.RequiredLevel)
	assert.Equal(t, "", lesson.DirectPlayURL)
	assert.False(t, lesson.IsPlayable())
}

/*
TestNormalizeChapters_Idempotent verifies that normalizing already-canonical
input is a no-op round trip.
*/
func TestNormalizeChapters_Idempotent(t *testing.T) {
	tree := content.Tree{
		{
			ID:    "ch-1",
			Title: "Basics",
			Lessons: []content.Lesson{
				{
					ID:            "ls-1",
					Title:         "Intro",
					Duration:      "05:30",
					RequiredLevel: content.LevelPremium,
					DirectPlayURL: "https://iframe.mediadelivery.net/embed/lib-3/vid-9",
				},
			},
		},
	}

	again := content.NormalizeChapters(tree.Raw())
	assert.Equal(t, tree, again)
}

/*
TestNormalizeChapters_Empty verifies that nil and empty input both yield a
usable empty tree.
*/
func TestNormalizeChapters_Empty(t *testing.T) {
	assert.Empty(t, content.NormalizeChapters(nil))
	assert.Empty(t, content.NormalizeChapters([]content.RawChapter{}))
}

/*
TestNormalizeHost verifies the player-to-iframe embed host rewrite.
*/
func TestNormalizeHost(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"player_host_rewritten",
			"https://player.mediadelivery.net/embed/lib-3/vid-9?autoplay=true",
			"https://iframe.mediadelivery.net/embed/lib-3/vid-9?autoplay=true",
		},
		{
			"canonical_host_untouched",
			"https://iframe.mediadelivery.net/embed/lib-3/vid-9",
			"https://iframe.mediadelivery.net/embed/lib-3/vid-9",
		},
		{
			"foreign_host_untouched",
			"https://cdn.example.com/media/intro.mp4",
			"https://cdn.example.com/media/intro.mp4",
		},
		{
			"unparseable_passes_through",
			"://not a url",
			"://not a url",
		},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, content.NormalizeHost(tt.in))
		})
	}
}

/*
TestIsEmbedURL classifies embed-player pages versus direct media files.
*/
func TestIsEmbedURL(t *testing.T) {
	tests := []struct {
		name  string
		url   string
		embed bool
	}{
		{"iframe_embed_path", "https://iframe.mediadelivery.net/embed/lib-3/vid-9", true},
		{"player_play_path", "https://player.mediadelivery.net/play/lib-3/vid-9", true},
		{"direct_media_file", "https://cdn.example.com/media/intro.mp4", false},
		{"embed_host_other_path", "https://iframe.mediadelivery.net/stats", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.embed, content.IsEmbedURL(tt.url))
		})
	}
}
