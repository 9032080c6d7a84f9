package domain

import (
	"testing"
	"time"
)

func scrobble(artist, title string) Scrobble {
	return Scrobble{
		Track:    TrackID{Artist: artist, Title: title},
		PlayedAt: time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC),
	}
}

func TestAggregateEmpty(t *testing.T) {
	stats := Aggregate(nil, 5)
	if stats.TotalPlays != 0 {
		t.Errorf("expected 0 total plays, got %d", stats.TotalPlays)
	}
	if stats.UniqueTracks != 0 {
		t.Errorf("expected 0 unique tracks, got %d", stats.UniqueTracks)
	}
	if len(stats.TopTracks) != 0 {
		t.Errorf("expected empty top tracks, got %d", len(stats.TopTracks))
	}
}

func TestAggregateRanksByPlayCount(t *testing.T) {
	scrobbles := []Scrobble{
		scrobble("Radiohead", "Paranoid Android"),
		scrobble("Radiohead", "Paranoid Android"),
		scrobble("Radiohead", "Paranoid Android"),
		scrobble("Pink Floyd", "Shine On You Crazy Diamond"),
		scrobble("Pink Floyd", "Shine On You Crazy Diamond"),
		scrobble("The Beatles", "A Day in the Life"),
	}

	stats := Aggregate(scrobbles, 5)

	if stats.TotalPlays != 6 {
		t.Errorf("expected 6 total plays, got %d", stats.TotalPlays)
	}
	if stats.UniqueTracks != 3 {
		t.Errorf("expected 3 unique tracks, got %d", stats.UniqueTracks)
	}
	if len(stats.TopTracks) != 3 {
		t.Fatalf("expected 3 top tracks, got %d", len(stats.TopTracks))
	}

	want := []Track{
		{ID: TrackID{Artist: "Radiohead", Title: "Paranoid Android"}, PlayCount: 3},
		{ID: TrackID{Artist: "Pink Floyd", Title: "Shine On You Crazy Diamond"}, PlayCount: 2},
		{ID: TrackID{Artist: "The Beatles", Title: "A Day in the Life"}, PlayCount: 1},
	}
	for i, w := range want {
		if stats.TopTracks[i] != w {
			t.Errorf("track %d: expected %+v, got %+v", i, w, stats.TopTracks[i])
		}
	}
}

func TestAggregateTruncationPreservesTotals(t *testing.T) {
	scrobbles := []Scrobble{
		scrobble("A", "One"),
		scrobble("B", "Two"),
		scrobble("C", "Three"),
		scrobble("C", "Three"),
	}

	stats := Aggregate(scrobbles, 1)

	if len(stats.TopTracks) != 1 {
		t.Fatalf("expected 1 top track, got %d", len(stats.TopTracks))
	}
	if stats.TopTracks[0].ID.Artist != "C" {
		t.Errorf("expected C ranked first, got %q", stats.TopTracks[0].ID.Artist)
	}
	if stats.TotalPlays != 4 {
		t.Errorf("expected totals over full set, got %d", stats.TotalPlays)
	}
	if stats.UniqueTracks != 3 {
		t.Errorf("expected 3 unique tracks, got %d", stats.UniqueTracks)
	}
}

func TestAggregateIdentityIsExact(t *testing.T) {
	scrobbles := []Scrobble{
		scrobble("Artist", "Song"),
		scrobble("artist", "Song"),
		scrobble("Artist", "Song "),
		scrobble("Artist", "Song"),
	}

	stats := Aggregate(scrobbles, 10)

	if stats.UniqueTracks != 3 {
		t.Errorf("case and whitespace variants must be distinct, got %d groups", stats.UniqueTracks)
	}
	if stats.TopTracks[0].PlayCount != 2 {
		t.Errorf("expected exact-match pair counted together, got %d", stats.TopTracks[0].PlayCount)
	}
}

func TestAggregateSameTitleDifferentArtists(t *testing.T) {
	scrobbles := []Scrobble{
		scrobble("Artist A", "Same Title"),
		scrobble("Artist B", "Same Title"),
	}

	stats := Aggregate(scrobbles, 10)
	if stats.UniqueTracks != 2 {
		t.Errorf("expected 2 unique tracks, got %d", stats.UniqueTracks)
	}
}

func TestAggregateTieBreakIsLexicographic(t *testing.T) {
	scrobbles := []Scrobble{
		scrobble("Zebra", "Alpha"),
		scrobble("Apple", "Beta"),
		scrobble("Apple", "Alpha"),
	}

	stats := Aggregate(scrobbles, 10)

	got := []TrackID{
		{Artist: "Apple", Title: "Alpha"},
		{Artist: "Apple", Title: "Beta"},
		{Artist: "Zebra", Title: "Alpha"},
	}
	for i, want := range got {
		if stats.TopTracks[i].ID != want {
			t.Errorf("position %d: expected %+v, got %+v", i, want, stats.TopTracks[i].ID)
		}
	}
}

func TestAggregateTopNLargerThanUnique(t *testing.T) {
	stats := Aggregate([]Scrobble{scrobble("A", "B")}, 100)
	if len(stats.TopTracks) != 1 {
		t.Errorf("expected 1 track, got %d", len(stats.TopTracks))
	}
}
