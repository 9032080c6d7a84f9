// Package domain holds the canonical data model for the pipeline:
// play events (scrobbles), track identity, and aggregated statistics.
package domain

import (
	"sort"
	"time"
)

// TrackID identifies a track by exact (artist, title) string identity.
// Matching is byte-for-byte: case, whitespace, and unicode form all
// distinguish tracks. This is deliberate, not a missing normalization.
type TrackID struct {
	Artist string
	Title  string
}

// Scrobble is a single recorded play event. Immutable once constructed.
type Scrobble struct {
	Track    TrackID
	PlayedAt time.Time
}

// Track is a track together with its play count over one run.
type Track struct {
	ID        TrackID
	PlayCount int
}

// Statistics is the result of aggregating one run's scrobbles.
// TotalPlays and UniqueTracks are computed over the full deduplicated
// set; truncating TopTracks to N never distorts them.
type Statistics struct {
	TopTracks    []Track
	TotalPlays   int
	UniqueTracks int
}

// Aggregate groups scrobbles by exact TrackID, counts plays, and ranks
// by count descending. Ties break lexicographically on artist then
// title so output is deterministic across runs.
func Aggregate(scrobbles []Scrobble, topN int) Statistics {
	counts := make(map[TrackID]int, len(scrobbles))
	for _, s := range scrobbles {
		counts[s.Track]++
	}

	tracks := make([]Track, 0, len(counts))
	for id, n := range counts {
		tracks = append(tracks, Track{ID: id, PlayCount: n})
	}

	sort.Slice(tracks, func(i, j int) bool {
		if tracks[i].PlayCount != tracks[j].PlayCount {
			return tracks[i].PlayCount > tracks[j].PlayCount
		}
		if tracks[i].ID.Artist != tracks[j].ID.Artist {
			return tracks[i].ID.Artist < tracks[j].ID.Artist
		}
		return tracks[i].ID.Title < tracks[j].ID.Title
	})

	unique := len(tracks)
	if topN >= 0 && len(tracks) > topN {
		tracks = tracks[:topN]
	}

	return Statistics{
		TopTracks:    tracks,
		TotalPlays:   len(scrobbles),
		UniqueTracks: unique,
	}
}
