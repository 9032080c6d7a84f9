// Package report renders aggregated statistics as the fixed-width
// text block published to the gist.
package report

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/totallynotdavid/music-stats/internal/domain"
)

const (
	maxTitleWidth  = 35
	maxArtistWidth = 25
	alignColumn    = 40

	emptyMessage = "No tracks played recently"
)

// Render formats the top tracks, one per line: title truncated to 35
// display cells, artist aligned at column 40 and truncated to 25, with
// a play-count suffix for repeated plays. Widths are display widths so
// CJK titles align the same as ASCII ones.
func Render(stats domain.Statistics) string {
	if len(stats.TopTracks) == 0 {
		return emptyMessage
	}

	lines := make([]string, 0, len(stats.TopTracks))
	for _, track := range stats.TopTracks {
		lines = append(lines, formatLine(track))
	}
	return strings.Join(lines, "\n")
}

func formatLine(track domain.Track) string {
	title := runewidth.Truncate(track.ID.Title, maxTitleWidth, "…")
	artist := runewidth.Truncate(track.ID.Artist, maxArtistWidth, "…")

	padding := alignColumn - runewidth.StringWidth(title)
	if padding < 0 {
		padding = 0
	}

	suffix := ""
	if track.PlayCount > 1 {
		suffix = fmt.Sprintf(" (%d×)", track.PlayCount)
	}

	return title + strings.Repeat(" ", padding) + artist + suffix
}
