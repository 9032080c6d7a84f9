package lastfm

import (
	"strconv"
	"time"

	"github.com/totallynotdavid/music-stats/internal/domain"
)

// Wire types mirroring the user.getrecenttracks JSON response.

type apiResponse struct {
	RecentTracks recentTracks `json:"recenttracks"`
}

type recentTracks struct {
	Track []apiTrack `json:"track"`
	Attr  *pageAttr  `json:"@attr"`
}

type pageAttr struct {
	TotalPages string `json:"totalPages"`
}

type apiTrack struct {
	Name   string     `json:"name"`
	Artist artistInfo `json:"artist"`
	Date   *dateInfo  `json:"date"`
}

type artistInfo struct {
	Text string `json:"#text"`
}

type dateInfo struct {
	UTS string `json:"uts"`
}

// totalPages parses the declared page count, defaulting to 1 when the
// attribute is absent or malformed.
func (r recentTracks) totalPages() int {
	if r.Attr == nil {
		return 1
	}
	n, err := strconv.Atoi(r.Attr.TotalPages)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// toScrobble converts an API track to a Scrobble. Tracks without a
// timestamp (the "now playing" entry) or with an unparseable one are
// dropped: a played-at time is mandatory.
func (t apiTrack) toScrobble() (domain.Scrobble, bool) {
	if t.Date == nil {
		return domain.Scrobble{}, false
	}
	uts, err := strconv.ParseInt(t.Date.UTS, 10, 64)
	if err != nil {
		return domain.Scrobble{}, false
	}
	return domain.Scrobble{
		Track:    domain.TrackID{Artist: t.Artist.Text, Title: t.Name},
		PlayedAt: time.Unix(uts, 0).UTC(),
	}, true
}
