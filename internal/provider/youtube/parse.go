package youtube

import (
	"time"

	"github.com/tidwall/gjson"
)

// gjson paths into the history payload. The shape is
// page -> tab -> section list -> shelves -> line items.
const (
	shelvesPath    = "contents.singleColumnBrowseResultsRenderer.tabs.0.tabRenderer.content.sectionListRenderer.contents"
	shelfLabelPath = "title.runs.0.text"
	runsPath       = "musicResponsiveListItemFlexColumnRenderer.text.runs"
	artistPagePath = "navigationEndpoint.browseEndpoint.browseEndpointContextSupportedConfigs.browseEndpointContextMusicConfig.pageType"

	artistPageType = "MUSIC_PAGE_TYPE_ARTIST"
	unknownArtist  = "Unknown Artist"
)

// historyItem is the transient shape produced by extraction, before an
// item becomes a domain.Scrobble.
type historyItem struct {
	title    string
	artist   string
	playedAt time.Time
}

// parseHistory walks the recovered JSON payload and returns every
// history item whose shelf heading resolved to a date. Items on shelves
// with unrecognized headings are silently excluded.
func parseHistory(payload string, now time.Time) ([]historyItem, error) {
	if !gjson.Valid(payload) {
		return nil, &ScrapeError{Detail: "embedded payload is not valid JSON"}
	}

	shelves := gjson.Get(payload, shelvesPath)
	if !shelves.Exists() || !shelves.IsArray() {
		return nil, &ScrapeError{Detail: "missing expected path " + shelvesPath}
	}

	var items []historyItem
	for _, shelf := range shelves.Array() {
		renderer := shelf.Get("musicShelfRenderer")
		if !renderer.Exists() {
			continue
		}

		label := renderer.Get(shelfLabelPath).String()
		playedAt, ok := resolveShelfDate(label, now)
		if !ok {
			continue
		}

		for _, entry := range renderer.Get("contents").Array() {
			listItem := entry.Get("musicResponsiveListItemRenderer")
			if !listItem.Exists() {
				continue
			}
			if item, ok := parseListItem(listItem, playedAt); ok {
				items = append(items, item)
			}
		}
	}

	return items, nil
}

// parseListItem scans an item's flexible text columns for the two
// role-tagged runs: the watch target (title) and the artist-page target
// (artist). An item without a title is dropped; a missing artist
// defaults to a sentinel instead.
func parseListItem(listItem gjson.Result, playedAt time.Time) (historyItem, bool) {
	var title, artist string

	for _, column := range listItem.Get("flexColumns").Array() {
		for _, run := range column.Get(runsPath).Array() {
			endpoint := run.Get("navigationEndpoint")
			if !endpoint.Exists() {
				continue
			}
			if endpoint.Get("watchEndpoint").Exists() {
				title = run.Get("text").String()
			} else if run.Get(artistPagePath).String() == artistPageType {
				artist = run.Get("text").String()
			}
		}
	}

	if title == "" {
		return historyItem{}, false
	}
	if artist == "" {
		artist = unknownArtist
	}

	return historyItem{title: title, artist: artist, playedAt: playedAt}, true
}
