package youtube

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"time"
)

const origin = "https://music.youtube.com"

var (
	sapisidPattern    = regexp.MustCompile(`__Secure-3PAPISID=([^;]+)`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// extractSAPISID pulls the secure session identifier out of the raw
// cookie string.
func extractSAPISID(cookie string) (string, error) {
	m := sapisidPattern.FindStringSubmatch(cookie)
	if m == nil {
		return "", &AuthError{Reason: "cookie missing __Secure-3PAPISID"}
	}
	return m[1], nil
}

// authHeader builds the SAPISIDHASH authorization value:
// "SAPISIDHASH {ts}_{sha1("{ts} {sapisid} {origin}")}".
func authHeader(sapisid string, now time.Time) string {
	ts := now.Unix()
	sum := sha1.Sum([]byte(fmt.Sprintf("%d %s %s", ts, sapisid, origin)))
	return fmt.Sprintf("SAPISIDHASH %d_%s", ts, hex.EncodeToString(sum[:]))
}

// sanitizeCookie strips runes outside the single-byte range, collapses
// whitespace runs, trims, and appends the consent cookie the server
// requires when it is not already present.
func sanitizeCookie(cookie string) string {
	var b strings.Builder
	b.Grow(len(cookie))
	for _, r := range cookie {
		if r >= 0x100 && r <= 0xFFFF {
			continue
		}
		b.WriteRune(r)
	}

	sanitized := strings.TrimSpace(whitespacePattern.ReplaceAllString(b.String(), " "))

	if !strings.Contains(sanitized, "SOCS=") {
		sanitized += "; SOCS=CAI"
	}
	return sanitized
}
