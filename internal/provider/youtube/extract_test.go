package youtube

import (
	"errors"
	"strings"
	"testing"
)

// dataEscape encodes a JSON payload the way the page embeds it in the
// single-quoted data field: quotes and braces become \xHH sequences so
// the surrounding script contains no literal braces inside the string.
func dataEscape(payload string) string {
	r := strings.NewReplacer(
		`"`, `\x22`,
		"'", `\x27`,
		"{", `\x7b`,
		"}", `\x7d`,
	)
	return r.Replace(payload)
}

// buildHistoryHTML wraps a JSON payload in a minimal replica of the
// history page's script structure.
func buildHistoryHTML(payload string) string {
	return "<html><body><script>var initialData = [];" +
		"initialData.push({path: '\\/history', data: '" + dataEscape(payload) + "'" +
		initialDataMarker +
		"</script></body></html>"
}

func TestExtractInitialDataRoundTrip(t *testing.T) {
	payload := `{"contents":{"key":"value with spaces","nested":{"n":1}}}`

	got, err := extractInitialData(buildHistoryHTML(payload))
	if err != nil {
		t.Fatalf("extractInitialData failed: %v", err)
	}
	if got != payload {
		t.Errorf("expected payload %q, got %q", payload, got)
	}
}

func TestExtractInitialDataMissingMarker(t *testing.T) {
	_, err := extractInitialData("<html><body>nothing of interest</body></html>")

	var scrapeErr *ScrapeError
	if !errors.As(err, &scrapeErr) {
		t.Fatalf("expected *ScrapeError, got %v", err)
	}
	if !strings.Contains(scrapeErr.Detail, "marker") {
		t.Errorf("expected marker error, got %q", scrapeErr.Detail)
	}
}

func TestExtractInitialDataNoObjectBeforeMarker(t *testing.T) {
	_, err := extractInitialData(initialDataMarker)

	var scrapeErr *ScrapeError
	if !errors.As(err, &scrapeErr) {
		t.Fatalf("expected *ScrapeError, got %v", err)
	}
}

func TestExtractInitialDataMissingDataField(t *testing.T) {
	html := "<script>initialData.push({path: '\\/history'" + initialDataMarker + "</script>"

	_, err := extractInitialData(html)

	var scrapeErr *ScrapeError
	if !errors.As(err, &scrapeErr) {
		t.Fatalf("expected *ScrapeError, got %v", err)
	}
	if !strings.Contains(scrapeErr.Detail, "data field") {
		t.Errorf("expected data field error, got %q", scrapeErr.Detail)
	}
}

func TestScanBalancedObject(t *testing.T) {
	tests := []struct {
		name  string
		input string
		start int
		want  string
		ok    bool
	}{
		{
			name:  "simple",
			input: `{"a":1}`,
			start: 0,
			want:  `{"a":1}`,
			ok:    true,
		},
		{
			name:  "nested",
			input: `{"a":{"b":{"c":3}}} trailing`,
			start: 0,
			want:  `{"a":{"b":{"c":3}}}`,
			ok:    true,
		},
		{
			name:  "braces inside string literals ignored",
			input: `{"a":"}{"}`,
			start: 0,
			want:  `{"a":"}{"}`,
			ok:    true,
		},
		{
			name:  "escaped quote does not end string",
			input: `{"a":"\"}{"}`,
			start: 0,
			want:  `{"a":"\"}{"}`,
			ok:    true,
		},
		{
			name:  "unbalanced",
			input: `{"a":{"b":1}`,
			start: 0,
			ok:    false,
		},
		{
			name:  "offset start",
			input: `prefix {"x":2} suffix`,
			start: 7,
			want:  `{"x":2}`,
			ok:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := scanBalancedObject(tt.input, tt.start)
			if ok != tt.ok {
				t.Fatalf("expected ok=%v, got %v", tt.ok, ok)
			}
			if ok && got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestDecodeHexEscapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no escapes", "plain text", "plain text"},
		{"quote", `\x22quoted\x22`, `"quoted"`},
		{"braces", `\x7b\x7d`, "{}"},
		{"mixed", `a\x3db`, "a=b"},
		{"invalid hex left alone", `\xzz`, `\xzz`},
		{"truncated escape left alone", `end\x2`, `end\x2`},
		{"uppercase hex", `\x7B`, "{"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := decodeHexEscapes(tt.input); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
