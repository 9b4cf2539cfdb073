package myblog

import (
	"net/url"
	"strings"

	"alfredhub/config"
)

// NormalizeURL canonicalizes an article URL for use as the dedup key:
// the fragment and known tracking query parameters are stripped.
// Unparseable input is returned as-is so it still keys consistently.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	u.Fragment = ""
	q := u.Query()
	for _, p := range config.TrackingParams {
		q.Del(p)
	}
	u.RawQuery = q.Encode()
	return u.String()
}
