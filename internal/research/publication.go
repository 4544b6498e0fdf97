package research

import (
	"net/url"
	"strings"
	"unicode"
)

// PublicationFromURL derives a display name from a URL's host, e.g.
// "https://www.techcrunch.com/2026/..." becomes "Techcrunch".
func PublicationFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return "Unknown"
	}

	host := strings.ToLower(parsed.Host)
	if h, _, ok := strings.Cut(host, ":"); ok {
		host = h
	}
	host = strings.TrimPrefix(host, "www.")
	host = strings.TrimPrefix(host, "m.")

	name := host
	if parts := strings.Split(host, "."); len(parts) >= 2 {
		name = parts[len(parts)-2]
	}
	return titleCase(name)
}

func titleCase(s string) string {
	if s == "" {
		return "Unknown"
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
