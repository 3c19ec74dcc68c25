package models

import (
	"path"
	"strings"
)

// Quality is the requested audio file extension, always starting with a dot (".mp3", ".flac").
type Quality string

// DefaultQuality is used when no extension is requested.
const DefaultQuality Quality = ".mp3"

// ParseQuality normalizes an extension so that "flac" and ".flac" both yield ".flac".
// Case is kept as given.
func ParseQuality(ext string) Quality {
	ext = strings.TrimSpace(ext)
	if ext == "" {
		return DefaultQuality
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return Quality(ext)
}

// String returns the extension including its leading dot.
func (q Quality) String() string {
	return string(q)
}

// Apply strips the extension of the last path segment of link and appends q.
// Query strings and fragments are left untouched.
func (q Quality) Apply(link string) string {
	suffix := ""
	if i := strings.IndexAny(link, "?#"); i >= 0 {
		link, suffix = link[:i], link[i:]
	}
	if ext := path.Ext(link); ext != "" {
		link = strings.TrimSuffix(link, ext)
	}
	return link + string(q) + suffix
}

// MatchesLink reports whether link mentions this extension, case-insensitively.
func (q Quality) MatchesLink(link string) bool {
	return strings.Contains(strings.ToLower(link), strings.ToLower(string(q)))
}
