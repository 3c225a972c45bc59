// Package videoid derives the stable 11-character YouTube video id from
// the link formats users paste in. The id doubles as the record id in
// the collection, so re-adding the same video resolves to the same key
// no matter which link form it arrived in.
package videoid

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
)

// ErrNoVideoID is returned when no video identifier can be extracted
// from the given reference.
var ErrNoVideoID = errors.New("no video id in reference")

var idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// Extract returns the video id embedded in raw. Accepted forms:
//
//	dQw4w9WgXcQ                                  (bare id)
//	https://www.youtube.com/watch?v=dQw4w9WgXcQ  (canonical)
//	https://youtu.be/dQw4w9WgXcQ                 (short)
//	https://www.youtube.com/embed/dQw4w9WgXcQ    (embed)
//	https://www.youtube.com/shorts/dQw4w9WgXcQ   (shorts)
//
// The scheme is optional and extra query parameters are ignored.
func Extract(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrNoVideoID
	}

	if idPattern.MatchString(raw) {
		return raw, nil
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", ErrNoVideoID
	}

	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")
	host = strings.TrimPrefix(host, "m.")

	var candidate string
	switch host {
	case "youtu.be":
		candidate = firstPathSegment(u.Path)
	case "youtube.com", "youtube-nocookie.com", "music.youtube.com":
		segments := strings.Split(strings.Trim(u.Path, "/"), "/")
		switch segments[0] {
		case "watch":
			candidate = u.Query().Get("v")
		case "embed", "shorts", "live", "v":
			if len(segments) > 1 {
				candidate = segments[1]
			}
		}
	default:
		return "", ErrNoVideoID
	}

	if !idPattern.MatchString(candidate) {
		return "", ErrNoVideoID
	}
	return candidate, nil
}

func firstPathSegment(path string) string {
	trimmed := strings.Trim(path, "/")
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		return trimmed[:i]
	}
	return trimmed
}

// WatchURL returns the canonical long-form link for a video id.
func WatchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}
