package normalize

import (
	"net/url"
	"path"
	"strings"
)

// Default extensions for the two media kinds an export contains.
const (
	ImageExt = ".jpg"
	VideoExt = ".mp4"
)

// ExtensionFromURL derives the file extension from the path component of a
// direct-download URL, ignoring any query string. URLs whose path carries no
// extension default to ImageExt.
func ExtensionFromURL(raw string) string {
	p := raw
	if u, err := url.Parse(strings.TrimSpace(raw)); err == nil {
		p = u.Path
	} else if i := strings.IndexAny(raw, "?#"); i >= 0 {
		p = raw[:i]
	}
	ext := path.Ext(p)
	if ext == "" || ext == "." {
		return ImageExt
	}
	return ext
}
