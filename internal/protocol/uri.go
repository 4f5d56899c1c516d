package protocol

import (
	"net/url"
	"path/filepath"
	"strings"
)

// URIPath converts a file URI into an absolute filesystem path.
// Returns "" for URIs this server cannot serve. A bare path with no
// scheme passes through, which tolerates clients that are sloppy
// about rootUri.
func URIPath(uri string) string {
	if uri == "" {
		return ""
	}
	path := uri
	if strings.Contains(uri, "://") {
		rest, ok := strings.CutPrefix(uri, "file://")
		if !ok {
			return ""
		}
		// Drop an authority component such as localhost; the rooted
		// path starts at the next slash.
		slash := strings.IndexByte(rest, '/')
		if slash < 0 {
			return ""
		}
		path = rest[slash:]
	}
	if unescaped, err := url.PathUnescape(path); err == nil {
		path = unescaped
	}
	path = filepath.FromSlash(path)
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return path
}

// FileURI converts a filesystem path into a file URI, escaping each
// path segment on its own so separators survive as-is.
func FileURI(path string) string {
	if path == "" {
		return ""
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	segments := strings.Split(filepath.ToSlash(path), "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return "file://" + strings.Join(segments, "/")
}
