// Package imagepath normalizes stored image references into servable URL
// paths. Stored values accumulated in several shapes over time (absolute
// URLs, rooted paths, data URIs, bare filenames, paths under a public/
// build directory) and every read path funnels through Normalize.
package imagepath

import "strings"

// Normalize converts a raw stored image value into a servable path. An
// empty result means the value cannot be served. The function is
// idempotent: normalizing an already normalized path returns it unchanged.
func Normalize(raw string) string {
	path := strings.TrimSpace(raw)
	if path == "" {
		return ""
	}

	switch {
	case strings.HasPrefix(path, "http"):
		return path
	case strings.HasPrefix(path, "/public/"):
		return "/" + strings.TrimPrefix(path, "/public/")
	case strings.HasPrefix(path, "public/"):
		return "/" + strings.TrimPrefix(path, "public/")
	case strings.HasPrefix(path, "/"), strings.HasPrefix(path, "data:"):
		return path
	default:
		return "/" + path
	}
}

// Servable reports whether a normalized path can be handed to a client.
// Only absolute URLs, rooted paths and data URIs qualify.
func Servable(path string) bool {
	return strings.HasPrefix(path, "http") ||
		strings.HasPrefix(path, "/") ||
		strings.HasPrefix(path, "data:")
}
