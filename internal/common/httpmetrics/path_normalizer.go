package httpmetrics

import "regexp"

var uuidRegex = regexp.MustCompile(`[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`)

// NormalizePath collapses resource ids so metric label cardinality stays
// bounded: /items/3f1a... becomes /items/{id}.
func NormalizePath(path string) string {
	if path == "" {
		return "/"
	}
	return uuidRegex.ReplaceAllString(path, "{id}")
}
