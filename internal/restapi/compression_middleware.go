package restapi

import (
	"net/http"

	"github.com/klauspost/compress/gzhttp"
)

// CompressionConfig holds configuration options for response compression
type CompressionConfig struct {
	// MinSize is the smallest response body, in bytes, that gets compressed.
	MinSize int
	// Level is the gzip level, 1 to 9.
	Level int
	// ContentTypes restricts compression to these types. Empty means gzhttp's defaults.
	ContentTypes []string
}

// DefaultCompressionConfig compresses JSON and HTML bodies of 1KB or more.
// The records and page views are the large ones.
func DefaultCompressionConfig() CompressionConfig {
	return CompressionConfig{
		MinSize:      1024,
		Level:        6,
		ContentTypes: []string{"application/json", "text/html"},
	}
}

// NewCompressionMiddleware creates a compression middleware with the given configuration
func NewCompressionMiddleware(config CompressionConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		contentTypes := gzhttp.ContentTypeFilter(gzhttp.DefaultContentTypeFilter)
		if len(config.ContentTypes) > 0 {
			contentTypes = gzhttp.ContentTypes(config.ContentTypes)
		}
		wrapper, err := gzhttp.NewWrapper(
			gzhttp.MinSize(config.MinSize),
			gzhttp.CompressionLevel(config.Level),
			contentTypes,
		)
		if err != nil {
			// Fallback to default if configuration fails
			return gzhttp.GzipHandler(next)
		}
		return wrapper(next)
	}
}

// CompressionMiddleware applies gzip compression with default settings
func CompressionMiddleware(next http.Handler) http.Handler {
	config := DefaultCompressionConfig()
	return NewCompressionMiddleware(config)(next)
}
