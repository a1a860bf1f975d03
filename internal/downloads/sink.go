// Package downloads delivers generated files (receipts, exports) to their
// destination. It replaces the browser download of the original site.
package downloads

import (
	"context"
	"path"
	"strings"
)

const (
	ContentTypePDF = "application/pdf"
	ContentTypeCSV = "text/csv;charset=utf-8;"
)

// Object describes one delivered file.
type Object struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Location    string `json:"location"`
	Size        int    `json:"size"`
}

// Sink receives a finished file. Implementations must not leave a partial
// object behind when they return an error.
type Sink interface {
	Deliver(ctx context.Context, filename, contentType string, data []byte) (*Object, error)
	// Remove withdraws an object this sink delivered.
	Remove(ctx context.Context, obj *Object) error
}

// SafeFilename strips directory components and path separators so a
// user-supplied name can never escape the sink's root.
func SafeFilename(name string) string {
	name = strings.NewReplacer("/", "_", "\\", "_").Replace(name)
	name = path.Base(name)
	if name == "." || name == ".." || name == "" {
		return "download"
	}
	return name
}
