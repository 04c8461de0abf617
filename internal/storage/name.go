package storage

import (
	"path/filepath"
	"strings"

	"github.com/oklog/ulid/v2"
)

// NewName derives a collision-free file name from the upload's original
// name: a ULID followed by the lowercased extension.
func NewName(suggested string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(suggested)))
	if len(ext) > 10 || strings.ContainsAny(ext, `/\ `) {
		ext = ""
	}
	return strings.ToLower(ulid.Make().String()) + ext
}
