package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// ObjectStorage stores uploaded files and returns a public reference to them
type ObjectStorage interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// ObjectKey builds the user-namespaced key of an upload: "<userID>/<unixMillis><.ext>".
// The extension is taken from fileName and dropped when it has none.
func ObjectKey(userID uint, fileName string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	if ext == "." {
		ext = ""
	}
	return fmt.Sprintf("%d/%d%s", userID, now.UnixMilli(), ext)
}
