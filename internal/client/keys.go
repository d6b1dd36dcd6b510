package client

import (
	"fmt"
	"regexp"
	"time"
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// sanitizeFilename collapses whitespace and anything else unsafe in a
// picked filename to underscores.
func sanitizeFilename(name string) string {
	return unsafeChars.ReplaceAllString(name, "_")
}

// coverKey derives the object key for a new game's cover.
func coverKey(filename string) string {
	return fmt.Sprintf("covers/%d_%s", time.Now().UnixMilli(), sanitizeFilename(filename))
}

// coverKeyForGame derives the key for a replacement cover on an edit.
func coverKeyForGame(gameID int64, filename string) string {
	return fmt.Sprintf("covers/%d_%d_%s", gameID, time.Now().UnixMilli(), sanitizeFilename(filename))
}

// guideImageKey derives the key for an image embedded in a guide.
func guideImageKey(gameID int64, filename string) string {
	return fmt.Sprintf("guides/%d_%d_%s", gameID, time.Now().UnixMilli(), sanitizeFilename(filename))
}
