package storage

import (
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// maxNameAttempts bounds the retries when a generated name already exists.
const maxNameAttempts = 5

var extPattern = regexp.MustCompile(`^\.[A-Za-z0-9]{1,10}$`)

// newObjectKey builds "<unix-ms>-<n><ext>" where ext is the extension of the
// uploaded file name, dropped if it looks unsafe.
func newObjectKey(now time.Time, n int, originalName string) string {
	ext := filepath.Ext(filepath.Base(strings.ReplaceAll(originalName, `\`, "/")))
	if !extPattern.MatchString(ext) {
		ext = ""
	}
	return fmt.Sprintf("%d-%d%s", now.UnixMilli(), n, ext)
}

func randomSuffix() int {
	return rand.IntN(1_000_000_000)
}

// validKey reports whether ref is a plain generated name: no separators,
// no traversal, no hidden files.
func validKey(ref string) bool {
	if ref == "" || strings.HasPrefix(ref, ".") {
		return false
	}
	return !strings.ContainsAny(ref, "/\\\x00")
}
