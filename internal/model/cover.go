package model

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"
)

// CoverConfig controls where saved covers are written.
//
// Both fields support placeholders that are replaced with record values:
//   - {artist} - Artist name
//   - {album} - Album title
//   - {release} - Remote release id
//
// Example configuration:
//
//	cfg := &CoverConfig{
//	    Dir:            "/home/user/Pictures/record-roll/{artist}",
//	    FileNameFormat: "{album}",
//	}
type CoverConfig struct {
	// Dir is the directory template covers are saved into.
	Dir string

	// FileNameFormat is the file name template, without extension.
	FileNameFormat string
}

var (
	invalidChars   = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots   = regexp.MustCompile(`\.+$`)
	repeatedSpaces = regexp.MustCompile(`\s+`)
)

// CoverPath computes the local file path for a record's cover.
//
// ext is appended as-is and should include the dot. Paths are truncated to
// stay under the Windows MAX_PATH limits (248 for folders, 260 for files).
func (r Record) CoverPath(cfg *CoverConfig, ext string) string {
	dir := r.expand(cfg.Dir, true)
	if len(dir) >= 248 {
		dir = truncateUTF8(dir, 247)
	}

	format := cfg.FileNameFormat
	if strings.TrimSpace(format) == "" {
		format = "{artist} - {album}"
	}
	fileName := sanitizeFileName(r.expand(format, false))
	if fileName == "" {
		fileName = sanitizeFileName(r.ReleaseID())
	}

	path := filepath.Join(dir, fileName+ext)
	if len(path) >= 260 {
		maxLen := 259 - len(dir) - len(ext) - 1
		if maxLen > 0 && maxLen < len(fileName) {
			path = filepath.Join(dir, truncateUTF8(fileName, maxLen)+ext)
		}
	}
	return path
}

// truncateUTF8 cuts s to at most n bytes without splitting a character.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// expand substitutes placeholders. Values are sanitized individually when
// expanding a directory so that separators in the template survive.
func (r Record) expand(tmpl string, perValue bool) string {
	value := func(s string) string {
		if perValue {
			return sanitizeFileName(s)
		}
		return s
	}
	tmpl = strings.ReplaceAll(tmpl, "{artist}", value(r.Artist()))
	tmpl = strings.ReplaceAll(tmpl, "{album}", value(r.Album()))
	tmpl = strings.ReplaceAll(tmpl, "{release}", value(r.ReleaseID()))
	return tmpl
}

// sanitizeFileName removes or replaces characters that are invalid in file/folder names.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars) are replaced with underscore
//   - Trailing dots are removed (Windows limitation)
//   - Multiple whitespace is collapsed to single space
//   - Trailing whitespace is removed
//
// Example:
//
//	sanitizeFileName("Song: Part 1/2") // Returns "Song_ Part 1_2"
func sanitizeFileName(name string) string {
	name = invalidChars.ReplaceAllString(name, "_")
	name = trailingDots.ReplaceAllString(name, "")
	name = repeatedSpaces.ReplaceAllString(name, " ")
	return strings.TrimRight(name, " ")
}
