package model

import (
	"errors"
	"fmt"
	"strings"
)

// Column positions in a Discogs collection export.
const (
	ArtistIndex    = 1
	AlbumIndex     = 2
	ReleaseIDIndex = 7

	// MinFields is the narrowest row a Record can be built from.
	MinFields = ReleaseIDIndex + 1
)

// ErrShortRow is returned by NewRecord for rows without a release id column.
var ErrShortRow = errors.New("row has too few fields")

// Record is one row of the local catalog.
//
// Only three columns are interpreted (artist, album and the remote release
// id) but the full row is kept so callers can show or log it verbatim.
//
// Example:
//
//	rec, err := NewRecord([]string{"LP-1", "Can", "Tago Mago", "United Artists", "LP", "", "1971", "1234567"})
//	rec.Caption()   // "Can - Tago Mago"
//	rec.ReleaseID() // "1234567"
type Record struct {
	// Fields holds the row as read from the catalog, in column order.
	Fields []string
}

// NewRecord builds a Record from a parsed catalog row.
//
// Rows with fewer than MinFields columns are rejected with ErrShortRow.
// Fields are copied, so the caller may reuse the slice.
func NewRecord(fields []string) (Record, error) {
	if len(fields) < MinFields {
		return Record{}, fmt.Errorf("%w: got %d, need %d", ErrShortRow, len(fields), MinFields)
	}
	cp := make([]string, len(fields))
	for i, f := range fields {
		cp[i] = strings.TrimSpace(f)
	}
	return Record{Fields: cp}, nil
}

// Artist returns the artist column.
func (r Record) Artist() string { return r.field(ArtistIndex) }

// Album returns the album/title column.
func (r Record) Album() string { return r.field(AlbumIndex) }

// ReleaseID returns the remote release identifier column.
func (r Record) ReleaseID() string { return r.field(ReleaseIDIndex) }

// Caption is the display title for the record: "<artist> - <album>".
func (r Record) Caption() string {
	return r.Artist() + " - " + r.Album()
}

func (r Record) field(i int) string {
	if i >= len(r.Fields) {
		return ""
	}
	return r.Fields[i]
}
