package artwork

import (
	"fmt"

	ioutils "github.com/frippertronics/record-roll/internal/io"
	"github.com/frippertronics/record-roll/internal/model"
)

// Saver writes covers to disk at a path derived from the record.
type Saver struct {
	cfg *model.CoverConfig
}

// NewSaver creates a Saver.
func NewSaver(cfg *model.CoverConfig) *Saver {
	return &Saver{cfg: cfg}
}

// Save writes the artwork bytes as served and returns the file path.
// An existing file at that path is replaced.
func (s *Saver) Save(rec model.Record, art *model.Artwork) (string, error) {
	if art == nil || len(art.Data) == 0 {
		return "", fmt.Errorf("no artwork to save")
	}
	path := rec.CoverPath(s.cfg, ".jpg")
	if err := ioutils.WriteFile(path, art.Data); err != nil {
		return "", fmt.Errorf("save cover: %w", err)
	}
	return path, nil
}
