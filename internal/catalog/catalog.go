package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/frippertronics/record-roll/internal/model"
	"go.uber.org/zap"
)

// ErrEmptyCatalog is returned when a catalog holds no usable rows.
var ErrEmptyCatalog = errors.New("catalog has no valid records")

// Options control how a catalog file is read.
type Options struct {
	// HasHeader drops the first successfully parsed row.
	HasHeader bool

	// Logger receives one warning per skipped row. Nil disables logging.
	Logger *zap.Logger

	// OnSkip, if set, is called for every skipped row with its line number.
	OnSkip func(line int, err error)
}

// Catalog is the in-memory list of records read from a catalog file.
type Catalog struct {
	Path    string
	Records []model.Record

	// Skipped counts rows that failed to parse or were too short.
	Skipped int
}

// Len returns the number of usable records.
func (c *Catalog) Len() int {
	return len(c.Records)
}

// Load reads a whole catalog file into memory.
//
// Malformed rows and rows too short to carry a release id are skipped and
// logged; they never abort the scan. Failing to open or read the file is
// an error, as is a file with no usable rows.
func Load(path string, opts Options) (*Catalog, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer file.Close()

	cat, err := Read(file, opts)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	cat.Path = path
	return cat, nil
}

// Read parses catalog rows from r. See Load.
func Read(r io.Reader, opts Options) (*Catalog, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	cat := &Catalog{}
	headerPending := opts.HasHeader
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if !errors.As(err, &parseErr) {
				return nil, err
			}
			// A broken header is still the header.
			if headerPending {
				headerPending = false
				log.Warn("Skipping invalid header line", zap.Int("line", parseErr.Line), zap.Error(err))
				continue
			}
			cat.skip(opts, log, parseErr.Line, err)
			continue
		}

		if headerPending {
			headerPending = false
			continue
		}

		rec, err := model.NewRecord(fields)
		if err != nil {
			line, _ := reader.FieldPos(0)
			cat.skip(opts, log, line, err)
			continue
		}
		cat.Records = append(cat.Records, rec)
	}

	if len(cat.Records) == 0 {
		return nil, ErrEmptyCatalog
	}
	return cat, nil
}

func (c *Catalog) skip(opts Options, log *zap.Logger, line int, err error) {
	c.Skipped++
	log.Warn("Skipping invalid line!", zap.Int("line", line), zap.Error(err))
	if opts.OnSkip != nil {
		opts.OnSkip(line, err)
	}
}
