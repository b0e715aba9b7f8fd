package exchange

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/xenking/shopdesk/internal/domain/client"
)

// Policy decides what a malformed record does to an import.
type Policy int

const (
	// AllOrNothing aborts the import on the first malformed record; nothing
	// is stored.
	AllOrNothing Policy = iota
	// SkipInvalid stores the well-formed records and reports the rest.
	SkipInvalid
)

// Options tune an import.
type Options struct {
	Policy Policy
	// RequireValid treats clients failing contact validation as malformed.
	RequireValid bool
	// SkipExisting skips records whose email is already stored or appeared
	// earlier in the same file.
	SkipExisting bool
}

// record is one decoded client entry. Index counts data records from 1.
type record struct {
	Index  int
	Name   string
	Phone  string
	Email  string
	Reason string
}

// RecordError aborts an AllOrNothing import.
type RecordError struct {
	Record int
	Reason string
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %d: %s", e.Record, e.Reason)
}

// Rejection is a record left out of an import.
type Rejection struct {
	Record int
	Reason string
}

// Result summarizes an import.
type Result struct {
	Imported []*client.Client
	Skipped  []Rejection
}

// Importer creates clients from interchange files.
type Importer struct {
	repo client.Repository
	lg   *zap.Logger
	opts Options
}

// NewImporter creates an Importer writing to repo.
func NewImporter(repo client.Repository, lg *zap.Logger, opts Options) *Importer {
	return &Importer{repo: repo, lg: lg, opts: opts}
}

// ImportFile imports the file at path, detecting its format from the name.
func (im *Importer) ImportFile(ctx context.Context, path string) (*Result, error) {
	format, gz, err := Detect(path)
	if err != nil {
		return nil, err
	}
	rc, err := openFile(path, gz)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	return im.Import(ctx, rc, format)
}

// Import decodes every record first and stores the accepted clients in one
// batch, so a failure never leaves a partial import behind.
func (im *Importer) Import(ctx context.Context, r io.Reader, format Format) (*Result, error) {
	records, err := decode(r, format)
	if err != nil {
		return nil, err
	}

	existing, err := im.existingEmails(ctx, len(records))
	if err != nil {
		return nil, err
	}

	res := &Result{}
	accepted := make(map[string]struct{})
	for _, rec := range records {
		reason := im.check(rec)
		if reason != "" {
			if im.opts.Policy == AllOrNothing {
				return nil, &RecordError{Record: rec.Index, Reason: reason}
			}
			res.Skipped = append(res.Skipped, Rejection{Record: rec.Index, Reason: reason})
			continue
		}

		if existing != nil {
			if _, ok := accepted[rec.Email]; ok {
				res.Skipped = append(res.Skipped, Rejection{Record: rec.Index, Reason: "email duplicated in file"})
				continue
			}
			if existing.TestString(rec.Email) {
				dup, err := im.isStored(ctx, rec.Email)
				if err != nil {
					return nil, err
				}
				if dup {
					res.Skipped = append(res.Skipped, Rejection{Record: rec.Index, Reason: "email already stored"})
					continue
				}
			}
			accepted[rec.Email] = struct{}{}
			existing.AddString(rec.Email)
		}
		res.Imported = append(res.Imported, client.New(rec.Name, rec.Phone, rec.Email))
	}

	if len(res.Imported) > 0 {
		if err := im.repo.CreateBatch(ctx, res.Imported); err != nil {
			im.lg.Warn("Import not stored", zap.Int("records", len(records)), zap.Error(err))
			return nil, errors.Wrap(err, "store clients")
		}
	}
	im.lg.Info("Clients imported",
		zap.String("format", string(format)),
		zap.Int("imported", len(res.Imported)),
		zap.Int("skipped", len(res.Skipped)),
	)
	return res, nil
}

func (im *Importer) check(rec record) string {
	if rec.Reason != "" {
		return rec.Reason
	}
	if strings.TrimSpace(rec.Name) == "" {
		return "name is empty"
	}
	if im.opts.RequireValid {
		c := client.New(rec.Name, rec.Phone, rec.Email)
		switch {
		case !c.ValidPhone():
			return "invalid phone " + rec.Phone
		case !c.ValidEmail():
			return "invalid email " + rec.Email
		}
	}
	return ""
}

// existingEmails builds a bloom filter over stored emails when duplicates
// must be skipped. A hit is confirmed against the repository.
func (im *Importer) existingEmails(ctx context.Context, incoming int) (*bloom.BloomFilter, error) {
	if !im.opts.SkipExisting {
		return nil, nil
	}
	stored, err := im.repo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list stored clients")
	}
	filter := bloom.NewWithEstimates(uint(max(len(stored)+incoming, 1)), 0.001)
	for _, c := range stored {
		filter.AddString(c.Email)
	}
	return filter, nil
}

func (im *Importer) isStored(ctx context.Context, email string) (bool, error) {
	_, err := im.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, client.ErrNotFound):
		return false, nil
	default:
		return false, errors.Wrap(err, "lookup email")
	}
}

func decode(r io.Reader, format Format) ([]record, error) {
	switch format {
	case CSV:
		return readCSV(r)
	case JSON:
		return readJSON(r)
	default:
		return nil, errors.Wrap(ErrUnknownFormat, string(format))
	}
}
