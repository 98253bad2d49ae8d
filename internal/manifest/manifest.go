// Package manifest reads the CSV file describing which artifacts to acquire.
//
// Each line holds exactly six comma-separated fields:
//
//	friendlyName,artifactName,targetLocator,expectedDigest,kind,subfolder
//
// A friendlyName starting with "#" disables the row. The reader still yields
// disabled rows; skipping them is up to the caller.
package manifest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// FieldCount is the number of columns every manifest row must have.
const FieldCount = 6

// NoVerification is the expectedDigest value that turns checksum verification off.
const NoVerification = "0"

// WorkItem is one parsed manifest row.
type WorkItem struct {
	FriendlyName   string
	ArtifactName   string
	Target         string // URL for file and git kinds, package identifier for pip
	ExpectedDigest string // lowercase hex, or NoVerification
	Kind           Kind
	Subfolder      string
	Line           int
}

// Disabled reports whether the row was commented out with a leading "#".
func (w WorkItem) Disabled() bool {
	return strings.HasPrefix(w.FriendlyName, "#")
}

// HasSubfolder reports whether the row names a directory below the destination root.
func (w WorkItem) HasSubfolder() bool {
	return w.Subfolder != "" && w.Subfolder != "."
}

// ParseError describes a manifest row that could not be turned into a WorkItem.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("manifest line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// NewWorkItem builds a WorkItem from a raw record. It fails unless the record
// has exactly FieldCount fields and, for enabled rows, a known kind.
func NewWorkItem(record []string, line int) (WorkItem, error) {
	if len(record) != FieldCount {
		return WorkItem{}, &ParseError{
			Line: line,
			Err:  fmt.Errorf("expected %d fields, got %d", FieldCount, len(record)),
		}
	}

	item := WorkItem{
		FriendlyName:   record[0],
		ArtifactName:   record[1],
		Target:         record[2],
		ExpectedDigest: strings.ToLower(record[3]),
		Subfolder:      record[5],
		Line:           line,
	}

	kind, err := ParseKind(record[4])
	if err != nil && !item.Disabled() {
		return WorkItem{}, &ParseError{Line: line, Err: err}
	}
	item.Kind = kind
	return item, nil
}

// Reader streams WorkItems out of a manifest.
type Reader struct {
	csv    *csv.Reader
	closer io.Closer
}

// NewReader returns a Reader consuming r.
func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	// Field count is checked by NewWorkItem so the error carries our wording.
	cr.FieldsPerRecord = -1
	// Display names such as `Monitor 24"` carry a bare quote.
	cr.LazyQuotes = true
	return &Reader{csv: cr}
}

// Open opens the manifest at path. The caller must Close the returned Reader.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest %s: %w", path, err)
	}
	r := NewReader(f)
	r.closer = f
	return r, nil
}

// Next returns the next row. It returns io.EOF once the manifest is exhausted
// and a *ParseError for a malformed row.
func (r *Reader) Next() (WorkItem, error) {
	record, err := r.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return WorkItem{}, io.EOF
		}
		line := 0
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			line = perr.Line
		}
		return WorkItem{}, &ParseError{Line: line, Err: err}
	}
	line, _ := r.csv.FieldPos(0)
	return NewWorkItem(record, line)
}

// Close releases the underlying file, if the Reader was created by Open.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}
