package codec

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aretw0/leveledit/pkg/domain"
)

const (
	formatDirective = "%leveledit scene/"
	maxRecordSize   = 16 << 20
)

// Header returns the fixed header lines written at the top of every ".scene" file.
func Header() []string {
	return []string{
		formatDirective + strconv.Itoa(domain.CurrentVersion),
		"%manager objectMgr",
		"# temporary place holder for node handles",
		"%handles {}",
	}
}

// Lines is the line-oriented scene format: the fixed header, then one JSON-encoded
// object per line.
type Lines struct{}

func (Lines) Extensions() []string { return []string{".scene"} }

// Encode writes the header followed by exactly one line per object.
func (Lines) Encode(w io.Writer, scene *domain.Scene) error {
	lw := NewLineWriter(w)
	if err := lw.WriteHeader(); err != nil {
		return err
	}
	for i := range scene.Objects {
		if err := lw.WriteObject(scene.Objects[i]); err != nil {
			return err
		}
	}
	return lw.Flush()
}

// Decode parses a ".scene" stream. The returned scene has no name; callers derive it
// from the file name.
func (Lines) Decode(r io.Reader) (*domain.Scene, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxRecordSize)

	header := Header()
	scene := &domain.Scene{Version: domain.CurrentVersion, Objects: []domain.Object{}}

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()

		if lineNo <= len(header) {
			if err := checkHeaderLine(lineNo, line, header[lineNo-1]); err != nil {
				return nil, err
			}
			continue
		}

		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "", strings.HasPrefix(trimmed, "#"):
			continue
		case strings.HasPrefix(trimmed, "%"):
			return nil, fmt.Errorf("line %d: %w: unexpected directive %q", lineNo, domain.ErrMalformedRecord, trimmed)
		}

		o, err := decodeRecord(trimmed)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w: %v", lineNo, domain.ErrMalformedRecord, err)
		}
		scene.Objects = append(scene.Objects, o)
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, fmt.Errorf("line %d: %w: %v", lineNo+1, domain.ErrMalformedRecord, err)
		}
		return nil, fmt.Errorf("line %d: %w", lineNo+1, err)
	}

	if lineNo < len(header) {
		return nil, fmt.Errorf("%w: truncated after %d lines", domain.ErrInvalidHeader, lineNo)
	}
	return scene, nil
}

// decodeRecord parses one JSON object. Unknown fields and trailing data are rejected.
func decodeRecord(line string) (domain.Object, error) {
	var o domain.Object
	dec := json.NewDecoder(strings.NewReader(line))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&o); err != nil {
		return o, err
	}
	if dec.More() {
		return o, errors.New("trailing data after record")
	}
	return o, nil
}

func checkHeaderLine(lineNo int, got, want string) error {
	got = strings.TrimRight(got, "\r")
	if got == want {
		return nil
	}
	if lineNo == 1 && strings.HasPrefix(got, formatDirective) {
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedVersion, strings.TrimPrefix(got, formatDirective))
	}
	return fmt.Errorf("line %d: %w: got %q, want %q", lineNo, domain.ErrInvalidHeader, got, want)
}

// LineWriter streams a ".scene" file record by record.
type LineWriter struct {
	w *bufio.Writer
}

// NewLineWriter wraps w. Call Flush when done.
func NewLineWriter(w io.Writer) *LineWriter {
	return &LineWriter{w: bufio.NewWriter(w)}
}

// WriteHeader writes the fixed header.
func (lw *LineWriter) WriteHeader() error {
	for _, line := range Header() {
		if _, err := lw.w.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	return nil
}

// WriteObject writes one object as a single line.
func (lw *LineWriter) WriteObject(o domain.Object) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(o); err != nil {
		return fmt.Errorf("encode object %q: %w", o.ID, err)
	}
	// Encode terminates the record with exactly one newline.
	_, err := lw.w.Write(buf.Bytes())
	return err
}

func (lw *LineWriter) Flush() error {
	return lw.w.Flush()
}
