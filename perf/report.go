package perf

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/hupe1980/everybit/blobstore"
	"github.com/hupe1980/everybit/internal/compress"
	"github.com/hupe1980/everybit/resource"
)

// Format selects the report encoding.
type Format int

const (
	// FormatText is the fixed-width table printed by the CLI.
	FormatText Format = iota
	// FormatJSON is a single JSON document.
	FormatJSON
)

// ErrUnknownFormat is returned by ParseFormat for unsupported names.
var ErrUnknownFormat = errors.New("perf: unknown report format")

func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat maps "text" and "json" (case-insensitive) to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// WriteHeader writes the column header of the text report.
func WriteHeader(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%-4s %-15s %-15s %-10s\n", "TIER", "SIZE(B)", "#SHIFTS", "TIME(s)")
	return err
}

func writeRow(w io.Writer, t Tier, budget time.Duration) error {
	if t.Exceeded {
		_, err := fmt.Fprintf(w, "%-4d %-15d %-15d %-.6f exceeded %.2fs cutoff\n",
			t.Index, t.Bytes, t.Shift, t.Elapsed.Seconds(), budget.Seconds())
		return err
	}
	_, err := fmt.Fprintf(w, "%-4d %-15d %-15d %-.6f\n", t.Index, t.Bytes, t.Shift, t.Elapsed.Seconds())
	return err
}

// WriteText writes the header, one row per tier and the best tier.
func (r *Result) WriteText(w io.Writer) error {
	if err := WriteHeader(w); err != nil {
		return err
	}
	if err := r.writeRows(w); err != nil {
		return err
	}
	return r.writeSummary(w)
}

func (r *Result) writeRows(w io.Writer) error {
	for _, t := range r.Tiers {
		if err := writeRow(w, t, r.Budget); err != nil {
			return err
		}
	}
	return nil
}

func (r *Result) writeSummary(w io.Writer) error {
	_, err := fmt.Fprintf(w, "------\nSucceeded tier: %d\n", r.Best)
	return err
}

// WriteJSON writes r as an indented JSON document.
func (r *Result) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// Write encodes r in format f.
func (r *Result) Write(w io.Writer, f Format) error {
	switch f {
	case FormatText:
		return r.WriteText(w)
	case FormatJSON:
		return r.WriteJSON(w)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, f)
	}
}

// WriteReport stores r under name in store. Names ending in .zst, .gz or
// .lz4 are compressed. Writes are charged against the IO limit of the
// resource controller passed with WithResourceController.
func WriteReport(ctx context.Context, store blobstore.BlobStore, name string, r *Result, f Format, optFns ...Option) (err error) {
	opts := applyOptions(optFns)

	blob, err := store.Create(ctx, name)
	if err != nil {
		return fmt.Errorf("create report %s: %w", name, err)
	}
	defer func() {
		if cerr := blob.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close report %s: %w", name, cerr)
		}
	}()

	enc, err := compress.NewWriter(compress.Detect(name), resource.NewRateLimitedWriter(ctx, blob, opts.controller))
	if err != nil {
		return fmt.Errorf("compress report %s: %w", name, err)
	}
	if err := r.Write(enc, f); err != nil {
		enc.Close()
		return fmt.Errorf("write report %s: %w", name, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("flush report %s: %w", name, err)
	}
	return nil
}
