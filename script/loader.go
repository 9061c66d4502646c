package script

import (
	"bytes"
	"context"
	"fmt"
	"runtime"

	"github.com/hupe1980/everybit/blobstore"
	"github.com/hupe1980/everybit/internal/compress"
	"github.com/hupe1980/everybit/resource"
	"golang.org/x/sync/errgroup"
)

// Load reads and parses the script stored under name. Reads are charged
// against the IO limit of the configured resource controller. Names ending
// in .zst, .gz or .lz4 are decompressed.
func Load(ctx context.Context, store blobstore.BlobStore, name string, optFns ...Option) (*Script, error) {
	opts := applyOptions(optFns)

	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("open script %s: %w", name, err)
	}
	defer blob.Close()

	body, err := blob.ReadRange(ctx, 0, blob.Size())
	if err != nil {
		return nil, fmt.Errorf("read script %s: %w", name, err)
	}
	defer body.Close()

	dec, err := compress.NewReader(compress.Detect(name), resource.NewRateLimitedReader(ctx, body, opts.controller))
	if err != nil {
		return nil, fmt.Errorf("decompress script %s: %w", name, err)
	}
	defer dec.Close()

	return Parse(name, dec)
}

// RunAll loads and runs the named scripts, at most as many at a time as the
// resource controller has worker slots (GOMAXPROCS without a controller).
// Reports are returned in the order of names.
//
// The first load or allocation error cancels the remaining scripts.
func RunAll(ctx context.Context, store blobstore.BlobStore, names []string, optFns ...Option) ([]*Report, error) {
	opts := applyOptions(optFns)
	rc := opts.controller

	limit := runtime.GOMAXPROCS(0)
	if rc != nil {
		limit = int(rc.Config().MaxWorkers)
	}

	reports := make([]*Report, len(names))
	// Verbose output is buffered per script so concurrent scripts do not
	// interleave.
	var bufs []bytes.Buffer
	if opts.verbose != nil {
		bufs = make([]bytes.Buffer, len(names))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, name := range names {
		g.Go(func() error {
			if err := rc.AcquireWorker(gctx); err != nil {
				return err
			}
			defer rc.ReleaseWorker()

			s, err := Load(gctx, store, name, optFns...)
			if err != nil {
				return err
			}

			runOpts := optFns
			if bufs != nil {
				runOpts = append(append([]Option(nil), optFns...), WithVerbose(&bufs[i]))
			}
			rep, err := NewRunner(runOpts...).Run(gctx, s)
			reports[i] = rep
			return err
		})
	}
	err := g.Wait()

	for i := range bufs {
		if _, werr := bufs[i].WriteTo(opts.verbose); werr != nil && err == nil {
			err = werr
		}
	}
	return reports, err
}
