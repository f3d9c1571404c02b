package crx

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/meigma/crx/search"
	"github.com/meigma/crx/tree"
)

// DefaultContentsConcurrency is the default number of members decoded
// in parallel by Contents.
const DefaultContentsConcurrency = 4

// ContentsOption configures a Contents call.
type ContentsOption func(*contentsConfig)

type contentsConfig struct {
	concurrency int64
	onProgress  ProgressFunc
}

// ContentsWithConcurrency sets how many members are decoded in
// parallel. Values < 1 force serial decoding.
func ContentsWithConcurrency(n int) ContentsOption {
	return func(c *contentsConfig) {
		if n < 1 {
			n = 1
		}
		c.concurrency = int64(n)
	}
}

// ContentsWithProgress sets a callback that receives a StageDecoding
// event after each member finishes decoding. The callback must be safe
// for concurrent calls.
func ContentsWithProgress(fn ProgressFunc) ContentsOption {
	return func(c *contentsConfig) {
		c.onProgress = fn
	}
}

// Contents bulk-decodes members into the search engine's input shape.
//
// A nil paths slice selects every file in tree pre-order. Members are
// decoded with bounded parallelism, but the returned slice always
// matches the request order regardless of completion order. Each file's
// ID is its normalized path. Decoding goes through ReadFile, so the
// content cache and in-flight deduplication apply.
func (p *Package) Contents(ctx context.Context, paths []string, opts ...ContentsOption) ([]search.File, error) {
	cfg := contentsConfig{concurrency: DefaultContentsConcurrency}
	for _, opt := range opts {
		opt(&cfg)
	}

	if paths == nil {
		files := p.Files()
		paths = make([]string, len(files))
		for i, f := range files {
			paths[i] = f.Path
		}
	} else {
		normalized := make([]string, len(paths))
		for i, path := range paths {
			normalized[i] = tree.NormalizePath(path)
		}
		paths = normalized
	}

	var (
		out       = make([]search.File, len(paths))
		done      atomic.Int64
		bytesDone atomic.Uint64
		sem       = semaphore.NewWeighted(cfg.concurrency)
	)

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		if err := sem.Acquire(ctx, 1); err != nil {
			break // a worker failed; collect its error below
		}
		g.Go(func() error {
			defer sem.Release(1)

			content, err := p.readFile(path)
			if err != nil {
				return fmt.Errorf("decode %s: %w", path, err)
			}
			out[i] = search.File{ID: path, Path: path, Content: content}

			if cfg.onProgress != nil {
				cfg.onProgress(ProgressEvent{
					Stage:      StageDecoding,
					Path:       path,
					FilesDone:  int(done.Add(1)),
					FilesTotal: len(paths),
					BytesDone:  bytesDone.Add(uint64(len(content))),
				})
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
