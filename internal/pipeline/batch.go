package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-composer/internal/types"
)

// Input is one resume to compose in a batch
type Input struct {
	Resume     types.Resume
	TemplateID string
}

// ComposeAll composes inputs concurrently, at most limit at a time, and
// returns compositions in input order. Each worker gets its own measurer;
// opts.Measurer is ignored and opts.OnProgress may be called concurrently.
// A canceled ctx stops the batch.
func ComposeAll(ctx context.Context, inputs []Input, limit int, opts *Options) ([]*Composition, error) {
	base := Options{}
	if opts != nil {
		base = *opts
	}
	base.Measurer = nil

	results := make([]*Composition, len(inputs))
	g, gCtx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, in := range inputs {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			o := base
			results[i] = Compose(in.Resume, in.TemplateID, &o)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
