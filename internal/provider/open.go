package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/dimchat/gsp/internal/log"
	"github.com/dimchat/gsp/internal/source"
)

// Open reads every reference through reg and merges the documents in the
// order given. Reads run concurrently; merging does not.
func Open(ctx context.Context, reg *source.Registry, refs ...string) (*Provider, error) {
	if len(refs) == 0 {
		return nil, errors.New("no provider sources configured")
	}

	docs := make([][]byte, len(refs))
	g, gctx := errgroup.WithContext(ctx)
	for i, ref := range refs {
		i, ref := i, ref
		g.Go(func() error {
			data, err := reg.Read(gctx, ref)
			if err != nil {
				return fmt.Errorf("reading %s: %w", ref, err)
			}
			docs[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	p, err := ParseMerged(docs...)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", strings.Join(refs, ", "), err)
	}

	log.Debug("provider loaded",
		"id", p.ID(),
		"sources", refs,
		"stations", len(p.stations),
		"apis", len(p.apis))
	return p, nil
}
