package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dimchat/gsp/internal/log"
	"github.com/dimchat/gsp/internal/provider"
	"github.com/dimchat/gsp/internal/store"
)

// loadProvider opens the configured sources. A successful load refreshes
// the cache; when a source cannot be read the cached record is used
// instead. Documents that read fine but fail to parse are reported, not
// papered over.
func loadProvider(ctx context.Context) (*provider.Provider, error) {
	p, err := provider.Open(ctx, registry, sources...)
	if err == nil {
		if cerr := cacheProvider(p); cerr != nil {
			log.Warn("caching provider failed", "id", p.ID(), "error", cerr)
		}
		return p, nil
	}

	var perr *provider.ParseError
	if errors.As(err, &perr) {
		return nil, err
	}

	cached, cerr := cachedProvider()
	if cerr != nil {
		log.Debug("no cached provider to fall back on", "error", cerr)
		return nil, err
	}
	printer.Warnf("%v; using cached record %s", err, cached.ID())
	return cached, nil
}

func openStore() (*store.Store, error) {
	if cachePath == "" {
		return nil, errors.New("no cache path configured")
	}
	if err := ensureDir(cachePath); err != nil {
		return nil, err
	}
	return store.OpenStore(cachePath)
}

func cacheProvider(p *provider.Provider) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()
	return s.SaveProvider(p)
}

// cachedProvider returns the configured provider, or the first one cached
// when none is configured.
func cachedProvider() (*provider.Provider, error) {
	s, err := openStore()
	if err != nil {
		return nil, err
	}
	defer s.Close()

	id := ""
	if globalCfg != nil {
		id = globalCfg.Provider
	}
	if id == "" {
		records, err := s.Providers()
		if err != nil {
			return nil, err
		}
		if len(records) == 0 {
			return nil, store.ErrNotFound
		}
		id = records[0].ID
	}

	p, err := s.Provider(id)
	if err != nil {
		return nil, fmt.Errorf("cached provider %s: %w", id, err)
	}
	return p, nil
}
