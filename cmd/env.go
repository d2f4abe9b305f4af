package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/pfaustino/boycott-evil/internal/analytics"
	"github.com/pfaustino/boycott-evil/internal/catalog"
	"github.com/pfaustino/boycott-evil/internal/classify"
	"github.com/pfaustino/boycott-evil/internal/dataset"
	"github.com/pfaustino/boycott-evil/internal/resolver"
)

// appEnv is the composition root: the catalog store, the loaded
// classification datasets, and the resolvers built over them. Commands
// construct one appEnv per invocation; nothing here is a package-level
// singleton.
type appEnv struct {
	Store   catalog.Store
	Library *dataset.Library
	Barcode *resolver.Barcode
	Name    *resolver.Name
	Engine  *classify.Engine
}

// initEnv opens the configured store, runs migrations, and loads the
// classification datasets.
func initEnv(ctx context.Context) (*appEnv, error) {
	store, err := catalog.Open(ctx, cfg.Store.Driver, cfg.Store.DatabaseURL, &cfg.Store.Pool)
	if err != nil {
		return nil, eris.Wrap(err, "open catalog store")
	}
	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, eris.Wrap(err, "migrate catalog store")
	}

	lib, err := dataset.Load(ctx, cfg.Datasets)
	if err != nil {
		store.Close()
		return nil, err
	}

	return &appEnv{
		Store:   store,
		Library: lib,
		Barcode: resolver.NewBarcode(store),
		Name:    resolver.NewName(store, lib, analytics.LogEmitter{}),
		Engine:  classify.New(lib, analytics.LogEmitter{}),
	}, nil
}

// initStoreOnly opens the store without loading datasets, for commands
// that only touch the catalog.
func initStoreOnly(ctx context.Context) (catalog.Store, error) {
	store, err := catalog.Open(ctx, cfg.Store.Driver, cfg.Store.DatabaseURL, &cfg.Store.Pool)
	if err != nil {
		return nil, eris.Wrap(err, "open catalog store")
	}
	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, eris.Wrap(err, "migrate catalog store")
	}
	return store, nil
}

func (e *appEnv) Close() {
	e.Store.Close() //nolint:errcheck
}
