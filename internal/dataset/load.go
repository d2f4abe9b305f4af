package dataset

import (
	"context"
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pfaustino/boycott-evil/internal/fetcher"
	"github.com/pfaustino/boycott-evil/internal/model"
)

// Paths locates the three dataset documents on disk.
type Paths struct {
	Boycotted   string `yaml:"boycotted" mapstructure:"boycotted"`
	Recommended string `yaml:"recommended" mapstructure:"recommended"`
	Aliases     string `yaml:"aliases" mapstructure:"aliases"`
}

// Load reads and parses the three dataset files in parallel and builds an
// immutable Library. A missing or malformed boycotted/recommended document
// is fatal: running with a silently empty dataset would classify everything
// as clean. The aliases document is optional.
func Load(ctx context.Context, paths Paths) (*Library, error) {
	var (
		boycotted   map[string]model.CompanyRecord
		recommended map[string]model.CompanyRecord
		aliases     map[string]string
	)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		boycotted, err = readCompanyFile(paths.Boycotted)
		return eris.Wrap(err, "dataset: load boycotted companies")
	})
	g.Go(func() error {
		if paths.Recommended == "" {
			return nil
		}
		var err error
		recommended, err = readCompanyFile(paths.Recommended)
		return eris.Wrap(err, "dataset: load recommended companies")
	})
	g.Go(func() error {
		if paths.Aliases == "" {
			return nil
		}
		var err error
		aliases, err = readAliasFile(paths.Aliases)
		return eris.Wrap(err, "dataset: load brand aliases")
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	lib := NewLibrary(boycotted, recommended, aliases)
	b, r, a := lib.Counts()
	zap.L().Info("classification datasets loaded",
		zap.Int("boycotted", b),
		zap.Int("recommended", r),
		zap.Int("aliases", a),
	)
	return lib, nil
}

func readCompanyFile(path string) (map[string]model.CompanyRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	companies, err := fetcher.DecodeJSONObject[map[string]model.CompanyRecord](f)
	if err != nil {
		return nil, eris.Wrapf(err, "parse %s", path)
	}
	return *companies, nil
}

func readAliasFile(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	aliases, err := fetcher.DecodeJSONObject[map[string]string](f)
	if err != nil {
		return nil, eris.Wrapf(err, "parse %s", path)
	}
	return *aliases, nil
}

// WriteCompanyFile writes a merged company set as pretty-printed JSON, the
// same shape the loader consumes. Import pipeline only.
func WriteCompanyFile(path string, companies map[string]model.CompanyRecord) error {
	data, err := json.MarshalIndent(companies, "", "  ")
	if err != nil {
		return eris.Wrap(err, "dataset: marshal companies")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "dataset: write %s", path)
	}
	return nil
}

// WriteAliasFile writes a brand-alias map as pretty-printed JSON.
func WriteAliasFile(path string, aliases map[string]string) error {
	data, err := json.MarshalIndent(aliases, "", "  ")
	if err != nil {
		return eris.Wrap(err, "dataset: marshal aliases")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "dataset: write %s", path)
	}
	return nil
}
