// Command catalog-ingest merges catalog shard files into the canonical
// catalog JSON embedded by the server. Shards are JSON arrays of products,
// optionally gzip-compressed, typically one file per supplier or category.
package main

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	pgzip "github.com/klauspost/pgzip"
	"golang.org/x/sync/errgroup"

	"github.com/crumbworks/cookieshop/internal/domain/product"
	"github.com/crumbworks/cookieshop/internal/storage/memory"
)

func main() {
	var (
		dataDir string
		outPath string
	)

	flag.StringVar(&dataDir, "data-dir", "data", "directory containing catalog shard files (*.json, *.json.gz)")
	flag.StringVar(&outPath, "out", "catalog/catalog.json", "path for the merged catalog")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, dataDir, outPath); err != nil {
		slog.Error("catalog ingest failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("catalog ingest completed successfully")
}

func run(ctx context.Context, dataDir, outPath string) error {
	files, err := shardFiles(dataDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return errors.Errorf("no catalog shards in %s", dataDir)
	}

	slog.Info("parsing shards", slog.Int("files", len(files)))

	// Parse all shards concurrently, keeping per-file results so the merge
	// order stays deterministic.
	results := make([][]product.Product, len(files))

	g, ctx := errgroup.WithContext(ctx)
	for i, f := range files {
		g.Go(parseShard(ctx, i, f, results))
	}
	if err := g.Wait(); err != nil {
		return err
	}

	merged, err := merge(results, files)
	if err != nil {
		return err
	}

	slog.Info("writing catalog",
		slog.Int("products", len(merged)),
		slog.String("out", outPath),
	)
	return writeCatalog(outPath, merged)
}

// shardFiles lists the shard files in dataDir in sorted order.
func shardFiles(dataDir string) ([]string, error) {
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return nil, errors.Wrap(err, "read data dir")
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, ".json") || strings.HasSuffix(name, ".json.gz") {
			files = append(files, filepath.Join(dataDir, name))
		}
	}
	sort.Strings(files)
	return files, nil
}

func parseShard(ctx context.Context, idx int, path string, results [][]product.Product) func() error {
	return func() error {
		if err := ctx.Err(); err != nil {
			return err
		}

		data, err := readShard(path)
		if err != nil {
			return errors.Wrapf(err, "read shard %s", path)
		}

		products, err := memory.DecodeProducts(data)
		if err != nil {
			return errors.Wrapf(err, "parse shard %s", path)
		}

		for _, p := range products {
			if err := validate(p); err != nil {
				return errors.Wrapf(err, "shard %s", path)
			}
		}

		slog.Info("shard parsed", slog.String("file", path), slog.Int("products", len(products)))
		results[idx] = products
		return nil
	}
}

// readShard reads a shard file, transparently decompressing .gz shards.
func readShard(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := pgzip.NewReader(f)
		if err != nil {
			return nil, errors.Wrap(err, "gzip reader")
		}
		defer gz.Close()
		r = gz
	}

	return io.ReadAll(r)
}

func validate(p product.Product) error {
	switch {
	case p.ID == "":
		return errors.New("product with empty id")
	case p.Name == "":
		return errors.Errorf("product %s: empty name", p.ID)
	case p.Price.IsNegative():
		return errors.Errorf("product %s: negative price %s", p.ID, p.Price)
	case p.Category == product.CategoryAll || !p.Category.Valid():
		return errors.Errorf("product %s: invalid category %q", p.ID, p.Category)
	}
	return nil
}

// merge flattens per-shard results in shard order, rejecting duplicate IDs.
func merge(results [][]product.Product, files []string) ([]product.Product, error) {
	seen := make(map[string]string)
	var merged []product.Product
	for i, products := range results {
		for _, p := range products {
			if prev, ok := seen[p.ID]; ok {
				return nil, errors.Errorf("duplicate product id %q in %s (first seen in %s)", p.ID, files[i], prev)
			}
			seen[p.ID] = files[i]
			merged = append(merged, p)
		}
	}
	return merged, nil
}

func writeCatalog(path string, products []product.Product) error {
	var e jx.Encoder
	e.Arr(func(e *jx.Encoder) {
		for _, p := range products {
			encodeProduct(e, p)
		}
	})

	if err := os.WriteFile(path, e.Bytes(), 0o644); err != nil {
		return errors.Wrap(err, "write catalog")
	}
	return nil
}

func encodeProduct(e *jx.Encoder, p product.Product) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(p.ID) })
		e.Field("name", func(e *jx.Encoder) { e.Str(p.Name) })
		e.Field("description", func(e *jx.Encoder) { e.Str(p.Description) })
		e.Field("price", func(e *jx.Encoder) { e.Num(jx.Num(p.Price.String())) })
		e.Field("category", func(e *jx.Encoder) { e.Str(string(p.Category)) })
		e.Field("image", func(e *jx.Encoder) { e.Str(p.Image) })
		e.Field("ingredients", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, ing := range p.Ingredients {
					e.Str(ing)
				}
			})
		})
		e.Field("inStock", func(e *jx.Encoder) { e.Bool(p.InStock) })
		if p.Featured {
			e.Field("featured", func(e *jx.Encoder) { e.Bool(true) })
		}
	})
}
