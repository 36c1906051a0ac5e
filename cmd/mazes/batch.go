package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"sync/atomic"
	"syscall"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/mazes/internal/dataset"
	"github.com/vancomm/mazes/internal/generate"
	"github.com/vancomm/mazes/internal/maze"
	"github.com/vancomm/mazes/internal/solve"
)

type batchParams struct {
	count     int
	workers   int
	rows      int
	cols      int
	algorithm string
	solver    string
	seed      uint64
}

// runBatch generates count mazes with consecutive seeds starting at p.seed
// and archives them in store. It returns how many were stored.
func runBatch(ctx context.Context, store *dataset.Store, p batchParams) (int, error) {
	gen, err := generate.ByName(p.algorithm)
	if err != nil {
		return 0, err
	}
	if p.solver != "" {
		unit, _ := maze.New(1, 1)
		if _, err := solve.ByName(p.solver, unit); err != nil {
			return 0, err
		}
	}

	var stored atomic.Int64

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(max(p.workers, 1))
	for i := range p.count {
		if gCtx.Err() != nil {
			break
		}
		seed := p.seed + uint64(i)
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			grid, err := maze.New(p.rows, p.cols)
			if err != nil {
				return err
			}
			if _, err := generate.Run(grid, gen, seed); err != nil {
				return fmt.Errorf("seed %d: %w", seed, err)
			}

			var path maze.Path
			if p.solver != "" {
				s, _ := solve.ByName(p.solver, grid, solve.WithSeed(seed))
				path, err = s.Solve()
				if err != nil && !errors.Is(err, maze.ErrDisconnected) {
					return fmt.Errorf("seed %d: %w", seed, err)
				}
			}

			if _, err := store.Put(dataset.NewRecord(grid, gen.Name(), seed, path)); err != nil {
				return fmt.Errorf("seed %d: %w", seed, err)
			}
			stored.Add(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return int(stored.Load()), err
	}
	return int(stored.Load()), ctx.Err()
}

func batchMain(args []string) int {
	var (
		fs  = flag.NewFlagSet("batch", flag.ExitOnError)
		out string
		p   batchParams
	)
	fs.IntVar(&p.count, "count", 100, "number of mazes")
	fs.IntVar(&p.count, "n", 100, "number of mazes (shorthand)")
	fs.IntVar(&p.workers, "workers", runtime.NumCPU(), "parallel generators")
	fs.IntVar(&p.workers, "w", runtime.NumCPU(), "parallel generators (shorthand)")
	fs.IntVar(&p.rows, "rows", 10, "number of rows")
	fs.IntVar(&p.cols, "cols", 10, "number of columns")
	fs.StringVar(&p.algorithm, "a", "dfs", "generator")
	fs.StringVar(&p.solver, "solver", "lee", "solver for stored solutions, empty for none")
	fs.Uint64Var(&p.seed, "seed", 0, "first seed, random when unset")
	fs.StringVar(&out, "out", "mazes.db", "SQLite dataset file")
	fs.StringVar(&out, "o", "mazes.db", "SQLite dataset file (shorthand)")
	fs.StringVar(&logFile, "log", "", "also write logs to a rotating file")
	fs.Parse(args)

	setupLogging()

	if !isSet(fs, "seed") {
		p.seed = randomSeed()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := dataset.Open(out)
	if err != nil {
		log.Error("unable to open dataset: ", err)
		return 1
	}
	defer store.Close()

	log.WithFields(logrus.Fields{
		"count": p.count, "workers": p.workers, "algorithm": p.algorithm,
		"rows": p.rows, "cols": p.cols, "seed": p.seed, "out": out,
	}).Info("batch started")

	stored, err := runBatch(ctx, store, p)
	if err != nil {
		log.WithField("stored", stored).Error("batch failed: ", err)
		return 1
	}
	log.WithField("stored", stored).Info("batch done")
	return 0
}
