package main

import (
	"flag"
	"fmt"
	"hash/maphash"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/vancomm/mazes/internal/config"
	"github.com/vancomm/mazes/internal/dataset"
	"github.com/vancomm/mazes/internal/generate"
	"github.com/vancomm/mazes/internal/maze"
	"github.com/vancomm/mazes/internal/solve"
)

var (
	log = logrus.New()

	rows, cols    int
	algorithm     string
	seed          uint64
	solverName    string
	heuristicName string
	printBits     bool
	printStats    bool
	logFile       string
)

func init() {
	const (
		rowsUsage      = "number of rows"
		colsUsage      = "number of columns"
		algorithmUsage = "generator, chain several with '+'"
		seedUsage      = "generator seed, random when unset"
		solverUsage    = "solver to draw a path with, empty for none"
		heuristicUsage = "A* heuristic"
	)
	flag.IntVar(&rows, "rows", 10, rowsUsage)
	flag.IntVar(&rows, "r", 10, rowsUsage+" (shorthand)")
	flag.IntVar(&cols, "cols", 10, colsUsage)
	flag.IntVar(&cols, "c", 10, colsUsage+" (shorthand)")
	flag.StringVar(&algorithm, "algorithm", "dfs", algorithmUsage)
	flag.StringVar(&algorithm, "a", "dfs", algorithmUsage+" (shorthand)")
	flag.Uint64Var(&seed, "seed", 0, seedUsage)
	flag.Uint64Var(&seed, "s", 0, seedUsage+" (shorthand)")
	flag.StringVar(&solverName, "solver", "lee", solverUsage)
	flag.StringVar(&heuristicName, "heuristic", "manhattan", heuristicUsage)
	flag.BoolVar(&printBits, "bits", false, "print the wall bit string")
	flag.BoolVar(&printStats, "stats", false, "print structural statistics")
	flag.StringVar(&logFile, "log", "", "also write logs to a rotating file")
}

// loggers lists every logger whose level and hooks follow the CLI setup.
func loggers() []*logrus.Logger {
	return []*logrus.Logger{log, maze.Log, generate.Log, solve.Log, dataset.Log}
}

func setupLogging() {
	logLevel := logrus.InfoLevel
	if config.Development() {
		logLevel = logrus.DebugLevel
	}

	var hook logrus.Hook
	if logFile != "" {
		var err error
		hook, err = rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
			Filename:   logFile,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
			Level:      logLevel,
			Formatter:  &logrus.JSONFormatter{},
		})
		if err != nil {
			log.Fatal("unable to open log file: ", err)
		}
	}

	for _, l := range loggers() {
		l.SetLevel(logLevel)
		l.SetFormatter(&logrus.TextFormatter{ForceColors: true})
		if hook != nil {
			l.AddHook(hook)
		}
	}
}

// isSet reports whether any of names was passed on the command line.
func isSet(fs *flag.FlagSet, names ...string) (set bool) {
	fs.Visit(func(f *flag.Flag) {
		for _, name := range names {
			if f.Name == name {
				set = true
			}
		}
	})
	return
}

func randomSeed() uint64 {
	return new(maphash.Hash).Sum64()
}

func main() {
	if len(os.Args) > 1 && os.Args[1] == "batch" {
		os.Exit(batchMain(os.Args[2:]))
	}

	flag.Parse()
	setupLogging()

	if !isSet(flag.CommandLine, "seed", "s") {
		seed = randomSeed()
	}

	gen, err := generate.ByName(algorithm)
	if err != nil {
		log.Fatal(err)
	}
	g, err := maze.New(rows, cols)
	if err != nil {
		log.Fatal(err)
	}
	res, err := generate.Run(g, gen, seed)
	if err != nil {
		log.Fatal(err)
	}
	log.WithFields(logrus.Fields{
		"algorithm": gen.Name(),
		"seed":      seed,
		"carved":    res.Carved,
	}).Info("maze generated")

	var path maze.Path
	if solverName != "" {
		heuristic, err := solve.HeuristicByName(heuristicName)
		if err != nil {
			log.Fatal(err)
		}
		s, err := solve.ByName(solverName, g,
			solve.WithHeuristic(heuristic), solve.WithSeed(seed))
		if err != nil {
			log.Fatal(err)
		}
		if path, err = s.Solve(); err != nil {
			log.Warn(err)
		} else {
			log.WithField("length", s.Score()).Info("maze solved")
		}
	}

	fmt.Print(renderColored(g, path))
	if printBits {
		fmt.Println(g.WallBitstring())
	}
	if printStats {
		fmt.Print(stats(g))
	}
}
