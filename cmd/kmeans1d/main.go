package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/yyyoichi/kmeans1d"
	"github.com/yyyoichi/kmeans1d/dataset"
)

type config struct {
	dataPath      string
	centroidsPath string
	workers       int
	maxIter       int
	eps           float64
	strategy      string
	assignPath    string
	centroidsOut  string
	ssePath       string
	chartPath     string
	verbose       bool
}

var errMissingInput = errors.New("data and centroids files are required")

// parseConfig reads the command line. The input files come from -data and
// -centroids, or from the first two positional arguments.
func parseConfig(args []string, output io.Writer) (config, error) {
	var cfg config
	fs := flag.NewFlagSet("kmeans1d", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&cfg.dataPath, "data", "", "samples file, one value per line")
	fs.StringVar(&cfg.centroidsPath, "centroids", "", "initial centroids file, one value per line")
	fs.IntVar(&cfg.workers, "threads", kmeans1d.DefaultWorkers, "number of worker goroutines")
	fs.IntVar(&cfg.maxIter, "max-iter", kmeans1d.DefaultMaxIter, "maximum number of iterations")
	fs.Float64Var(&cfg.eps, "eps", kmeans1d.DefaultEpsilon, "relative SSE change that counts as converged")
	fs.StringVar(&cfg.strategy, "strategy", "critical", "accumulation strategy: critical or reduction")
	fs.StringVar(&cfg.assignPath, "assign", "", "write the cluster of every sample to this file")
	fs.StringVar(&cfg.centroidsOut, "out-centroids", "", "write the final centroids to this file")
	fs.StringVar(&cfg.ssePath, "sse", "", "write the SSE of every iteration to this file")
	fs.StringVar(&cfg.chartPath, "chart", "", "render the SSE of every iteration as an HTML chart")
	fs.BoolVar(&cfg.verbose, "v", false, "log every iteration")
	fs.Usage = func() {
		fmt.Fprintln(output, "Usage: kmeans1d [flags] [data.csv initial_centroids.csv]")
		fmt.Fprintln(output)
		fmt.Fprintln(output, "Input files hold one value per line, without header.")
		fmt.Fprintln(output)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	pos := fs.Args()
	if cfg.dataPath == "" && len(pos) > 0 {
		cfg.dataPath, pos = pos[0], pos[1:]
	}
	if cfg.centroidsPath == "" && len(pos) > 0 {
		cfg.centroidsPath, pos = pos[0], pos[1:]
	}
	if len(pos) > 0 {
		return config{}, fmt.Errorf("unexpected arguments: %v", pos)
	}
	if cfg.dataPath == "" || cfg.centroidsPath == "" {
		fs.Usage()
		return config{}, errMissingInput
	}
	return cfg, nil
}

func main() {
	cfg, err := parseConfig(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(context.Background(), cfg, os.Stdout, logger); err != nil {
		logger.Error("kmeans1d failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config, stdout io.Writer, logger *slog.Logger) error {
	strategy, err := kmeans1d.ParseStrategy(cfg.strategy)
	if err != nil {
		return err
	}
	var (
		history   []float64
		sseWriter *dataset.SSEWriter
	)
	observe := func(iteration int, sse float64) {
		history = append(history, sse)
		if sseWriter != nil {
			sseWriter.Observe(iteration, sse)
		}
	}

	// Parameters are checked before any file is read.
	c, err := kmeans1d.New(
		kmeans1d.WithWorkers(cfg.workers),
		kmeans1d.WithMaxIter(cfg.maxIter),
		kmeans1d.WithEpsilon(cfg.eps),
		kmeans1d.WithStrategy(strategy),
		kmeans1d.WithLogger(logger),
		kmeans1d.WithObserver(observe),
	)
	if err != nil {
		return err
	}

	samples, err := dataset.ReadFile(cfg.dataPath)
	if err != nil {
		return err
	}
	centroids, err := dataset.ReadFile(cfg.centroidsPath)
	if err != nil {
		return err
	}

	if cfg.ssePath != "" {
		if sseWriter, err = dataset.CreateSSEFile(cfg.ssePath); err != nil {
			return err
		}
		defer func() {
			if sseWriter != nil {
				_ = sseWriter.Close()
			}
		}()
	}

	start := time.Now()
	res, err := c.Run(ctx, samples, centroids)
	if err != nil {
		// A rejected run leaves no SSE history behind.
		if sseWriter != nil {
			_ = sseWriter.Close()
			sseWriter = nil
			_ = os.Remove(cfg.ssePath)
		}
		return err
	}
	elapsed := time.Since(start)

	fmt.Fprintln(stdout, "K-means 1D (parallel)")
	fmt.Fprintf(stdout, "N=%d K=%d max_iter=%d eps=%g threads=%d strategy=%s\n",
		len(samples), len(centroids), cfg.maxIter, cfg.eps, cfg.workers, strategy)
	fmt.Fprintf(stdout, "Iterations: %d (%s) | Final SSE: %.6f | Time: %.1f ms\n",
		res.Iterations, res.Status, res.SSE, float64(elapsed.Microseconds())/1000)

	if sseWriter != nil {
		if err := sseWriter.Close(); err != nil {
			return fmt.Errorf("%s: %w", cfg.ssePath, err)
		}
		sseWriter = nil
	}
	if cfg.assignPath != "" {
		if err := dataset.WriteFile(cfg.assignPath, func(w io.Writer) error {
			return dataset.WriteAssignments(w, res.Assignments)
		}); err != nil {
			return err
		}
	}
	if cfg.centroidsOut != "" {
		if err := dataset.WriteFile(cfg.centroidsOut, func(w io.Writer) error {
			return dataset.WriteCentroids(w, res.Centroids)
		}); err != nil {
			return err
		}
	}
	if cfg.chartPath != "" {
		if err := renderSSEChart(history, res, cfg.chartPath); err != nil {
			return err
		}
		logger.Info("chart written", "path", cfg.chartPath)
	}
	return nil
}
