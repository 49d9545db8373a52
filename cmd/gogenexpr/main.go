package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/they4kman/experimentation/machine-learning/genetic-algorithms/bitexpr/fitness"
	"github.com/they4kman/experimentation/machine-learning/genetic-algorithms/bitexpr/genexpr"
	"github.com/they4kman/experimentation/machine-learning/genetic-algorithms/bitexpr/store"
)

const usageTarget = "Expecting number as first argument."

var errUsage = errors.New(usageTarget)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := parseConfig(args, stderr)
	if err != nil {
		switch {
		case errors.Is(err, flag.ErrHelp):
			return 0
		case errors.Is(err, errUsage):
			fmt.Fprintln(stdout, usageTarget)
		default:
			fmt.Fprintln(stderr, err)
		}
		return 2
	}

	logger, closeLog, err := newLogger(stderr, cfg.LogLevel, cfg.LogJSON)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	defer closeLog()

	if err := sample(ctx, cfg, stdout, logger); err != nil {
		logger.Error("sampling failed", "error", err)
		return 1
	}
	return 0
}

func parseConfig(args []string, stderr io.Writer) (*Config, error) {
	cfg := DefaultConfig()

	fs := flag.NewFlagSet("gogenexpr", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := ""
	fs.StringVar(&configPath, "config", "", "Path to a TOML config file. Flags given explicitly override its values")
	fs.Var(targetValue{cfg}, "target", "Number to search for an expression of. May instead be given as the first argument")
	fs.IntVar(&cfg.SampleSize, "count", cfg.SampleSize, "Number of random chromosomes to create")
	fs.IntVar(&cfg.MinGeneCount, "min-genes", cfg.MinGeneCount, "Minimum number of genes in each chromosome (padded out to a whole number of bytes)")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Seed for the random source. A time-based seed is used if not provided")
	fs.IntVar(&cfg.NumEvaluationWorkers, "workers", cfg.NumEvaluationWorkers, "Number of goroutines to evaluate chromosomes with. Set to 0 to disable concurrency.")
	fs.IntVar(&cfg.EvaluationCacheSize, "cache-size", cfg.EvaluationCacheSize, "Number of evaluations to remember. Set to 0 to disable caching.")
	fs.BoolVar(&cfg.Verify, "verify", cfg.Verify, "Re-evaluate each expression in infix form, warning of any mismatch")
	fs.StringVar(&cfg.Store, "store", cfg.Store, "Where to record samples: memory or sqlite")
	fs.StringVar(&cfg.SQLitePath, "sqlite-path", cfg.SQLitePath, "Database file used by the sqlite store")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn or error")
	fs.StringVar(&cfg.LogJSON, "log-json", cfg.LogJSON, "Additionally write JSON logs to this file")

	args = separateNegativeTarget(fs, args)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if configPath != "" {
		// Explicit flags win over the file, so parse them again on top of it
		if err := loadConfigFile(configPath, cfg); err != nil {
			return nil, err
		}
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			cfg.seedSet = true
		}
	})

	if fs.NArg() > 0 {
		if err := (targetValue{cfg}).Set(fs.Arg(0)); err != nil {
			return nil, fmt.Errorf("%w: %v", errUsage, err)
		}
	}
	if !cfg.targetSet {
		return nil, errUsage
	}

	if !cfg.seedSet {
		cfg.Seed = time.Now().UnixNano()
	}

	return cfg, nil
}

// separateNegativeTarget inserts "--" before a negative target such as "-5", which the
// flag parser would otherwise reject as an undefined flag. Tokens consumed as the value
// of a preceding flag are left alone.
func separateNegativeTarget(fs *flag.FlagSet, args []string) []string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" || !strings.HasPrefix(arg, "-") {
			return args
		}

		if _, err := strconv.ParseFloat(arg, 64); err == nil {
			separated := make([]string, 0, len(args)+1)
			separated = append(separated, args[:i]...)
			separated = append(separated, "--")
			return append(separated, args[i:]...)
		}

		name := strings.TrimLeft(arg, "-")
		if strings.Contains(name, "=") {
			continue
		}
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			continue
		}
		// Skip the flag's value
		i++
	}
	return args
}

func sample(ctx context.Context, cfg *Config, stdout io.Writer, logger *slog.Logger) error {
	rng := rand.New(rand.NewSource(cfg.Seed))
	sampler, err := genexpr.NewSampler(&cfg.SamplerParams, rng)
	if err != nil {
		return err
	}

	scorer, err := fitness.NewScorer(cfg.Target, cfg.EvaluationCacheSize)
	if err != nil {
		return err
	}

	samples, err := store.NewStore(cfg.Store, cfg.SQLitePath)
	if err != nil {
		return err
	}
	if err := samples.Init(ctx); err != nil {
		return fmt.Errorf("initializing %s store: %w", cfg.Store, err)
	}
	defer samples.Close()

	runID := store.NewRunID()
	logger.Debug("starting run", "run_id", runID, "seed", cfg.Seed, "store", cfg.Store)

	codec := sampler.Codec()
	logger.Debug("codec", "alphabet_size", codec.AlphabetSize(), "min_genes", codec.MinGeneCount(), "max_gene", codec.MaxGene())

	p := message.NewPrinter(language.English)
	p.Fprintf(stdout, "Attempting to find equation that evaluates to %v.\n", cfg.Target)
	p.Fprintf(stdout, "Bits per gene: %d bits.\n", codec.BitsPerGene())
	p.Fprintf(stdout, "Chromosome size: %d bytes.\n", codec.ByteSize())
	p.Fprintf(stdout, "Genes per chromosome: %d genes.\n", codec.GeneCount())

	chromosomes, err := sampler.SampleBatch()
	if err != nil {
		return err
	}

	startedAt := time.Now()
	results, err := scorer.ScoreAll(ctx, chromosomes, cfg.NumEvaluationWorkers)
	if err != nil {
		return err
	}
	logger.Debug("evaluated chromosomes", "count", len(results), "cached", scorer.Cached(), "elapsed", time.Since(startedAt))

	for i, result := range results {
		c := result.Chromosome
		fmt.Fprintf(stdout, "\nRandom chromosome: %s.\n", c.BinaryString())
		fmt.Fprintf(stdout, "  Symbols:    [%s]\n", c.SymbolString())
		fmt.Fprintf(stdout, "  Expression: %s\n", c.Expression())
		fmt.Fprintf(stdout, "  Value:      %s\n", formatValue(result.Value))
		p.Fprintf(stdout, "  Fitness:    %.6f\n", result.Fitness)

		if cfg.Verify {
			verify(logger, i, c, result.Value)
		}

		err := samples.SaveSample(ctx, store.Sample{
			RunID:      runID,
			Index:      i,
			Binary:     c.BinaryString(),
			Symbols:    c.SymbolString(),
			Expression: c.Expression(),
			Value:      result.Value,
			Target:     cfg.Target,
			Fitness:    result.Fitness,
			CreatedAt:  time.Now(),
		})
		if err != nil {
			return fmt.Errorf("saving sample %d: %w", i, err)
		}
	}

	if best, ok := fitness.Best(results); ok {
		fmt.Fprintf(stdout, "\nBest chromosome:\n%s\n", best.Chromosome.VerboseString())
	}

	logger.Info("run complete", "run_id", runID, "samples", len(results))
	return nil
}

func verify(logger *slog.Logger, index int, c *genexpr.Chromosome, value float64) {
	expression := c.Expression()
	infixValue, err := genexpr.EvaluateInfix(expression)
	if err != nil {
		logger.Warn("infix evaluation failed", "index", index, "expression", expression, "error", err)
		return
	}

	if infixValue != value && !(math.IsNaN(infixValue) && math.IsNaN(value)) {
		logger.Warn("infix evaluation mismatch", "index", index, "expression", expression, "postfix", value, "infix", infixValue)
		return
	}
	logger.Debug("infix evaluation matches", "index", index, "expression", expression)
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
