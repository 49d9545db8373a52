package fitness

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru"
	"github.com/sourcegraph/conc/pool"

	"github.com/they4kman/experimentation/machine-learning/genetic-algorithms/bitexpr/genexpr"
)

// Scorer evaluates Chromosomes and scores them against a target. Evaluations are
// remembered by the Chromosome's bytes together with the shape of its Codec, since the
// same bytes decode differently under another gene width.
type Scorer struct {
	target float64

	// nil when caching is disabled
	cache *lru.Cache
}

func NewScorer(target float64, cacheSize int) (*Scorer, error) {
	scorer := &Scorer{target: target}

	if cacheSize > 0 {
		cache, err := lru.New(cacheSize)
		if err != nil {
			return nil, fmt.Errorf("creating evaluation cache: %w", err)
		}
		scorer.cache = cache
	}

	return scorer, nil
}

func (s *Scorer) Target() float64 {
	return s.target
}

// Cached is the number of evaluations currently remembered
func (s *Scorer) Cached() int {
	if s.cache == nil {
		return 0
	}
	return s.cache.Len()
}

type cacheKey struct {
	alphabetSize int
	bitsPerGene  int
	genes        string
}

func (s *Scorer) evaluate(c *genexpr.Chromosome) float64 {
	if s.cache == nil {
		return c.Evaluate()
	}

	codec := c.Codec()
	key := cacheKey{
		alphabetSize: codec.AlphabetSize(),
		bitsPerGene:  codec.BitsPerGene(),
		genes:        string(c.Bytes()),
	}
	if value, ok := s.cache.Get(key); ok {
		return value.(float64)
	}

	value := c.Evaluate()
	s.cache.Add(key, value)
	return value
}

// Score evaluates a single Chromosome
func (s *Scorer) Score(c *genexpr.Chromosome) Result {
	value := s.evaluate(c)
	return Result{
		Chromosome: c,
		Value:      value,
		Fitness:    Fitness(value, s.target),
	}
}

// ScoreAll scores every Chromosome, preserving their order. With workers > 0, that
// many goroutines share the work; with workers == 0 everything runs on the caller's
// goroutine.
func (s *Scorer) ScoreAll(ctx context.Context, chromosomes []*genexpr.Chromosome, workers int) ([]Result, error) {
	results := make([]Result, len(chromosomes))

	if workers <= 0 {
		for i, chromosome := range chromosomes {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			results[i] = s.Score(chromosome)
		}
		return results, nil
	}

	p := pool.New().WithMaxGoroutines(workers).WithContext(ctx).WithCancelOnError()
	for i, chromosome := range chromosomes {
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = s.Score(chromosome)
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
