package genexpr

import (
	"fmt"
	"io"
)

type SamplerParams struct {
	// Minimum number of genes each Chromosome will have. The actual count may be higher,
	// so that the genes fill a whole number of bytes.
	MinGeneCount int `toml:"min_gene_count"`

	// Number of random Chromosomes created by SampleBatch
	SampleSize int `toml:"sample_size"`
}

func DefaultSamplerParams() *SamplerParams {
	return &SamplerParams{
		MinGeneCount: MinGeneCount,
		SampleSize:   5,
	}
}

// Sampler creates random Chromosomes for a Codec from an injected source of randomness
type Sampler struct {
	codec      *Codec
	rng        io.Reader
	sampleSize int
}

func NewSampler(params *SamplerParams, rng io.Reader) (*Sampler, error) {
	if params.SampleSize < 0 {
		return nil, fmt.Errorf("%w: %d must not be negative", ErrSampleSize, params.SampleSize)
	}

	codec, err := NewCodec(len(Alphabet), params.MinGeneCount)
	if err != nil {
		return nil, err
	}

	return &Sampler{
		codec:      codec,
		rng:        rng,
		sampleSize: params.SampleSize,
	}, nil
}

func (s *Sampler) Codec() *Codec {
	return s.codec
}

// RandomChromosome creates a new Chromosome from the Sampler's source
func (s *Sampler) RandomChromosome() (*Chromosome, error) {
	return RandomChromosome(s.codec, s.rng)
}

// Sample creates n random Chromosomes
func (s *Sampler) Sample(n int) ([]*Chromosome, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d must not be negative", ErrSampleSize, n)
	}

	chromosomes := make([]*Chromosome, n)
	for i := range chromosomes {
		chromosome, err := s.RandomChromosome()
		if err != nil {
			return nil, fmt.Errorf("sampling chromosome %d of %d: %w", i+1, n, err)
		}
		chromosomes[i] = chromosome
	}
	return chromosomes, nil
}

// SampleBatch creates SampleSize random Chromosomes
func (s *Sampler) SampleBatch() ([]*Chromosome, error) {
	return s.Sample(s.sampleSize)
}
