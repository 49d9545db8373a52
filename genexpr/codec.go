package genexpr

import "fmt"

// maxBitsPerGene keeps decoded genes comfortably inside an int on every platform
const maxBitsPerGene = 24

// maxGeneCount bounds a chromosome's size so its bit count cannot overflow an int
const maxGeneCount = 1 << 24

// Codec packs fixed-width genes, most significant bit first, into a byte buffer whose
// size is padded up until the genes fill a whole number of bytes.
//
// A gene's width is the minimum number of bits able to index every symbol of the
// alphabet, so genes need not be byte-aligned and may straddle byte boundaries.
type Codec struct {
	alphabetSize int
	minGeneCount int

	bitsPerGene int
	byteSize    int
}

// NewCodec creates a Codec for an alphabet of alphabetSize symbols, fitting at least
// minGeneCount genes in each chromosome
func NewCodec(alphabetSize, minGeneCount int) (*Codec, error) {
	if alphabetSize < 2 {
		return nil, fmt.Errorf("%w: alphabet size %d must be at least 2", ErrInvalidCodec, alphabetSize)
	}
	if minGeneCount < 1 {
		return nil, fmt.Errorf("%w: minimum gene count %d must be positive", ErrInvalidCodec, minGeneCount)
	}
	if minGeneCount > maxGeneCount {
		return nil, fmt.Errorf("%w: minimum gene count %d exceeds %d", ErrInvalidCodec, minGeneCount, maxGeneCount)
	}

	bitsPerGene := BitsPerSymbol(alphabetSize)
	if bitsPerGene > maxBitsPerGene {
		return nil, fmt.Errorf("%w: alphabet size %d needs %d bits per gene (max %d)", ErrInvalidCodec, alphabetSize, bitsPerGene, maxBitsPerGene)
	}

	bits := minGeneCount * bitsPerGene
	for bits%8 != 0 {
		bits += bitsPerGene
	}

	return &Codec{
		alphabetSize: alphabetSize,
		minGeneCount: minGeneCount,
		bitsPerGene:  bitsPerGene,
		byteSize:     bits / 8,
	}, nil
}

// DefaultCodec returns a Codec for Alphabet with MinGeneCount genes
func DefaultCodec() *Codec {
	codec, err := NewCodec(len(Alphabet), MinGeneCount)
	if err != nil {
		panic(err)
	}
	return codec
}

func (c *Codec) AlphabetSize() int { return c.alphabetSize }
func (c *Codec) MinGeneCount() int { return c.minGeneCount }

// BitsPerGene is ceil(log2(alphabet size))
func (c *Codec) BitsPerGene() int { return c.bitsPerGene }

// ByteSize is the size in bytes of a single chromosome
func (c *Codec) ByteSize() int { return c.byteSize }

// GeneCount is the actual number of genes per chromosome, which may exceed MinGeneCount
func (c *Codec) GeneCount() int { return c.byteSize * 8 / c.bitsPerGene }

// MaxGene is the largest value a gene's bits can hold. Values from AlphabetSize up to
// MaxGene are valid bit patterns without a symbol.
func (c *Codec) MaxGene() int { return 1<<c.bitsPerGene - 1 }

// Gene extracts the i-th gene from buf. The caller must ensure the gene lies within buf.
func (c *Codec) Gene(buf []byte, i int) int {
	offset := i * c.bitsPerGene
	remaining := c.bitsPerGene

	gene := 0
	for remaining > 0 {
		byteIndex := offset / 8
		bitOffset := offset % 8

		// Number of this gene's bits held by the current byte
		take := 8 - bitOffset
		if take > remaining {
			take = remaining
		}

		// Drop the trailing bits belonging to the next gene, then mask away the leading
		// bits belonging to the previous one
		fragment := int(buf[byteIndex]>>(8-bitOffset-take)) & (1<<take - 1)
		gene = gene<<take | fragment

		offset += take
		remaining -= take
	}

	return gene
}

// Decode unpacks buf into its genes. Decoding never fails: every bit pattern yields a
// gene in [0, MaxGene()]. Only genes lying wholly within buf are decoded, and no more
// than GeneCount() of them.
func (c *Codec) Decode(buf []byte) []int {
	n := len(buf) * 8 / c.bitsPerGene
	if geneCount := c.GeneCount(); n > geneCount {
		n = geneCount
	}

	genes := make([]int, n)
	for i := range genes {
		genes[i] = c.Gene(buf, i)
	}
	return genes
}

// Encode packs genes into a new buffer of ByteSize() bytes; it is the exact inverse of
// Decode
func (c *Codec) Encode(genes []int) ([]byte, error) {
	if len(genes) != c.GeneCount() {
		return nil, fmt.Errorf("%w: got %d, expected %d", ErrGeneCount, len(genes), c.GeneCount())
	}

	buf := make([]byte, c.byteSize)
	maxGene := c.MaxGene()

	for i, gene := range genes {
		if gene < 0 || gene > maxGene {
			return nil, fmt.Errorf("%w: gene %d at position %d must be within [0, %d]", ErrGeneRange, gene, i, maxGene)
		}

		offset := i * c.bitsPerGene
		remaining := c.bitsPerGene
		for remaining > 0 {
			byteIndex := offset / 8
			bitOffset := offset % 8

			take := 8 - bitOffset
			if take > remaining {
				take = remaining
			}

			fragment := (gene >> (remaining - take)) & (1<<take - 1)
			buf[byteIndex] |= byte(fragment << (8 - bitOffset - take))

			offset += take
			remaining -= take
		}
	}

	return buf, nil
}
