package genexpr

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
)

// Chromosome is a fixed-size byte buffer read as a sequence of genes. It is never
// modified after construction.
type Chromosome struct {
	genes []byte
	codec *Codec

	decodeOnce sync.Once
	decoded    []int
}

// NewChromosome creates a Chromosome holding a copy of buf, which must be exactly
// codec.ByteSize() bytes long
func NewChromosome(codec *Codec, buf []byte) (*Chromosome, error) {
	if len(buf) != codec.ByteSize() {
		return nil, fmt.Errorf("%w: got %d bytes, expected %d", ErrChromosomeSize, len(buf), codec.ByteSize())
	}

	genes := make([]byte, len(buf))
	copy(genes, buf)
	return &Chromosome{
		genes: genes,
		codec: codec,
	}, nil
}

// RandomChromosome fills a new Chromosome with bytes read from rng
func RandomChromosome(codec *Codec, rng io.Reader) (*Chromosome, error) {
	genes := make([]byte, codec.ByteSize())
	if _, err := io.ReadFull(rng, genes); err != nil {
		return nil, fmt.Errorf("reading random chromosome: %w", err)
	}

	return &Chromosome{
		genes: genes,
		codec: codec,
	}, nil
}

// EncodeExpression creates a Chromosome from a postfix expression of Alphabet symbols,
// e.g. "34+". Spaces are ignored. Expressions shorter than the codec's GeneCount are
// padded with genes that have no symbol.
func EncodeExpression(codec *Codec, expression string) (*Chromosome, error) {
	expression = strings.ReplaceAll(expression, " ", "")
	if len(expression) > codec.GeneCount() {
		return nil, fmt.Errorf("%w: expression %q is longer than GeneCount (%d)", ErrExpressionSize, expression, codec.GeneCount())
	}

	padding := len(Alphabet)
	if len(expression) < codec.GeneCount() && padding > codec.MaxGene() {
		return nil, fmt.Errorf("%w: expression %q must have exactly %d genes, as no gene is left over for padding", ErrExpressionSize, expression, codec.GeneCount())
	}

	genes := make([]int, codec.GeneCount())
	for i := range genes {
		if i >= len(expression) {
			genes[i] = padding
			continue
		}

		gene, isValid := GeneOf(expression[i])
		if !isValid || gene > codec.MaxGene() {
			return nil, fmt.Errorf("%w: %q at position %d", ErrUnknownSymbol, expression[i], i)
		}
		genes[i] = gene
	}

	buf, err := codec.Encode(genes)
	if err != nil {
		return nil, err
	}

	return &Chromosome{
		genes: buf,
		codec: codec,
	}, nil
}

// ChromosomeFromBinaryString parses the output of BinaryString. Spaces are ignored.
func ChromosomeFromBinaryString(codec *Codec, binaryString string) (*Chromosome, error) {
	binaryString = strings.ReplaceAll(binaryString, " ", "")
	if len(binaryString) != codec.ByteSize()*8 {
		return nil, fmt.Errorf("%w: got %d bits, expected %d", ErrChromosomeSize, len(binaryString), codec.ByteSize()*8)
	}

	genes := make([]byte, codec.ByteSize())
	for i := range genes {
		for k, c := range binaryString[i*8 : (i+1)*8] {
			switch c {
			case '1':
				genes[i] |= 1 << (7 - k)
			case '0':
			default:
				return nil, fmt.Errorf("%w: unrecognized character %c, expected '1' or '0'", ErrMalformedBinary, c)
			}
		}
	}

	return &Chromosome{
		genes: genes,
		codec: codec,
	}, nil
}

func (c *Chromosome) Codec() *Codec {
	return c.codec
}

// Bytes returns a copy of the chromosome's raw buffer
func (c *Chromosome) Bytes() []byte {
	buf := make([]byte, len(c.genes))
	copy(buf, c.genes)
	return buf
}

// Genes returns the decoded gene values
func (c *Chromosome) Genes() []int {
	c.decodeOnce.Do(func() {
		c.decoded = c.codec.Decode(c.genes)
	})

	genes := make([]int, len(c.decoded))
	copy(genes, c.decoded)
	return genes
}

// BinaryString renders each byte as 8 binary digits, most significant bit first,
// separated by single spaces
func (c *Chromosome) BinaryString() string {
	var buf strings.Builder
	buf.Grow(len(c.genes)*9 - 1)

	lastIndex := len(c.genes) - 1
	for i, b := range c.genes {
		buf.WriteString(fmt.Sprintf("%08b", b))
		if i < lastIndex {
			buf.WriteByte(' ')
		}
	}
	return buf.String()
}

// SymbolString renders each gene as its Alphabet symbol, separated by single spaces.
// Genes without a symbol are rendered as a space.
func (c *Chromosome) SymbolString() string {
	genes := c.Genes()

	var buf strings.Builder
	buf.Grow(len(genes)*2 - 1)

	lastIndex := len(genes) - 1
	for i, gene := range genes {
		if symbol, ok := Symbol(gene); ok {
			buf.WriteByte(symbol)
		} else {
			buf.WriteByte(' ')
		}
		if i < lastIndex {
			buf.WriteByte(' ')
		}
	}
	return buf.String()
}

func (c *Chromosome) String() string {
	return c.SymbolString()
}

// Expression renders the chromosome's postfix program in infix notation
func (c *Chromosome) Expression() string {
	return Infix(c.Genes())
}

// Evaluate the postfix expression represented by this chromosome
func (c *Chromosome) Evaluate() float64 {
	return Evaluate(c.Genes())
}

func (c *Chromosome) VerboseString() string {
	value := strconv.FormatFloat(c.Evaluate(), 'f', -1, 64)
	return fmt.Sprintf("%s\n%s\n  %s\n    = %s", c.BinaryString(), c.SymbolString(), c.Expression(), value)
}
