package genexpr

import (
	"bytes"
	"io"
	"math"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
)

var _ = Describe("Chromosome", func() {
	var codec *Codec

	BeforeEach(func() {
		codec = DefaultCodec()
	})

	Describe("NewChromosome", func() {
		It("copies the buffer", func() {
			buf := []byte{0x34, 0xa2, 0xf5, 0x3c}
			chromosome, err := NewChromosome(codec, buf)
			Expect(err).ToNot(HaveOccurred())

			buf[0] = 0xff
			Expect(chromosome.Bytes()).To(Equal([]byte{0x34, 0xa2, 0xf5, 0x3c}))

			chromosome.Bytes()[1] = 0xff
			Expect(chromosome.Bytes()).To(Equal([]byte{0x34, 0xa2, 0xf5, 0x3c}))
		})

		It("rejects buffers of the wrong size", func() {
			_, err := NewChromosome(codec, []byte{0x34})
			Expect(err).To(MatchError(ErrChromosomeSize))
		})
	})

	Describe("a decoded chromosome", func() {
		var chromosome *Chromosome

		BeforeEach(func() {
			var err error
			chromosome, err = NewChromosome(codec, []byte{0x34, 0xa2, 0xf5, 0x3c})
			Expect(err).ToNot(HaveOccurred())
		})

		It("decodes its genes", func() {
			Expect(chromosome.Genes()).To(Equal([]int{3, 4, 10, 2, 15, 5, 3, 12}))
		})

		It("renders its bytes", func() {
			Expect(chromosome.BinaryString()).To(Equal("00110100 10100010 11110101 00111100"))
		})

		It("renders its symbols, with a space for genes without one", func() {
			Expect(chromosome.SymbolString()).To(Equal("3 4 + 2   5 3 *"))
			Expect(chromosome.String()).To(Equal(chromosome.SymbolString()))
		})

		It("renders its expression", func() {
			Expect(chromosome.Expression()).To(Equal("(5*3)"))
		})

		It("evaluates to the top of the stack", func() {
			Expect(chromosome.Evaluate()).To(Equal(15.0))
		})

		It("is not affected by changes to decoded genes", func() {
			genes := chromosome.Genes()
			genes[0] = 9
			Expect(chromosome.Genes()[0]).To(Equal(3))
		})

		It("always yields the same results", func() {
			genes := chromosome.Genes()
			value := chromosome.Evaluate()
			for i := 0; i < 10; i++ {
				Expect(chromosome.Genes()).To(Equal(genes))
				Expect(chromosome.Evaluate()).To(Equal(value))
			}
		})

		It("renders verbosely", func() {
			Expect(chromosome.VerboseString()).To(Equal(
				"00110100 10100010 11110101 00111100\n" +
					"3 4 + 2   5 3 *\n" +
					"  (5*3)\n" +
					"    = 15"))
		})
	})

	Describe("RandomChromosome", func() {
		It("reads its bytes from the source", func() {
			chromosome, err := RandomChromosome(codec, bytes.NewReader([]byte{0x34, 0xa2, 0xf5, 0x3c, 0x99}))
			Expect(err).ToNot(HaveOccurred())
			Expect(chromosome.Bytes()).To(Equal([]byte{0x34, 0xa2, 0xf5, 0x3c}))
		})

		It("fails when the source runs dry", func() {
			_, err := RandomChromosome(codec, bytes.NewReader([]byte{0x34}))
			Expect(err).To(MatchError(io.ErrUnexpectedEOF))
		})
	})

	DescribeTable("EncodeExpression",
		func(expression string, expectedGenes []int, expectedValue float64) {
			chromosome, err := EncodeExpression(codec, expression)
			Expect(err).ToNot(HaveOccurred())
			Expect(chromosome.Genes()).To(Equal(expectedGenes))
			Expect(chromosome.Evaluate()).To(Equal(expectedValue))
		},
		Entry("34+", "34+", []int{3, 4, 10, 14, 14, 14, 14, 14}, 7.0),
		Entry("52/", "52/", []int{5, 2, 13, 14, 14, 14, 14, 14}, 2.5),
		Entry("3 4 + 2 *", "3 4 + 2 *", []int{3, 4, 10, 2, 12, 14, 14, 14}, 14.0),
		Entry("full", "12+34*-5", []int{1, 2, 10, 3, 4, 12, 11, 5}, 5.0),
		Entry("empty", "", []int{14, 14, 14, 14, 14, 14, 14, 14}, 0.0),
	)

	It("refuses expressions longer than the chromosome", func() {
		_, err := EncodeExpression(codec, "123456789")
		Expect(err).To(MatchError(ErrExpressionSize))
	})

	It("refuses unknown symbols", func() {
		_, err := EncodeExpression(codec, "3x+")
		Expect(err).To(MatchError(ErrUnknownSymbol))
	})

	Context("when genes are too narrow for the whole alphabet", func() {
		BeforeEach(func() {
			var err error
			codec, err = NewCodec(8, 8)
			Expect(err).ToNot(HaveOccurred())
		})

		It("refuses symbols that do not fit", func() {
			_, err := EncodeExpression(codec, "34+12345")
			Expect(err).To(MatchError(ErrUnknownSymbol))
		})

		It("refuses expressions that would need padding", func() {
			_, err := EncodeExpression(codec, "34")
			Expect(err).To(MatchError(ErrExpressionSize))
		})

		It("accepts expressions filling every gene", func() {
			chromosome, err := EncodeExpression(codec, "01234567")
			Expect(err).ToNot(HaveOccurred())
			Expect(chromosome.Bytes()).To(Equal([]byte{0x05, 0x39, 0x77}))
			Expect(chromosome.Evaluate()).To(Equal(7.0))
		})
	})

	Describe("ChromosomeFromBinaryString", func() {
		It("parses BinaryString", func() {
			original, err := NewChromosome(codec, []byte{0x34, 0xa2, 0xf5, 0x3c})
			Expect(err).ToNot(HaveOccurred())

			parsed, err := ChromosomeFromBinaryString(codec, original.BinaryString())
			Expect(err).ToNot(HaveOccurred())
			Expect(parsed.Bytes()).To(Equal(original.Bytes()))
		})

		It("ignores spacing", func() {
			parsed, err := ChromosomeFromBinaryString(codec, "0011 0100 1010 0010 1111 0101 0011 1100")
			Expect(err).ToNot(HaveOccurred())
			Expect(parsed.Genes()).To(Equal([]int{3, 4, 10, 2, 15, 5, 3, 12}))
		})

		It("rejects non-binary digits", func() {
			_, err := ChromosomeFromBinaryString(codec, "00110100 10100010 11110101 0011110x")
			Expect(err).To(MatchError(ErrMalformedBinary))
		})

		It("rejects the wrong number of bits", func() {
			_, err := ChromosomeFromBinaryString(codec, "00110100")
			Expect(err).To(MatchError(ErrChromosomeSize))
		})
	})

	It("evaluates division by zero to infinity", func() {
		chromosome, err := EncodeExpression(codec, "50/")
		Expect(err).ToNot(HaveOccurred())
		Expect(math.IsInf(chromosome.Evaluate(), 1)).To(BeTrue())
	})
})
