package genexpr

import "math/bits"

// Alphabet lists every symbol a gene may decode to. A gene's value is the index of its
// symbol in Alphabet; values beyond the end of Alphabet carry no symbol.
const Alphabet = "0123456789+-*/"

// MinGeneCount is the minimum number of genes in a chromosome of the default Codec
// (increased as needed to pad the chromosome out to a whole number of bytes)
const MinGeneCount = 8

var GeneOperators = []byte("+-*/")
var GeneDigits = []byte("0123456789")

var valueGenes map[byte]int

var geneOperatorsSet map[byte]struct{}
var geneDigitsSet map[byte]struct{}

func init() {
	valueGenes = make(map[byte]int, len(Alphabet))
	for gene := 0; gene < len(Alphabet); gene++ {
		valueGenes[Alphabet[gene]] = gene
	}

	geneOperatorsSet = make(map[byte]struct{})
	for _, op := range GeneOperators {
		geneOperatorsSet[op] = struct{}{}
	}

	geneDigitsSet = make(map[byte]struct{})
	for _, digit := range GeneDigits {
		geneDigitsSet[digit] = struct{}{}
	}
}

// Symbol returns the Alphabet character for gene, and false if gene has no symbol
func Symbol(gene int) (byte, bool) {
	if gene < 0 || gene >= len(Alphabet) {
		return 0, false
	}
	return Alphabet[gene], true
}

// GeneOf returns the gene value encoding symbol
func GeneOf(symbol byte) (int, bool) {
	gene, ok := valueGenes[symbol]
	return gene, ok
}

func IsOperator(symbol byte) bool {
	_, ok := geneOperatorsSet[symbol]
	return ok
}

func IsDigit(symbol byte) bool {
	_, ok := geneDigitsSet[symbol]
	return ok
}

// BitsPerSymbol returns the number of bits needed to represent every index of an
// alphabet with n symbols, i.e. ceil(log2(n)). At least one bit is always used.
func BitsPerSymbol(n int) int {
	if n <= 2 {
		return 1
	}
	return bits.Len(uint(n - 1))
}
