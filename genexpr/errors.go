package genexpr

import "errors"

var (
	ErrInvalidCodec    = errors.New("invalid codec")
	ErrGeneCount       = errors.New("unexpected number of genes")
	ErrGeneRange       = errors.New("gene out of range")
	ErrChromosomeSize  = errors.New("unexpected chromosome size")
	ErrUnknownSymbol   = errors.New("unrecognized gene value")
	ErrExpressionSize  = errors.New("expression does not fit in chromosome")
	ErrMalformedBinary = errors.New("malformed binary string")
	ErrSampleSize      = errors.New("invalid sample size")
)
