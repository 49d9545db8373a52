package genexpr

import (
	"fmt"

	"github.com/PaesslerAG/gval"
)

// ExprLang evaluates the infix renderings produced by Infix
var ExprLang = gval.NewLanguage(gval.Arithmetic())

func applyOperator(op byte, lhs, rhs float64) float64 {
	switch op {
	case '+':
		return lhs + rhs
	case '-':
		return lhs - rhs
	case '*':
		return lhs * rhs
	default:
		// Division by zero yields ±Inf or NaN, as float64 division does
		return lhs / rhs
	}
}

// Evaluate interprets genes as a postfix expression over Alphabet.
//
// Malformed programs are tolerated rather than rejected: genes without a symbol are
// skipped, as are operators with fewer than two operands on the stack. The result is the
// value on top of the stack once every gene is consumed, or 0 if nothing was pushed.
func Evaluate(genes []int) float64 {
	values := newStaticStack[float64](len(genes))

	for _, gene := range genes {
		symbol, ok := Symbol(gene)
		if !ok {
			continue
		}

		switch {
		case IsDigit(symbol):
			_ = values.Push(float64(symbol - '0'))
		case IsOperator(symbol):
			if values.Size() < 2 {
				// Not enough operands
				continue
			}

			rhs, _ := values.Pop()
			lhs, _ := values.Pop()
			_ = values.Push(applyOperator(symbol, lhs, rhs))
		}
	}

	result, err := values.Peek()
	if err != nil {
		return 0
	}
	return result
}

// Infix renders genes as a fully-parenthesised infix expression, following the same
// skipping rules as Evaluate. The rendering of the value Evaluate would return is
// produced, or "0" if nothing was pushed.
func Infix(genes []int) string {
	terms := newStaticStack[string](len(genes))

	for _, gene := range genes {
		symbol, ok := Symbol(gene)
		if !ok {
			continue
		}

		switch {
		case IsDigit(symbol):
			_ = terms.Push(string(symbol))
		case IsOperator(symbol):
			if terms.Size() < 2 {
				continue
			}

			rhs, _ := terms.Pop()
			lhs, _ := terms.Pop()
			_ = terms.Push("(" + lhs + string(symbol) + rhs + ")")
		}
	}

	expression, err := terms.Peek()
	if err != nil {
		return "0"
	}
	return expression
}

// EvaluateInfix evaluates an infix arithmetic expression, such as one rendered by Infix
func EvaluateInfix(expression string) (float64, error) {
	result, err := gval.Evaluate(expression, nil, ExprLang)
	if err != nil {
		return 0, err
	}

	value, isFloat := result.(float64)
	if !isFloat {
		return 0, fmt.Errorf("expected float result, got: %v", result)
	}
	return value, nil
}
