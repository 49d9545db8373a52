// Package fitness scores evaluated Chromosomes by their distance from a target value.
package fitness

import (
	"math"

	"github.com/they4kman/experimentation/machine-learning/genetic-algorithms/bitexpr/genexpr"
)

// Fitness is 1 when value hits target exactly, and otherwise 1 / |value - target|.
// Higher is better. An infinite value scores 0, and NaN scores NaN.
func Fitness(value, target float64) float64 {
	distance := math.Abs(value - target)
	if distance == 0 {
		return 1
	}
	return 1 / distance
}

type Result struct {
	Chromosome *genexpr.Chromosome
	Value      float64
	Fitness    float64
}

// Best returns the Result with the highest Fitness; NaN fitness ranks below all others
func Best(results []Result) (Result, bool) {
	bestIndex := -1
	for i, result := range results {
		if bestIndex == -1 {
			bestIndex = i
			continue
		}

		best := results[bestIndex].Fitness
		if math.IsNaN(best) && !math.IsNaN(result.Fitness) || result.Fitness > best {
			bestIndex = i
		}
	}

	if bestIndex == -1 {
		return Result{}, false
	}
	return results[bestIndex], true
}
