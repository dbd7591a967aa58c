// Package optim searches input parameters for the frame that minimizes a
// derived quantity, for example the boost that cancels the electric field.
package optim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/fieldboost/internal/lorentz"
	"github.com/san-kum/fieldboost/internal/sweep"
)

// ErrInvalidGrid indicates step counts or a speed limit that span no grid.
var ErrInvalidGrid = errors.New("optim: invalid grid")

// Objective scores one parameter assignment; lower is better. Non-finite
// scores are never chosen.
type Objective func(params map[string]float64) float64

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Search evaluates the objective on every grid point and returns the best.
// It returns a nil map when no point had a finite score.
func (g *GridSearch) Search(ctx context.Context, objective Objective) (map[string]float64, float64, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, 0, fmt.Errorf("optim: %d parameters but %d ranges", len(g.paramNames), len(g.ranges))
	}
	best := math.Inf(1)
	var bestParams map[string]float64
	err := g.searchRecursive(ctx, 0, make(map[string]float64), objective, &best, &bestParams)
	return bestParams, best, err
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	objective Objective,
	best *float64,
	bestParams *map[string]float64,
) error {
	if depth == len(g.paramNames) {
		val := objective(current)
		if !math.IsNaN(val) && val < *best {
			*best = val
			*bestParams = make(map[string]float64, len(current))
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	name := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		current[name] = val
		if err := g.searchRecursive(ctx, depth+1, current, objective, best, bestParams); err != nil {
			return err
		}
	}
	delete(current, name)
	return nil
}

// QuantityObjective scores parameter assignments, named as in
// sweep.Parameters, by one component of the engine output for base.
// With maximize set the score is negated.
func QuantityObjective(base lorentz.Input, quantity, component string, maximize bool) (Objective, error) {
	pick, err := sweep.Selector(quantity, component)
	if err != nil {
		return nil, err
	}
	sign := 1.0
	if maximize {
		sign = -1
	}
	return func(params map[string]float64) float64 {
		in := base
		for name, v := range params {
			sweep.Set(&in, name, v)
		}
		v := sign * pick(lorentz.Compute(in))
		if math.IsInf(v, 0) {
			return math.NaN()
		}
		return v
	}, nil
}

// BoostGrid spans boost speed, polar angle and azimuth. Speeds run from 0
// to maxSpeed; polar angles cover [0, π] and azimuths [-π, π).
func BoostGrid(maxSpeed float64, speedSteps, angleSteps int) (*GridSearch, error) {
	if speedSteps < 1 || angleSteps < 1 {
		return nil, fmt.Errorf("%w: need at least 1 speed and 1 angle step, got %d and %d", ErrInvalidGrid, speedSteps, angleSteps)
	}
	if !(maxSpeed > 0 && maxSpeed < 1) {
		return nil, fmt.Errorf("%w: max speed %v outside (0, 1)", ErrInvalidGrid, maxSpeed)
	}
	speeds := span(0, maxSpeed, speedSteps)
	phis := span(0, math.Pi, angleSteps/2+1)
	thetas := make([]float64, angleSteps)
	for i := range thetas {
		thetas[i] = -math.Pi + 2*math.Pi*float64(i)/float64(angleSteps)
	}
	return NewGridSearch([]string{"speed", "phi", "theta"}, [][]float64{speeds, phis, thetas}), nil
}

func span(lo, hi float64, n int) []float64 {
	if n < 2 {
		return []float64{lo}
	}
	return floats.Span(make([]float64, n), lo, hi)
}
