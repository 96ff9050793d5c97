package quantize

import (
	"math"

	"github.com/jsphweid/pianoscribe/model"
	"gonum.org/v1/gonum/mat"
)

// singular values below rcond times the largest are treated as zero
const rcond = 1e-15

type Weights struct {
	Alpha float64 // data fit
	Beta  float64 // tempo change penalty
	Gamma float64 // offset change penalty
}

// Refit solves for the offset and seconds per beat that best explain
// onset ≈ offset + position*secondsPerBeat, with two extra rows pulling the
// answer towards the current state:
//
//	√α [1  p_i] = √α t_i
//	√γ [1  0  ] = √γ offset
//	√β [0  1  ] = √β secondsPerBeat
//
// The system is solved with the SVD pseudo-inverse, so it also copes with
// rank deficient input such as a single onset with zero penalties.
func Refit(state model.TempoState, onsets, positions []float64, w Weights) (offset, secondsPerBeat float64, err error) {
	n := len(onsets)
	sa, sb, sg := math.Sqrt(w.Alpha), math.Sqrt(w.Beta), math.Sqrt(w.Gamma)

	a := mat.NewDense(n+2, 2, nil)
	b := mat.NewDense(n+2, 1, nil)
	for i := 0; i < n; i++ {
		a.Set(i, 0, sa)
		a.Set(i, 1, sa*positions[i])
		b.Set(i, 0, sa*onsets[i])
	}
	a.Set(n, 0, sg)
	b.Set(n, 0, sg*state.Offset)
	a.Set(n+1, 1, sb)
	b.Set(n+1, 0, sb*state.SecondsPerBeat())

	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return 0, 0, &ArithmeticError{Op: "tempo refit factorization", Value: math.NaN()}
	}
	rank := svd.Rank(rcond)
	if rank == 0 {
		return 0, 0, &ArithmeticError{Op: "tempo refit rank", Value: 0}
	}
	var x mat.Dense
	svd.SolveTo(&x, b, rank)

	offset, secondsPerBeat = x.At(0, 0), x.At(1, 0)
	if !finite(offset) {
		return 0, 0, &ArithmeticError{Op: "fitted offset", Value: offset}
	}
	if !finite(secondsPerBeat) || secondsPerBeat <= 0 {
		return 0, 0, &ArithmeticError{Op: "fitted seconds per beat", Value: secondsPerBeat}
	}
	return offset, secondsPerBeat, nil
}
