package quantize

import (
	"math"

	"github.com/jsphweid/pianoscribe/cluster"
	"github.com/jsphweid/pianoscribe/model"
	"github.com/jsphweid/pianoscribe/onset"
)

type StaticAnalysis struct {
	Deltas   []float64
	Clusters []cluster.Cluster
	// index into Clusters, -1 when there were no deltas
	Largest      int
	Unit         float64
	RhythmValues []model.RhythmValue
}

// Static returns one rhythm value per onset: one per delta plus the
// terminator. Fewer than two onsets give an empty result.
func (q *Quantizer) Static(onsets []float64) ([]model.RhythmValue, error) {
	a, err := q.Analyze(onsets)
	if err != nil {
		return nil, err
	}
	return a.RhythmValues, nil
}

func (q *Quantizer) Analyze(onsets []float64) (*StaticAnalysis, error) {
	deltas := onset.Deltas(q.prepare(onsets))
	res := &StaticAnalysis{
		Deltas:       deltas,
		Largest:      -1,
		RhythmValues: []model.RhythmValue{},
	}
	if len(deltas) == 0 {
		return res, nil
	}

	clusters, err := cluster.KMeans(deltas, q.cfg.Clusters, q.cfg.Seed)
	if err != nil {
		return nil, err
	}
	res.Clusters = clusters

	largest, ok := cluster.Largest(clusters)
	if !ok {
		return nil, &ArithmeticError{Op: "unit duration from empty clusters", Value: math.NaN()}
	}
	res.Largest = largest
	res.Unit = clusters[largest].Mean()

	values, err := ToRhythmValues(deltas, res.Unit)
	if err != nil {
		return nil, err
	}
	res.RhythmValues = append(values, q.cfg.Terminator)
	return res, nil
}

// ToRhythmValues expresses each delta in half units: a delta equal to unit
// maps to 2, a quarter note in eighth counts. Halves round to even.
func ToRhythmValues(deltas []float64, unit float64) ([]model.RhythmValue, error) {
	if !finite(unit) || unit <= 0 {
		return nil, &ArithmeticError{Op: "unit duration", Value: unit}
	}
	res := make([]model.RhythmValue, 0, len(deltas)+1)
	for _, d := range deltas {
		res = append(res, model.RhythmValue(math.RoundToEven(d/unit*2)))
	}
	return res, nil
}
