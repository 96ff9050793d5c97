// Package cluster groups one-dimensional values (inter-onset deltas) with
// k-means. Seeding is k-means++ driven by a caller-supplied seed, so the same
// input always produces the same clusters.
package cluster

import (
	"math"
	"math/rand"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const maxIterations = 300

var ErrInvalidK = errors.New("cluster count must be positive")

type Cluster struct {
	Center  float64
	Members []float64
}

func (c Cluster) Size() int {
	return len(c.Members)
}

func (c Cluster) Empty() bool {
	return len(c.Members) == 0
}

// Mean of the members. Callers must skip empty clusters.
func (c Cluster) Mean() float64 {
	return stat.Mean(c.Members, nil)
}

// KMeans always returns k clusters. When values hold fewer than k distinct
// numbers the surplus clusters come back empty.
func KMeans(values []float64, k int, seed int64) ([]Cluster, error) {
	if k <= 0 {
		return nil, errors.Wrapf(ErrInvalidK, "got %v", k)
	}
	res := make([]Cluster, k)
	if len(values) == 0 {
		return res, nil
	}

	centers := seedCenters(values, k, rand.New(rand.NewSource(seed)))
	labels := make([]int, len(values))
	for i := range labels {
		labels[i] = -1
	}

	for iter := 0; iter < maxIterations; iter++ {
		changed := false
		for i, v := range values {
			l := nearest(centers, v)
			if l != labels[i] {
				labels[i] = l
				changed = true
			}
		}
		if !changed {
			break
		}
		for c := range centers {
			var members []float64
			for i, v := range values {
				if labels[i] == c {
					members = append(members, v)
				}
			}
			// an empty cluster keeps its old center
			if len(members) > 0 {
				centers[c] = stat.Mean(members, nil)
			}
		}
	}

	for c, center := range centers {
		res[c].Center = center
	}
	for i, v := range values {
		res[labels[i]].Members = append(res[labels[i]].Members, v)
	}
	return res, nil
}

// Largest returns the index of the most populous non-empty cluster. Ties go
// to the lowest index. ok is false when every cluster is empty.
func Largest(clusters []Cluster) (idx int, ok bool) {
	best := 0
	idx = -1
	for i, c := range clusters {
		if c.Size() > best {
			best = c.Size()
			idx = i
		}
	}
	return idx, idx >= 0
}

func seedCenters(values []float64, k int, rng *rand.Rand) []float64 {
	centers := []float64{values[rng.Intn(len(values))]}
	d2 := make([]float64, len(values))
	for len(centers) < k {
		for i, v := range values {
			d := v - centers[nearest(centers, v)]
			d2[i] = d * d
		}
		total := floats.Sum(d2)
		if total == 0 {
			// every value already sits on a center
			break
		}
		r := rng.Float64() * total
		pick := -1
		var acc float64
		for i, w := range d2 {
			if w == 0 {
				continue
			}
			acc += w
			pick = i
			if acc > r {
				break
			}
		}
		centers = append(centers, values[pick])
	}
	return centers
}

func nearest(centers []float64, v float64) int {
	best := 0
	bestDist := math.Inf(1)
	for i, c := range centers {
		if d := math.Abs(v - c); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}
