package cluster

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sizes(clusters []Cluster) []int {
	var res []int
	for _, c := range clusters {
		res = append(res, c.Size())
	}
	return res
}

func TestKMeansSeparatesDurations(t *testing.T) {
	values := []float64{0.25, 0.26, 0.24, 0.5, 0.51, 0.49, 0.5, 1.0, 1.01}
	clusters, err := KMeans(values, 3, 0)
	require.NoError(t, err)
	require.Len(t, clusters, 3)

	assert := assert.New(t)
	total := 0
	for _, c := range clusters {
		require.False(t, c.Empty())
		total += c.Size()
		for _, m := range c.Members {
			// every member sits close to its own center
			assert.InDelta(c.Center, m, 0.02)
		}
	}
	assert.Equal(len(values), total)

	idx, ok := Largest(clusters)
	require.True(t, ok)
	assert.Equal(4, clusters[idx].Size())
	assert.InDelta(0.5, clusters[idx].Mean(), 1e-9)
}

func TestKMeansFewerDistinctValuesThanK(t *testing.T) {
	clusters, err := KMeans([]float64{0.5, 0.5, 0.5, 0.5}, 4, 0)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal([]int{4, 0, 0, 0}, sizes(clusters))
	idx, ok := Largest(clusters)
	assert.True(ok)
	assert.Equal(0, idx)
	assert.Equal(0.5, clusters[idx].Mean())
}

func TestKMeansIsDeterministic(t *testing.T) {
	values := []float64{0.1, 0.3, 0.2, 0.9, 0.45, 0.31, 0.12, 0.6, 0.61}
	first, err := KMeans(values, 4, 7)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := KMeans(values, 4, 7)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestKMeansEmptyInput(t *testing.T) {
	clusters, err := KMeans(nil, 4, 0)
	require.NoError(t, err)
	assert.Len(t, clusters, 4)
	_, ok := Largest(clusters)
	assert.False(t, ok)
}

func TestKMeansRejectsNonPositiveK(t *testing.T) {
	_, err := KMeans([]float64{1}, 0, 0)
	assert.True(t, errors.Is(err, ErrInvalidK))
}

func TestLargestTieBreaksOnLowestIndex(t *testing.T) {
	clusters := []Cluster{
		{},
		{Members: []float64{1, 1}},
		{Members: []float64{2, 2}},
	}
	idx, ok := Largest(clusters)
	assert.True(t, ok)
	assert.Equal(t, 1, idx)
}
