package face

import (
	"fmt"
	"math"
)

// Descriptor is the fixed-length feature vector the extractor produces for
// one face. All descriptors compared against each other must share the
// same length.
type Descriptor []float64

// EuclideanDistance returns the L2 norm between two equal-length
// descriptors. Symmetric by construction.
func EuclideanDistance(a, b Descriptor) (float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return 0, fmt.Errorf("descriptor is empty")
	}
	if len(a) != len(b) {
		return 0, fmt.Errorf("descriptor length mismatch: %d vs %d", len(a), len(b))
	}

	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum), nil
}

// MeanDescriptor averages descriptors component-wise. Liveness matching
// uses the mean of the three frames rather than any single one.
func MeanDescriptor(descs []Descriptor) (Descriptor, error) {
	if len(descs) == 0 {
		return nil, fmt.Errorf("no descriptors to average")
	}
	n := len(descs[0])
	for _, d := range descs {
		if len(d) != n {
			return nil, fmt.Errorf("descriptor length mismatch: %d vs %d", len(d), n)
		}
	}

	mean := make(Descriptor, n)
	for _, d := range descs {
		for i, v := range d {
			mean[i] += v
		}
	}
	for i := range mean {
		mean[i] /= float64(len(descs))
	}
	return mean, nil
}

// MatchResult is the outcome of one identity comparison.
type MatchResult struct {
	IsMatch    bool    `json:"is_match"`
	Distance   float64 `json:"distance"`
	Confidence float64 `json:"confidence"`
}

// Match compares a stored descriptor against a probe. Confidence collapses
// the unbounded distance into [0,1].
func Match(stored, probe Descriptor, threshold float64) (MatchResult, error) {
	dist, err := EuclideanDistance(stored, probe)
	if err != nil {
		return MatchResult{}, err
	}
	return MatchResult{
		IsMatch:    dist < threshold,
		Distance:   dist,
		Confidence: 1 - math.Min(dist, 1),
	}, nil
}
