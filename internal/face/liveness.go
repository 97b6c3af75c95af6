package face

import faceerrors "go-timeclock/internal/face/errors"

// LivenessResult classifies one three-frame authentication attempt.
type LivenessResult string

const (
	Live                  LivenessResult = "live"
	StaticImageSuspected  LivenessResult = "static_image_suspected"
	InconsistentSuspected LivenessResult = "inconsistent_suspected"
)

// LivenessFrames is the required number of short-interval captures per
// attempt. The frames are ephemeral and never persisted.
const LivenessFrames = 3

// AssessLiveness classifies three descriptors from one attempt by their
// mean pairwise distance. Near-zero variance means the "frames" are the
// same static picture; excessive variance means a switched subject or
// source. Natural micro-movement lands in between.
func AssessLiveness(descs []Descriptor, minDist, maxDist float64) (LivenessResult, float64, error) {
	if len(descs) != LivenessFrames {
		return "", 0, faceerrors.ErrFrameCount
	}

	var sum float64
	var pairs int
	for i := 0; i < len(descs); i++ {
		for j := i + 1; j < len(descs); j++ {
			d, err := EuclideanDistance(descs[i], descs[j])
			if err != nil {
				return "", 0, err
			}
			sum += d
			pairs++
		}
	}
	avgDist := sum / float64(pairs)

	switch {
	case avgDist < minDist:
		return StaticImageSuspected, avgDist, nil
	case avgDist > maxDist:
		return InconsistentSuspected, avgDist, nil
	default:
		return Live, avgDist, nil
	}
}
