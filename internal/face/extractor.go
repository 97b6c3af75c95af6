package face

import "context"

// Detection is one face found in an image.
type Detection struct {
	Descriptor Descriptor
	Confidence float64
	BoxRatio   float64 // face bounding-box area relative to the image area
}

// Extractor is the opaque feature-extraction capability. Implementations
// wrap whatever model runtime is deployed; the service only cares that it
// yields fixed-length descriptors. Detection is CPU-bound, so callers
// bound it with a context deadline.
//
//go:generate mockgen -source=extractor.go -destination=mock/extractor_mock.go -package=mock
type Extractor interface {
	Detect(ctx context.Context, image []byte) ([]Detection, error)
}
