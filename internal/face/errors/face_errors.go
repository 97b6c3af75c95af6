package faceerrors

import (
	"net/http"

	"go-timeclock/internal/shared/apperror"
)

// Quality-gate errors are surfaced verbatim so the client can tell the user
// exactly how to retry the capture.
var (
	ErrNoFaceDetected = apperror.New(
		"NO_FACE_DETECTED",
		"No face was detected in the image",
		http.StatusUnprocessableEntity,
	)

	ErrMultipleFaces = apperror.New(
		"MULTIPLE_FACES",
		"More than one face was detected in the image",
		http.StatusUnprocessableEntity,
	)

	ErrLowConfidence = apperror.New(
		"LOW_CONFIDENCE",
		"Face detection confidence is too low",
		http.StatusUnprocessableEntity,
	)

	ErrBadFaceSize = apperror.New(
		"BAD_FACE_SIZE",
		"Face is too small or too large in the frame",
		http.StatusUnprocessableEntity,
	)
)

// Liveness errors are distinct from an identity mismatch so "spoofing
// suspected" and "wrong person" never blur together.
var (
	ErrStaticImageSuspected = apperror.New(
		"LIVENESS_STATIC_IMAGE",
		"Frames show no natural variation; a static image is suspected",
		http.StatusUnauthorized,
	)

	ErrInconsistentSuspected = apperror.New(
		"LIVENESS_INCONSISTENT",
		"Frames vary too much; an inconsistent or switched source is suspected",
		http.StatusUnauthorized,
	)

	ErrFrameCount = apperror.New(
		apperror.CodeInvalidInput,
		"Liveness verification requires exactly three frames",
		http.StatusBadRequest,
	)
)

var (
	ErrNotEnrolled = apperror.New(
		"NOT_ENROLLED",
		"Employee has no enrolled face descriptor",
		http.StatusNotFound,
	)

	ErrMalformedDescriptor = apperror.New(
		apperror.CodeInternalError,
		"Stored face descriptor is malformed",
		http.StatusInternalServerError,
	)

	ErrExtractionTimeout = apperror.New(
		apperror.CodeServiceUnavailable,
		"Face extraction timed out, please retry",
		http.StatusServiceUnavailable,
	)
)
