package face

import (
	"os"
	"strconv"
	"time"
)

// Config carries every tunable of the biometric pipeline. Defaults match
// the thresholds the matcher was calibrated with; each can be overridden
// from the environment.
type Config struct {
	DetectConfidence float64       // minimum detector confidence
	MinBoxRatio      float64       // face box area / image area lower bound
	MaxBoxRatio      float64       // face box area / image area upper bound
	MatchThreshold   float64       // identity match distance threshold
	LivenessMinDist  float64       // below this the frames are a static image
	LivenessMaxDist  float64       // above this the frames are inconsistent
	ExtractTimeout   time.Duration // bound on one extraction
}

func DefaultConfig() Config {
	return Config{
		DetectConfidence: 0.5,
		MinBoxRatio:      0.02,
		MaxBoxRatio:      0.60,
		MatchThreshold:   0.45,
		LivenessMinDist:  0.03,
		LivenessMaxDist:  0.35,
		ExtractTimeout:   5 * time.Second,
	}
}

// ConfigFromEnv starts with defaults and applies any overrides present.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	cfg.DetectConfidence = envFloat("FACE_DETECT_CONFIDENCE", cfg.DetectConfidence)
	cfg.MinBoxRatio = envFloat("FACE_MIN_BOX_RATIO", cfg.MinBoxRatio)
	cfg.MaxBoxRatio = envFloat("FACE_MAX_BOX_RATIO", cfg.MaxBoxRatio)
	cfg.MatchThreshold = envFloat("FACE_MATCH_THRESHOLD", cfg.MatchThreshold)
	cfg.LivenessMinDist = envFloat("LIVENESS_MIN_DISTANCE", cfg.LivenessMinDist)
	cfg.LivenessMaxDist = envFloat("LIVENESS_MAX_DISTANCE", cfg.LivenessMaxDist)
	if raw := os.Getenv("FACE_EXTRACT_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			cfg.ExtractTimeout = d
		}
	}
	return cfg
}

func envFloat(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}
