package face

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// RemoteExtractor calls the detection sidecar that hosts the actual face
// model. The sidecar contract is one POST with the capture, answering with
// every detected face's descriptor, confidence and box ratio.
type RemoteExtractor struct {
	baseURL string
	client  *http.Client
}

func NewRemoteExtractor(baseURL string) *RemoteExtractor {
	return &RemoteExtractor{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type remoteDetectRequest struct {
	Image string `json:"image"`
}

type remoteDetection struct {
	Descriptor []float64 `json:"descriptor"`
	Confidence float64   `json:"confidence"`
	BoxRatio   float64   `json:"box_ratio"`
}

type remoteDetectResponse struct {
	Detections []remoteDetection `json:"detections"`
}

func (e *RemoteExtractor) Detect(ctx context.Context, image []byte) ([]Detection, error) {
	body, err := json.Marshal(remoteDetectRequest{
		Image: base64.StdEncoding.EncodeToString(image),
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/detect", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("face extractor returned status %d", resp.StatusCode)
	}

	var out remoteDetectResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}

	dets := make([]Detection, len(out.Detections))
	for i, d := range out.Detections {
		dets[i] = Detection{
			Descriptor: d.Descriptor,
			Confidence: d.Confidence,
			BoxRatio:   d.BoxRatio,
		}
	}
	return dets, nil
}
