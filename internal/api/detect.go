package api

import (
	"context"
	"fmt"
	"io"
)

// Classify submits a fecal image for disease classification. The response is
// validated at the boundary: a confidence outside [0,1] is an error, never
// rendered.
func (c *Client) Classify(ctx context.Context, filename string, image io.Reader) (ClassificationResult, error) {
	var out ClassificationResult
	if err := c.upload(ctx, c.std, "/detect/classify", filename, image, &out); err != nil {
		return ClassificationResult{}, err
	}
	if out.Confidence < 0 || out.Confidence > 1 {
		return ClassificationResult{}, fmt.Errorf("classify: confidence %v out of range", out.Confidence)
	}
	return out, nil
}

// Detect submits a flock photo and returns per-chicken detections plus an
// annotated image.
func (c *Client) Detect(ctx context.Context, filename string, image io.Reader) (DetectionResult, error) {
	var out DetectionResult
	if err := c.upload(ctx, c.std, "/detect/detect", filename, image, &out); err != nil {
		return DetectionResult{}, err
	}
	for _, box := range out.Detections {
		if box.Confidence < 0 || box.Confidence > 1 {
			return DetectionResult{}, fmt.Errorf("detect: box %d confidence %v out of range", box.ID, box.Confidence)
		}
	}
	return out, nil
}

// VideoAnalyze submits a video for the long-running flock analysis job. The
// call blocks until the server finishes; it uses the extended timeout.
func (c *Client) VideoAnalyze(ctx context.Context, filename string, video io.Reader) (VideoAnalysis, error) {
	var out VideoAnalysis
	err := c.upload(ctx, c.long, "/detect/video_analyze", filename, video, &out)
	return out, err
}

// ConfidencePercent converts a [0,1] confidence into the percentage shown to
// users: round(c*100).
func ConfidencePercent(confidence float64) int {
	return int(confidence*100 + 0.5)
}
