package hyperbolic

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// StatusReady is the instance state in which generation requests succeed.
const StatusReady = "ready"

type rentRequest struct {
	Model    string  `json:"model_id"`
	MaxPrice float64 `json:"max_price"`
}

type rentResponse struct {
	GPUID string `json:"gpu_id"`
}

// RentGPU requests an instance able to serve the given model at or under
// maxPrice per hour, returning the instance ID. The instance usually needs
// WaitReady before it serves traffic.
func (c *Client) RentGPU(ctx context.Context, model string, maxPrice float64) (string, error) {
	var out rentResponse
	if err := c.do(ctx, http.MethodPost, "/v1/gpus/rent", &rentRequest{Model: model, MaxPrice: maxPrice}, &out); err != nil {
		return "", err
	}
	if out.GPUID == "" {
		return "", fmt.Errorf("rent response missing gpu id")
	}
	return out.GPUID, nil
}

type gpuStatusResponse struct {
	Status string `json:"status"`
}

// GPUStatus returns the instance's current state, e.g. "starting" or
// "ready".
func (c *Client) GPUStatus(ctx context.Context, gpuID string) (string, error) {
	var out gpuStatusResponse
	if err := c.do(ctx, http.MethodGet, "/v1/gpus/"+gpuID, nil, &out); err != nil {
		return "", err
	}
	return out.Status, nil
}

// ReleaseGPU returns a rented instance, stopping billing.
func (c *Client) ReleaseGPU(ctx context.Context, gpuID string) error {
	return c.do(ctx, http.MethodPost, "/v1/gpus/"+gpuID+"/release", nil, nil)
}

// WaitReady polls the instance status until it reports ready, an attempt
// budget runs out, or ctx is cancelled.
func (c *Client) WaitReady(ctx context.Context, gpuID string) error {
	interval := c.StatusPollInterval
	if interval <= 0 {
		interval = 5 * time.Second
	}
	maxChecks := c.StatusPollMax
	if maxChecks <= 0 {
		maxChecks = 10
	}

	for i := 0; i < maxChecks; i++ {
		status, err := c.GPUStatus(ctx, gpuID)
		if err != nil {
			return err
		}
		if status == StatusReady {
			return nil
		}
		if i == maxChecks-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
	return fmt.Errorf("gpu %s not ready after %d status checks", gpuID, maxChecks)
}
