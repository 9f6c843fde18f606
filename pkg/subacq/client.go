package subacq

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dayvsonmarques/sub-acquirer-payments/pkg/httpclient"
	"go.uber.org/zap"
)

// Gateway performs one outbound call to a subacquirer and normalizes whatever
// comes back. It never mutates stored state and never lets a provider failure
// escape as a Go error; callers branch on Result.Success.
type Gateway interface {
	Send(ctx context.Context, op Operation, body map[string]any) Result
}

type gateway struct {
	cfg     Config
	profile Profile
	client  httpclient.HTTPClient
	logger  *zap.Logger
}

func NewGateway(cfg Config, profile Profile, client httpclient.HTTPClient, logger *zap.Logger) Gateway {
	return &gateway{cfg: cfg, profile: profile, client: client, logger: logger}
}

func (g *gateway) Send(ctx context.Context, op Operation, body map[string]any) Result {
	url := strings.TrimRight(g.cfg.BaseURL, "/") + "/" + string(op)

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return Result{Success: false, Error: fmt.Sprintf("encoding error: %v", err)}
	}

	headers := map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
	}

	callCtx, cancel := context.WithTimeout(ctx, g.cfg.timeout())
	defer cancel()

	resp, err := g.client.Post(callCtx, url, &buf, headers)
	if err != nil {
		g.logger.Error("Subacquirer request failed",
			zap.String("subacquirer", g.profile.Code()),
			zap.String("operation", string(op)),
			zap.String("url", url),
			zap.Error(err))

		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return Result{Success: false, Error: ErrCodeTimeout}
		}

		return Result{Success: false, Error: ErrCodeNetworkError}
	}

	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{Success: false, Error: ErrCodeNetworkError}
	}

	g.logger.Info("Subacquirer request",
		zap.String("subacquirer", g.profile.Code()),
		zap.String("operation", string(op)),
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.ByteString("response", raw))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return Result{
			Success: false,
			Raw:     raw,
			Error:   fmt.Sprintf("%s: status %d: %s", ErrCodeAPIError, resp.StatusCode, string(raw)),
		}
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return Result{
			Success: false,
			Raw:     raw,
			Error:   fmt.Sprintf("%s: invalid response body", ErrCodeAPIError),
		}
	}

	return Result{
		Success:    true,
		ExternalID: g.profile.ExtractExternalID(decoded),
		Raw:        raw,
	}
}
