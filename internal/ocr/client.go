package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ClientConfig configures the HTTP client for the OCR inference service.
type ClientConfig struct {
	BaseURL string        // e.g. http://localhost:8868
	Timeout time.Duration // default 60s
}

// Client talks to a remote OCR inference service that returns positioned
// detections per page.
type Client struct {
	cfg    ClientConfig
	hc     *http.Client
	logger *slog.Logger
}

func NewClient(cfg ClientConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &Client{
		cfg:    cfg,
		hc:     &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

type recognizeRequest struct {
	Filename string `json:"filename"`
	Content  string `json:"content"` // base64
}

type recognizeResponse struct {
	Pages []Page `json:"pages"`
}

// Recognize sends the file to the OCR service and returns its per-page
// detections.
func (c *Client) Recognize(ctx context.Context, filename string, data []byte) ([]Page, error) {
	reqID := uuid.New().String()
	start := time.Now()

	body := recognizeRequest{
		Filename: filename,
		Content:  base64.StdEncoding.EncodeToString(data),
	}
	bs, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/predict/ocr"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bs))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Info("ocr.http.request",
		"req_id", reqID,
		"url", url,
		"filename", filename,
		"content_length", len(data),
	)

	resp, err := c.hc.Do(req)
	if err != nil {
		c.logger.Error("ocr.http.send_error", "req_id", reqID, "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return nil, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Warn("ocr.http.response_body_close_error", "req_id", reqID, "error", cerr)
		}
	}()

	raw, _ := io.ReadAll(resp.Body)

	c.logger.Info("ocr.http.response",
		"req_id", reqID,
		"status", resp.StatusCode,
		"bytes", len(raw),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("ocr service non-2xx status: %d", resp.StatusCode)
	}

	var decoded recognizeResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("decode ocr response: %w", err)
	}
	return decoded.Pages, nil
}
