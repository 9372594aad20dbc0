package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/expensewise/bill-digitizer/internal/fields"
)

// Config configures the Ollama chat client.
type Config struct {
	BaseURL     string        // default http://localhost:11434
	Model       string        // default llama3.1:8b
	Temperature float64
	Timeout     time.Duration // default 30s
	PromptDir   string        // optional prompt template directory
}

// Client implements FieldExtractor against Ollama's chat API.
type Client struct {
	cfg    Config
	hc     *http.Client
	logger *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:11434"
	}
	if cfg.Model == "" {
		cfg.Model = "llama3.1:8b"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		cfg:    cfg,
		hc:     &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

type chatRequest struct {
	Model    string         `json:"model"`
	Messages []chatMessage  `json:"messages"`
	Stream   bool           `json:"stream"`
	Options  map[string]any `json:"options,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Message chatMessage `json:"message"`
	Done    bool        `json:"done"`
}

// ExtractFields sends the reconstructed text to the model and parses the
// reply into a raw field mapping. The reply content is returned alongside for
// audit. A reply that is not valid JSON after cleanup surfaces as a
// *fields.MalformedResponseError; that failure is terminal for the document.
func (c *Client) ExtractFields(ctx context.Context, req ExtractRequest) (fields.RawExtraction, []byte, error) {
	reqID := uuid.New().String()
	start := time.Now()

	prompt := BuildPrompt(req, c.cfg.PromptDir)

	c.logger.Info("llm.extract.start",
		"req_id", reqID,
		"model", c.cfg.Model,
		"configuration", req.Configuration,
		"text_len", len(req.OCRText),
		"filename", req.FilenameHint,
	)

	body := chatRequest{
		Model:  c.cfg.Model,
		Stream: false,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
		Options: map[string]any{"temperature": c.cfg.Temperature},
	}
	bs, err := json.Marshal(body)
	if err != nil {
		return nil, nil, fmt.Errorf("encode request: %w", err)
	}

	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/api/chat"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bs))
	if err != nil {
		return nil, nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(httpReq)
	if err != nil {
		c.logger.Error("llm.extract.http_error", "req_id", reqID, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds())
		return nil, nil, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Warn("llm.extract.response_body_close_error", "req_id", reqID, "error", cerr)
		}
	}()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		c.logger.Error("llm.extract.status_error", "req_id", reqID, "status", resp.StatusCode,
			"elapsed_ms", time.Since(start).Milliseconds())
		return nil, raw, fmt.Errorf("ollama non-2xx status: %d", resp.StatusCode)
	}

	var decoded chatResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, raw, fmt.Errorf("decode ollama response: %w", err)
	}
	content := []byte(decoded.Message.Content)

	parsed, err := fields.ParseResponse(decoded.Message.Content)
	if err != nil {
		c.logger.Error("llm.extract.malformed_response", "req_id", reqID, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds())
		return nil, content, err
	}

	c.logger.Info("llm.extract.ok",
		"req_id", reqID,
		"fields", len(parsed),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return parsed, content, nil
}
