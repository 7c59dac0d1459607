package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/shelfcam/shelfcam-api/internal/domain"
)

// Client talks to the external inference model server. The model itself is
// an opaque collaborator: image bytes go in, a detection report comes out.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a client for the configured model server.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Detect uploads the shelf image and decodes the model's detection report.
func (c *Client) Detect(ctx context.Context, filename string, image []byte, shelfNumber string) (*domain.DetectionReport, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(image); err != nil {
		return nil, err
	}
	if err := writer.WriteField("shelf_number", shelfNumber); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/detect", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("model server request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("model server returned %d: %s", resp.StatusCode, string(snippet))
	}

	var report domain.DetectionReport
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return nil, fmt.Errorf("decode detection report: %w", err)
	}
	if report.ShelfNumber == "" {
		report.ShelfNumber = shelfNumber
	}
	return &report, nil
}
