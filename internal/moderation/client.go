package moderation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"time"

	"github.com/joshua-takyi/kedai/internal/config"
)

// Thresholds for rejecting an image: the nudity-safe score must be at
// least SafeMin and every risk category at most RiskMax.
const (
	SafeMin = 0.85
	RiskMax = 0.2
)

// Scores holds the per-category risk scores returned by the classifier.
type Scores struct {
	Nudity struct {
		Safe float64 `json:"safe"`
	} `json:"nudity"`
	Weapon  float64 `json:"weapon"`
	Alcohol float64 `json:"alcohol"`
	Drugs   float64 `json:"drugs"`
}

// Unsafe reports whether any threshold is breached.
func (s Scores) Unsafe() bool {
	return s.Nudity.Safe < SafeMin || s.Weapon > RiskMax || s.Alcohol > RiskMax || s.Drugs > RiskMax
}

// Client classifies uploaded images against an external moderation API.
type Client interface {
	Check(ctx context.Context, image []byte, filename, contentType string) (*Scores, error)
}

type HTTPClient struct {
	url        string
	apiUser    string
	apiSecret  string
	httpClient *http.Client
}

func NewHTTPClient(cfg *config.Config) *HTTPClient {
	return &HTTPClient{
		url:        cfg.SightengineURL,
		apiUser:    cfg.SightengineUser,
		apiSecret:  cfg.SightengineSecret,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Check posts the image with the nudity and weapons/alcohol/drugs models
// and decodes the per-category scores.
func (c *HTTPClient) Check(ctx context.Context, image []byte, filename, contentType string) (*Scores, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="media"; filename=%q`, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %v", err)
	}
	if _, err := part.Write(image); err != nil {
		return nil, fmt.Errorf("failed to build request: %v", err)
	}

	_ = writer.WriteField("models", "nudity,wad")
	_ = writer.WriteField("api_user", c.apiUser)
	_ = writer.WriteField("api_secret", c.apiSecret)
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to build request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("moderation request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("moderation API returned status %d: %s", resp.StatusCode, string(b))
	}

	var scores Scores
	if err := json.NewDecoder(resp.Body).Decode(&scores); err != nil {
		return nil, fmt.Errorf("failed to decode moderation response: %v", err)
	}
	return &scores, nil
}
