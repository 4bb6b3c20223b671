package ocrclient

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/catatduit/go-catatduit/internal/common/httpclient"
	"github.com/catatduit/go-catatduit/internal/common/metrics"
	"github.com/catatduit/go-catatduit/internal/config"

	"github.com/go-resty/resty/v2"
)

// Provider turns a receipt image into raw text. Structuring that text is the
// receipt package's job; this only does image-to-text.
type Provider interface {
	ExtractText(ctx context.Context, image []byte) (string, error)
}

type extractRequest struct {
	ImageBase64 string `json:"imageBase64"`
	Languages   string `json:"languages"`
}

type extractResponse struct {
	Text string `json:"text"`
}

type client struct {
	conf    config.HTTPConfiguration
	wrapper *httpclient.RequestWrapper
}

func New(conf config.HTTPConfiguration, restyClient *resty.Client, m metrics.Metrics) Provider {
	return &client{
		conf:    conf,
		wrapper: httpclient.NewRequestWrapper(restyClient, m, "ocr-provider", "[OCR-CLIENT]"),
	}
}

func (c *client) ExtractText(ctx context.Context, image []byte) (string, error) {
	body := extractRequest{
		ImageBase64: base64.StdEncoding.EncodeToString(image),
		Languages:   "ind+eng",
	}

	res, err := c.wrapper.DoRequest(ctx, "POST", c.conf.BaseURL+"/v1/extract", func(r *resty.Request) *resty.Request {
		return r.
			SetHeader("Content-Type", "application/json").
			SetHeader("X-Secret-Key", c.conf.SecretKey).
			SetBody(body)
	})
	if err != nil {
		return "", err
	}

	if res.StatusCode() < 200 || res.StatusCode() >= 300 {
		return "", fmt.Errorf("ocr provider returned status %s", res.Status())
	}

	var out extractResponse
	if err := json.Unmarshal(res.Body(), &out); err != nil {
		return "", fmt.Errorf("failed to decode ocr response: %w", err)
	}

	return out.Text, nil
}
