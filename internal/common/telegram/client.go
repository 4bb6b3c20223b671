package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/catatduit/go-catatduit/internal/common/cache"
	"github.com/catatduit/go-catatduit/internal/common/httpclient"
	"github.com/catatduit/go-catatduit/internal/common/metrics"
	"github.com/catatduit/go-catatduit/internal/config"

	"github.com/go-resty/resty/v2"
)

// Client is the outbound side of the bot: the webhook receives updates, this
// sends replies and fetches photo files for OCR.
type Client interface {
	SendMessage(ctx context.Context, req SendMessageRequest) error
	AnswerCallbackQuery(ctx context.Context, req AnswerCallbackQueryRequest) error
	GetFile(ctx context.Context, fileID string) (*File, error)
	DownloadFile(ctx context.Context, filePath string) ([]byte, error)
	SetWebhook(ctx context.Context, url string) error
}

type client struct {
	conf    config.Telegram
	wrapper *httpclient.RequestWrapper
	// file downloads hit a different host path scheme, so a bare resty
	// client is kept alongside the wrapper.
	resty *resty.Client
	// getFile results stay valid for at least an hour on Telegram's side,
	// so repeated lookups for the same file_id are memoized.
	files *cache.InMemoryClient[File]
}

func New(conf config.Telegram, restyClient *resty.Client, m metrics.Metrics) Client {
	return &client{
		conf:    conf,
		wrapper: httpclient.NewRequestWrapper(restyClient, m, "telegram", "[TELEGRAM-CLIENT]"),
		resty:   restyClient,
		files:   cache.NewInMemoryClient[File](),
	}
}

func (c *client) methodURL(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", c.conf.BaseURL, c.conf.BotToken, method)
}

func (c *client) SendMessage(ctx context.Context, req SendMessageRequest) error {
	res, err := c.wrapper.DoRequest(ctx, "POST", c.methodURL("sendMessage"), func(r *resty.Request) *resty.Request {
		return r.SetHeader("Content-Type", "application/json").SetBody(req)
	})
	if err != nil {
		return err
	}

	return checkAPIResponse[json.RawMessage](res)
}

func (c *client) AnswerCallbackQuery(ctx context.Context, req AnswerCallbackQueryRequest) error {
	res, err := c.wrapper.DoRequest(ctx, "POST", c.methodURL("answerCallbackQuery"), func(r *resty.Request) *resty.Request {
		return r.SetHeader("Content-Type", "application/json").SetBody(req)
	})
	if err != nil {
		return err
	}

	return checkAPIResponse[json.RawMessage](res)
}

// SetWebhook points the bot at our webhook endpoint, with the secret Telegram
// echoes back on every delivery.
func (c *client) SetWebhook(ctx context.Context, url string) error {
	req := SetWebhookRequest{
		URL:            url,
		SecretToken:    c.conf.WebhookSecret,
		AllowedUpdates: []string{"message", "callback_query"},
	}

	res, err := c.wrapper.DoRequest(ctx, "POST", c.methodURL("setWebhook"), func(r *resty.Request) *resty.Request {
		return r.SetHeader("Content-Type", "application/json").SetBody(req)
	})
	if err != nil {
		return err
	}

	return checkAPIResponse[json.RawMessage](res)
}

func (c *client) GetFile(ctx context.Context, fileID string) (*File, error) {
	file, err := c.files.GetOrSet(ctx, cache.GetOrSetOpts[File]{
		Key: fileID,
		TTL: 30 * time.Minute,
		Callback: func() (File, error) {
			res, err := c.wrapper.DoRequest(ctx, "GET", c.methodURL("getFile"), func(r *resty.Request) *resty.Request {
				return r.SetQueryParam("file_id", fileID)
			})
			if err != nil {
				return File{}, err
			}

			var body apiResponse[File]
			if err := json.Unmarshal(res.Body(), &body); err != nil {
				return File{}, fmt.Errorf("failed to decode getFile response: %w", err)
			}
			if !body.OK {
				return File{}, fmt.Errorf("telegram api error %d: %s", body.ErrorCode, body.Description)
			}

			return body.Result, nil
		},
	})
	if err != nil {
		return nil, err
	}

	return &file, nil
}

func (c *client) DownloadFile(ctx context.Context, filePath string) ([]byte, error) {
	url := fmt.Sprintf("%s/file/bot%s/%s", c.conf.FileBaseURL, c.conf.BotToken, filePath)

	res, err := c.resty.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}
	if res.StatusCode() < 200 || res.StatusCode() >= 300 {
		return nil, fmt.Errorf("failed to download file: status %s", res.Status())
	}

	return res.Body(), nil
}

func checkAPIResponse[T any](res *resty.Response) error {
	var body apiResponse[T]
	if err := json.Unmarshal(res.Body(), &body); err != nil {
		return fmt.Errorf("failed to decode telegram response: %w", err)
	}
	if !body.OK {
		return fmt.Errorf("telegram api error %d: %s", body.ErrorCode, body.Description)
	}

	return nil
}
