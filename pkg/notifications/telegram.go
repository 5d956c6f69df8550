package notifications

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/imroc/req/v3"
)

const DefaultTelegramURL = "https://api.telegram.org"

type Telegram struct {
	client   *req.Client
	apiToken string
	baseURL  string
}

func NewTelegram(
	apiToken string,
	cl *req.Client,
) *Telegram {
	return &Telegram{
		client:   cl,
		apiToken: apiToken,
		baseURL:  DefaultTelegramURL,
	}
}

func (t *Telegram) SendMessage(
	ctx context.Context,
	chatID int64,
	text string,
) error {
	return t.call(ctx, "sendMessage", map[string]interface{}{
		"chat_id": chatID,
		"text":    text,
	})
}

// React marks a forwarded webhook message as accepted.
func (t *Telegram) React(
	ctx context.Context,
	chatID int64,
	messageID int64,
	reaction string,
) error {
	return t.call(ctx, "setMessageReaction", map[string]interface{}{
		"chat_id":    chatID,
		"message_id": messageID,
		"reaction": []map[string]interface{}{
			{
				"type":  "emoji",
				"emoji": reaction,
			},
		},
	})
}

func (t *Telegram) call(
	ctx context.Context,
	method string,
	body map[string]interface{},
) error {
	resp, err := t.client.R().
		SetBody(body).
		SetContext(ctx).
		Post(fmt.Sprintf("%v/bot%v/%v", t.baseURL, t.apiToken, method))

	if err != nil {
		return errors.Wrapf(err, "telegram %s failed", method)
	}

	if resp.IsErrorState() {
		return errors.Newf("unexpected status code: %v and message %v", resp.StatusCode, resp.String())
	}

	return nil
}
