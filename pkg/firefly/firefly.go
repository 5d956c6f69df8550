package firefly

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/imroc/req/v3"
)

const AccountTypeAsset = "asset"

type Firefly struct {
	cl         *req.Client
	apiKey     string
	fireflyURL string
}

func NewFirefly(
	apiKey string,
	fireflyURL string,
	cl *req.Client,
) *Firefly {
	return &Firefly{
		cl:         cl,
		fireflyURL: fireflyURL,
		apiKey:     apiKey,
	}
}

// ListAccounts returns Firefly accounts of the given type. An empty type lists everything.
func (f *Firefly) ListAccounts(ctx context.Context, accountType string) ([]*Account, error) {
	var apiResp GenericApiResponse[[]*Account]

	r := f.cl.R().
		SetContext(ctx).
		SetBearerAuthToken(f.apiKey).
		SetSuccessResult(&apiResp).
		SetQueryParam("limit", "100500")

	if accountType != "" {
		r.SetQueryParam("type", accountType)
	}

	resp, err := r.Get(f.fireflyURL + "/api/v1/accounts")
	if err != nil {
		return nil, errors.Wrap(err, "failed to list firefly accounts")
	}

	if resp.IsErrorState() {
		return nil, errors.Newf("got error response: %s", resp.String())
	}

	return apiResp.Data, nil
}
