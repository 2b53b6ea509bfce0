package providers

import (
	"context"
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/darkkaiser/linkcompra-server/internal/config"
	"github.com/darkkaiser/linkcompra-server/internal/pkg/money"
	"github.com/darkkaiser/linkcompra-server/internal/service/offers"
)

const (
	lomadeeBaseURL  = "https://api.lomadee.com"
	lomadeeMaxLimit = 100
)

type lomadeeParams struct {
	BaseURL  string `json:"base_url"`
	AppToken string `json:"app_token"`
	SourceID string `json:"source_id"`
}

type lomadee struct {
	*base

	appToken string
	sourceID string
}

func newLomadee(cfg config.ProviderConfig) (offers.Provider, error) {
	params, err := decodeParams[lomadeeParams](cfg)
	if err != nil {
		return nil, err
	}
	if params.AppToken == "" {
		return nil, missingParam(cfg.ID, "app_token")
	}
	if params.SourceID == "" {
		return nil, missingParam(cfg.ID, "source_id")
	}

	baseURL := params.BaseURL
	if baseURL == "" {
		baseURL = lomadeeBaseURL
	}

	return &lomadee{
		base:     newBase(cfg, baseURL),
		appToken: params.AppToken,
		sourceID: params.SourceID,
	}, nil
}

func (p *lomadee) Search(ctx context.Context, query string, limit int) ([]offers.Offer, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}

	resp, err := p.client.R().
		SetContext(ctx).
		SetPathParam("app_token", p.appToken).
		SetQueryParams(map[string]string{
			"sourceId": p.sourceID,
			"keyword":  query,
			"size":     strconv.Itoa(clamp(limit, 1, lomadeeMaxLimit)),
		}).
		Get("/v3/{app_token}/offer/_search")
	if err := p.checkResponse(resp, err, func(body []byte) string {
		return gjson.GetBytes(body, "requestInfo.message").String()
	}); err != nil {
		return nil, err
	}

	var result []offers.Offer
	gjson.GetBytes(resp.Body(), "offers").ForEach(func(_, item gjson.Result) bool {
		price, err := money.Parse(item.Get("price").String())
		if err != nil {
			return true
		}

		result = append(result, offers.Offer{
			Provider: p.name,
			Title:    item.Get("name").String(),
			Price:    price,
			URL:      item.Get("link").String(),
			ImageURL: item.Get("thumbnail").String(),
			Store:    item.Get("store.name").String(),
		})
		return true
	})

	return result, nil
}
