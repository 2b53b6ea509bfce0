package providers

import (
	"context"
	"net/url"
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/darkkaiser/linkcompra-server/internal/config"
	"github.com/darkkaiser/linkcompra-server/internal/pkg/money"
	"github.com/darkkaiser/linkcompra-server/internal/service/offers"
)

const (
	mercadoLivreBaseURL  = "https://api.mercadolibre.com"
	mercadoLivreSiteID   = "MLB"
	mercadoLivreStore    = "Mercado Livre"
	mercadoLivreMaxLimit = 50
)

type mercadoLivreParams struct {
	BaseURL      string `json:"base_url"`
	SiteID       string `json:"site_id"`
	AccessToken  string `json:"access_token"`
	AffiliateTag string `json:"affiliate_tag"`
}

type mercadoLivre struct {
	*base

	siteID       string
	affiliateTag string
}

func newMercadoLivre(cfg config.ProviderConfig) (offers.Provider, error) {
	params, err := decodeParams[mercadoLivreParams](cfg)
	if err != nil {
		return nil, err
	}

	baseURL := params.BaseURL
	if baseURL == "" {
		baseURL = mercadoLivreBaseURL
	}
	siteID := params.SiteID
	if siteID == "" {
		siteID = mercadoLivreSiteID
	}

	p := &mercadoLivre{
		base:         newBase(cfg, baseURL),
		siteID:       siteID,
		affiliateTag: params.AffiliateTag,
	}
	if params.AccessToken != "" {
		p.client.SetAuthToken(params.AccessToken)
	}
	return p, nil
}

func (p *mercadoLivre) Search(ctx context.Context, query string, limit int) ([]offers.Offer, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}

	resp, err := p.client.R().
		SetContext(ctx).
		SetPathParam("site_id", p.siteID).
		SetQueryParams(map[string]string{
			"q":     query,
			"limit": strconv.Itoa(clamp(limit, 1, mercadoLivreMaxLimit)),
		}).
		Get("/sites/{site_id}/search")
	if err := p.checkResponse(resp, err, func(body []byte) string {
		return gjson.GetBytes(body, "message").String()
	}); err != nil {
		return nil, err
	}

	var result []offers.Offer
	gjson.GetBytes(resp.Body(), "results").ForEach(func(_, item gjson.Result) bool {
		price, err := money.Parse(item.Get("price").String())
		if err != nil {
			return true
		}

		result = append(result, offers.Offer{
			Provider:     p.name,
			Title:        item.Get("title").String(),
			Price:        price,
			URL:          p.tagURL(item.Get("permalink").String()),
			ImageURL:     item.Get("thumbnail").String(),
			Store:        mercadoLivreStore,
			FreeShipping: item.Get("shipping.free_shipping").Bool(),
		})
		return true
	})

	return result, nil
}

// tagURL 제휴 태그가 설정되어 있으면 matt_tool 파라미터를 붙입니다.
func (p *mercadoLivre) tagURL(raw string) string {
	if p.affiliateTag == "" || raw == "" {
		return raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	q.Set("matt_tool", p.affiliateTag)
	u.RawQuery = q.Encode()
	return u.String()
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
