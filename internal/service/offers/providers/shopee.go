package providers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"time"

	"github.com/tidwall/gjson"

	"github.com/darkkaiser/linkcompra-server/internal/config"
	apperrors "github.com/darkkaiser/linkcompra-server/internal/pkg/errors"
	"github.com/darkkaiser/linkcompra-server/internal/pkg/money"
	"github.com/darkkaiser/linkcompra-server/internal/service/offers"
)

const (
	shopeeBaseURL  = "https://open-api.affiliate.shopee.com.br"
	shopeeMaxLimit = 50

	// shopeeQuery sortType 2는 판매량 내림차순입니다.
	shopeeQuery = `query ProductOffers($keyword: String, $limit: Int) {
  productOfferV2(keyword: $keyword, limit: $limit, sortType: 2) {
    nodes { productName priceMin offerLink imageUrl shopName }
  }
}`
)

type shopeeParams struct {
	BaseURL string `json:"base_url"`
	AppID   string `json:"app_id"`
	Secret  string `json:"secret"`
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type shopee struct {
	*base

	appID  string
	secret string

	now func() time.Time
}

func newShopee(cfg config.ProviderConfig) (offers.Provider, error) {
	params, err := decodeParams[shopeeParams](cfg)
	if err != nil {
		return nil, err
	}
	if params.AppID == "" {
		return nil, missingParam(cfg.ID, "app_id")
	}
	if params.Secret == "" {
		return nil, missingParam(cfg.ID, "secret")
	}

	baseURL := params.BaseURL
	if baseURL == "" {
		baseURL = shopeeBaseURL
	}

	return &shopee{
		base:   newBase(cfg, baseURL),
		appID:  params.AppID,
		secret: params.Secret,
		now:    time.Now,
	}, nil
}

func (p *shopee) Search(ctx context.Context, query string, limit int) ([]offers.Offer, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}

	// 서명 대상과 전송 본문이 바이트 단위로 같아야 하므로 직접 직렬화한다.
	payload, err := json.Marshal(graphQLRequest{
		Query: shopeeQuery,
		Variables: map[string]any{
			"keyword": query,
			"limit":   clamp(limit, 1, shopeeMaxLimit),
		},
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.Internal, "Shopee 요청 본문 직렬화 실패")
	}

	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", p.authorization(payload)).
		SetBody(payload).
		Post("/graphql")
	if err := p.checkResponse(resp, err, graphQLErrorMessage); err != nil {
		return nil, err
	}

	// GraphQL은 오류도 200으로 응답한다.
	if msg := graphQLErrorMessage(resp.Body()); msg != "" {
		return nil, apperrors.Newf(apperrors.ExecutionFailed, "오퍼 제공자(%s) GraphQL 오류: %s", p.name, msg)
	}

	var result []offers.Offer
	gjson.GetBytes(resp.Body(), "data.productOfferV2.nodes").ForEach(func(_, item gjson.Result) bool {
		price, err := money.Parse(item.Get("priceMin").String())
		if err != nil {
			return true
		}

		result = append(result, offers.Offer{
			Provider: p.name,
			Title:    item.Get("productName").String(),
			Price:    price,
			URL:      item.Get("offerLink").String(),
			ImageURL: item.Get("imageUrl").String(),
			Store:    item.Get("shopName").String(),
		})
		return true
	})

	return result, nil
}

// authorization SHA256 Credential={appId}, Timestamp={ts}, Signature={sha256(appId+ts+payload+secret)}
func (p *shopee) authorization(payload []byte) string {
	ts := strconv.FormatInt(p.now().Unix(), 10)

	h := sha256.New()
	h.Write([]byte(p.appID))
	h.Write([]byte(ts))
	h.Write(payload)
	h.Write([]byte(p.secret))

	return "SHA256 Credential=" + p.appID + ", Timestamp=" + ts + ", Signature=" + hex.EncodeToString(h.Sum(nil))
}

func graphQLErrorMessage(body []byte) string {
	return gjson.GetBytes(body, "errors.0.message").String()
}
