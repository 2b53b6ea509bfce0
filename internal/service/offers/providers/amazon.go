package providers

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"

	"github.com/darkkaiser/linkcompra-server/internal/config"
	apperrors "github.com/darkkaiser/linkcompra-server/internal/pkg/errors"
	"github.com/darkkaiser/linkcompra-server/internal/pkg/money"
	"github.com/darkkaiser/linkcompra-server/internal/service/offers"
)

const (
	amazonBaseURL     = "https://webservices.amazon.com.br"
	amazonRegion      = "us-east-1"
	amazonService     = "ProductAdvertisingAPI"
	amazonMarketplace = "www.amazon.com.br"
	amazonTarget      = "com.amazon.paapi5.v1.ProductAdvertisingAPIv1.SearchItems"
	amazonStore       = "Amazon"
	amazonMaxLimit    = 10
)

var amazonResources = []string{
	"ItemInfo.Title",
	"Images.Primary.Medium",
	"Offers.Listings.Price",
	"Offers.Listings.MerchantInfo",
	"Offers.Listings.DeliveryInfo.IsFreeShippingEligible",
}

type amazonParams struct {
	BaseURL     string `json:"base_url"`
	AccessKey   string `json:"access_key"`
	SecretKey   string `json:"secret_key"`
	PartnerTag  string `json:"partner_tag"`
	Region      string `json:"region"`
	Marketplace string `json:"marketplace"`
}

type searchItemsRequest struct {
	Keywords    string   `json:"Keywords"`
	PartnerTag  string   `json:"PartnerTag"`
	PartnerType string   `json:"PartnerType"`
	Marketplace string   `json:"Marketplace"`
	ItemCount   int      `json:"ItemCount"`
	Resources   []string `json:"Resources"`
}

type amazon struct {
	*base

	partnerTag  string
	marketplace string
	region      string

	credentials aws.Credentials
	signer      *v4.Signer

	now func() time.Time
}

func newAmazon(cfg config.ProviderConfig) (offers.Provider, error) {
	params, err := decodeParams[amazonParams](cfg)
	if err != nil {
		return nil, err
	}
	switch {
	case params.AccessKey == "":
		return nil, missingParam(cfg.ID, "access_key")
	case params.SecretKey == "":
		return nil, missingParam(cfg.ID, "secret_key")
	case params.PartnerTag == "":
		return nil, missingParam(cfg.ID, "partner_tag")
	}

	baseURL := params.BaseURL
	if baseURL == "" {
		baseURL = amazonBaseURL
	}
	region := params.Region
	if region == "" {
		region = amazonRegion
	}
	marketplace := params.Marketplace
	if marketplace == "" {
		marketplace = amazonMarketplace
	}

	p := &amazon{
		base:        newBase(cfg, baseURL),
		partnerTag:  params.PartnerTag,
		marketplace: marketplace,
		region:      region,
		credentials: aws.Credentials{
			AccessKeyID:     params.AccessKey,
			SecretAccessKey: params.SecretKey,
			Source:          "linkcompra",
		},
		signer: v4.NewSigner(),
		now:    time.Now,
	}
	p.client.SetPreRequestHook(p.sign)

	return p, nil
}

// sign 재시도마다 새로 만들어지는 요청에 SigV4 서명을 붙입니다.
func (p *amazon) sign(_ *resty.Client, r *http.Request) error {
	var payload []byte
	if r.Body != nil {
		b, err := io.ReadAll(r.Body)
		if err != nil {
			return apperrors.Wrap(err, apperrors.Internal, "PA-API 요청 본문을 읽을 수 없습니다")
		}
		_ = r.Body.Close()

		payload = b
		r.Body = io.NopCloser(bytes.NewReader(b))
		r.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(b)), nil
		}
	}

	sum := sha256.Sum256(payload)
	if err := p.signer.SignHTTP(r.Context(), p.credentials, r, hex.EncodeToString(sum[:]), amazonService, p.region, p.now()); err != nil {
		return apperrors.Wrap(err, apperrors.Internal, "PA-API 요청 서명 실패")
	}
	return nil
}

func (p *amazon) Search(ctx context.Context, query string, limit int) ([]offers.Offer, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}

	resp, err := p.client.R().
		SetContext(ctx).
		SetHeaders(map[string]string{
			"Content-Type":     "application/json; charset=utf-8",
			"Content-Encoding": "amz-1.0",
			"X-Amz-Target":     amazonTarget,
		}).
		SetBody(searchItemsRequest{
			Keywords:    query,
			PartnerTag:  p.partnerTag,
			PartnerType: "Associates",
			Marketplace: p.marketplace,
			ItemCount:   clamp(limit, 1, amazonMaxLimit),
			Resources:   amazonResources,
		}).
		Post("/paapi5/searchitems")

	// 검색 결과가 없으면 PA-API는 404와 NoResults 코드로 응답한다.
	if err == nil && resp.StatusCode() == http.StatusNotFound &&
		gjson.GetBytes(resp.Body(), "Errors.0.Code").String() == "NoResults" {
		return nil, nil
	}
	if err := p.checkResponse(resp, err, func(body []byte) string {
		return gjson.GetBytes(body, "Errors.0.Message").String()
	}); err != nil {
		return nil, err
	}

	var result []offers.Offer
	gjson.GetBytes(resp.Body(), "SearchResult.Items").ForEach(func(_, item gjson.Result) bool {
		listing := item.Get("Offers.Listings.0")

		price, err := money.Parse(listing.Get("Price.Amount").String())
		if err != nil {
			return true
		}

		store := listing.Get("MerchantInfo.Name").String()
		if store == "" {
			store = amazonStore
		}

		result = append(result, offers.Offer{
			Provider:     p.name,
			Title:        item.Get("ItemInfo.Title.DisplayValue").String(),
			Price:        price,
			URL:          item.Get("DetailPageURL").String(),
			ImageURL:     item.Get("Images.Primary.Medium.URL").String(),
			Store:        store,
			FreeShipping: listing.Get("DeliveryInfo.IsFreeShippingEligible").Bool(),
		})
		return true
	})

	return result, nil
}
