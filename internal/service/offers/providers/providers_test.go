package providers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darkkaiser/linkcompra-server/internal/config"
	apperrors "github.com/darkkaiser/linkcompra-server/internal/pkg/errors"
	"github.com/darkkaiser/linkcompra-server/internal/pkg/money"
)

func TestNew(t *testing.T) {
	t.Run("Success_SkipsDisabled", func(t *testing.T) {
		got, err := New([]config.ProviderConfig{
			{ID: config.ProviderMercadoLivre, Enabled: true},
			{ID: config.ProviderLomadee, Enabled: false},
		})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, config.ProviderMercadoLivre, got[0].Name())
	})

	t.Run("Success_TimeoutFromConfig", func(t *testing.T) {
		got, err := New([]config.ProviderConfig{
			{ID: config.ProviderMercadoLivre, Enabled: true, Timeout: 3 * time.Second},
		})
		require.NoError(t, err)
		assert.Equal(t, 3*time.Second, got[0].(*mercadoLivre).Timeout())
	})

	t.Run("Failure_UnknownProvider", func(t *testing.T) {
		_, err := New([]config.ProviderConfig{{ID: "ebay", Enabled: true}})
		assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
	})

	t.Run("Failure_MissingParams", func(t *testing.T) {
		for _, id := range []string{config.ProviderAmazon, config.ProviderShopee, config.ProviderLomadee} {
			_, err := New([]config.ProviderConfig{{ID: id, Enabled: true}})
			assert.True(t, apperrors.Is(err, apperrors.InvalidInput), id)
		}
	})
}

func TestMercadoLivre_Search(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		var gotPath, gotQuery, gotLimit, gotAuth string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotQuery = r.URL.Query().Get("q")
			gotLimit = r.URL.Query().Get("limit")
			gotAuth = r.Header.Get("Authorization")

			_, _ = io.WriteString(w, `{"results":[
				{"title":"SSD Kingston 480GB","price":199.9,"permalink":"https://produto.mercadolivre.com.br/MLB-1","thumbnail":"https://http2.mlstatic.com/1.jpg","shipping":{"free_shipping":true}},
				{"title":"Sem preço","price":null,"permalink":"https://produto.mercadolivre.com.br/MLB-2"}
			]}`)
		}))
		defer srv.Close()

		p, err := newMercadoLivre(config.ProviderConfig{
			ID: config.ProviderMercadoLivre,
			Params: map[string]any{
				"base_url":      srv.URL,
				"access_token":  "tok",
				"affiliate_tag": "lc-01",
			},
		})
		require.NoError(t, err)

		got, err := p.Search(context.Background(), "ssd kingston", 100)
		require.NoError(t, err)

		assert.Equal(t, "/sites/MLB/search", gotPath)
		assert.Equal(t, "ssd kingston", gotQuery)
		assert.Equal(t, "50", gotLimit)
		assert.Equal(t, "Bearer tok", gotAuth)

		require.Len(t, got, 1)
		assert.Equal(t, "SSD Kingston 480GB", got[0].Title)
		assert.True(t, got[0].Price.Equal(money.MustParse("199.90")))
		assert.Equal(t, "https://produto.mercadolivre.com.br/MLB-1?matt_tool=lc-01", got[0].URL)
		assert.True(t, got[0].FreeShipping)
		assert.Equal(t, config.ProviderMercadoLivre, got[0].Provider)
	})

	t.Run("Failure_ServerErrorIsRetriedThenUnavailable", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		p, err := newMercadoLivre(config.ProviderConfig{
			ID:     config.ProviderMercadoLivre,
			Params: map[string]any{"base_url": srv.URL},
		})
		require.NoError(t, err)

		_, err = p.Search(context.Background(), "x", 10)
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.Unavailable))
		assert.EqualValues(t, retryCount+1, calls.Load())
	})

	t.Run("Failure_ClientError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"message":"invalid query"}`)
		}))
		defer srv.Close()

		p, err := newMercadoLivre(config.ProviderConfig{
			ID:     config.ProviderMercadoLivre,
			Params: map[string]any{"base_url": srv.URL},
		})
		require.NoError(t, err)

		_, err = p.Search(context.Background(), "x", 10)
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ExecutionFailed))
		assert.Contains(t, err.Error(), "invalid query")
	})
}

func TestLomadee_Search(t *testing.T) {
	var gotPath string
	var gotParams map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotParams = map[string]string{
			"sourceId": r.URL.Query().Get("sourceId"),
			"keyword":  r.URL.Query().Get("keyword"),
			"size":     r.URL.Query().Get("size"),
		}

		_, _ = io.WriteString(w, `{"offers":[
			{"name":"Air Fryer Mondial","price":349,"link":"https://redir.lomadee.com/1","thumbnail":"https://img/1.jpg","store":{"name":"Magalu"}}
		]}`)
	}))
	defer srv.Close()

	p, err := newLomadee(config.ProviderConfig{
		ID: config.ProviderLomadee,
		Params: map[string]any{
			"base_url":  srv.URL,
			"app_token": "app123",
			"source_id": 987,
		},
	})
	require.NoError(t, err)

	got, err := p.Search(context.Background(), "air fryer", 20)
	require.NoError(t, err)

	assert.Equal(t, "/v3/app123/offer/_search", gotPath)
	assert.Equal(t, map[string]string{"sourceId": "987", "keyword": "air fryer", "size": "20"}, gotParams)

	require.Len(t, got, 1)
	assert.Equal(t, "Air Fryer Mondial", got[0].Title)
	assert.True(t, got[0].Price.Equal(money.MustParse("349.00")))
	assert.Equal(t, "Magalu", got[0].Store)
}

func TestShopee_Search(t *testing.T) {
	now := time.Unix(1717236000, 0)

	t.Run("Success_SignedRequest", func(t *testing.T) {
		var gotAuth string
		var gotBody []byte
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/graphql", r.URL.Path)
			gotAuth = r.Header.Get("Authorization")
			gotBody, _ = io.ReadAll(r.Body)

			_, _ = io.WriteString(w, `{"data":{"productOfferV2":{"nodes":[
				{"productName":"Fone Bluetooth","priceMin":"59.9","offerLink":"https://s.shopee.com.br/abc","imageUrl":"https://cf.shopee/1.jpg","shopName":"Loja X"}
			]}}}`)
		}))
		defer srv.Close()

		prov, err := newShopee(config.ProviderConfig{
			ID:     config.ProviderShopee,
			Params: map[string]any{"base_url": srv.URL, "app_id": "1800", "secret": "s3cr3t"},
		})
		require.NoError(t, err)
		p := prov.(*shopee)
		p.now = func() time.Time { return now }

		got, err := p.Search(context.Background(), "fone", 10)
		require.NoError(t, err)

		sum := sha256.Sum256([]byte("1800" + "1717236000" + string(gotBody) + "s3cr3t"))
		assert.Equal(t, "SHA256 Credential=1800, Timestamp=1717236000, Signature="+hex.EncodeToString(sum[:]), gotAuth)

		var body graphQLRequest
		require.NoError(t, json.Unmarshal(gotBody, &body))
		assert.Contains(t, body.Query, "productOfferV2")
		assert.Equal(t, "fone", body.Variables["keyword"])
		assert.EqualValues(t, 10, body.Variables["limit"])

		require.Len(t, got, 1)
		assert.Equal(t, "Fone Bluetooth", got[0].Title)
		assert.True(t, got[0].Price.Equal(money.MustParse("59.90")))
		assert.Equal(t, "Loja X", got[0].Store)
	})

	t.Run("Failure_GraphQLError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, `{"errors":[{"message":"invalid signature"}]}`)
		}))
		defer srv.Close()

		p, err := newShopee(config.ProviderConfig{
			ID:     config.ProviderShopee,
			Params: map[string]any{"base_url": srv.URL, "app_id": "1", "secret": "2"},
		})
		require.NoError(t, err)

		_, err = p.Search(context.Background(), "fone", 10)
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ExecutionFailed))
		assert.Contains(t, err.Error(), "invalid signature")
	})
}

func TestAmazon_Search(t *testing.T) {
	newProvider := func(t *testing.T, url string) *amazon {
		t.Helper()
		prov, err := newAmazon(config.ProviderConfig{
			ID: config.ProviderAmazon,
			Params: map[string]any{
				"base_url":    url,
				"access_key":  "AKIDEXAMPLE",
				"secret_key":  "secret",
				"partner_tag": "linkcompra-20",
			},
		})
		require.NoError(t, err)
		return prov.(*amazon)
	}

	t.Run("Success_SignedRequest", func(t *testing.T) {
		var gotHeader http.Header
		var gotBody searchItemsRequest
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/paapi5/searchitems", r.URL.Path)
			gotHeader = r.Header.Clone()
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

			_, _ = io.WriteString(w, `{"SearchResult":{"Items":[
				{"ASIN":"B01","DetailPageURL":"https://www.amazon.com.br/dp/B01?tag=linkcompra-20",
				 "ItemInfo":{"Title":{"DisplayValue":"Echo Dot 5ª geração"}},
				 "Images":{"Primary":{"Medium":{"URL":"https://m.media-amazon.com/1.jpg"}}},
				 "Offers":{"Listings":[{"Price":{"Amount":379.05,"Currency":"BRL"},"MerchantInfo":{"Name":"Amazon.com.br"},"DeliveryInfo":{"IsFreeShippingEligible":true}}]}},
				{"ASIN":"B02","DetailPageURL":"https://www.amazon.com.br/dp/B02","ItemInfo":{"Title":{"DisplayValue":"Indisponível"}}}
			]}}`)
		}))
		defer srv.Close()

		p := newProvider(t, srv.URL)
		p.now = func() time.Time { return time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC) }

		got, err := p.Search(context.Background(), "echo dot", 30)
		require.NoError(t, err)

		auth := gotHeader.Get("Authorization")
		assert.True(t, strings.HasPrefix(auth, "AWS4-HMAC-SHA256 Credential=AKIDEXAMPLE/20250601/us-east-1/ProductAdvertisingAPI/aws4_request"), auth)
		assert.Equal(t, "20250601T100000Z", gotHeader.Get("X-Amz-Date"))
		assert.Equal(t, amazonTarget, gotHeader.Get("X-Amz-Target"))
		assert.Equal(t, "amz-1.0", gotHeader.Get("Content-Encoding"))

		assert.Equal(t, "echo dot", gotBody.Keywords)
		assert.Equal(t, "linkcompra-20", gotBody.PartnerTag)
		assert.Equal(t, "Associates", gotBody.PartnerType)
		assert.Equal(t, amazonMarketplace, gotBody.Marketplace)
		assert.Equal(t, amazonMaxLimit, gotBody.ItemCount)

		require.Len(t, got, 1)
		assert.Equal(t, "Echo Dot 5ª geração", got[0].Title)
		assert.True(t, got[0].Price.Equal(money.MustParse("379.05")))
		assert.Equal(t, "Amazon.com.br", got[0].Store)
		assert.True(t, got[0].FreeShipping)
	})

	t.Run("Success_NoResults", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"Errors":[{"Code":"NoResults","Message":"No results found."}]}`)
		}))
		defer srv.Close()

		got, err := newProvider(t, srv.URL).Search(context.Background(), "xyz", 10)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("Failure_Throttled", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = io.WriteString(w, `{"Errors":[{"Code":"TooManyRequests","Message":"The request was denied due to request throttling."}]}`)
		}))
		defer srv.Close()

		_, err := newProvider(t, srv.URL).Search(context.Background(), "xyz", 10)
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.Unavailable))
		assert.Contains(t, err.Error(), "throttling")
	})
}
