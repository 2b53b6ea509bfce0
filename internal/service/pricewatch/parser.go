package pricewatch

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/tidwall/gjson"

	"github.com/darkkaiser/linkcompra-server/internal/domain/catalog"
	"github.com/darkkaiser/linkcompra-server/internal/pkg/money"
	"github.com/darkkaiser/linkcompra-server/pkg/strutil"
)

// DefaultSelectors 소매점별 가격 셀렉터 기본값입니다. 앞에서부터 순서대로 시도합니다.
var DefaultSelectors = map[catalog.Store][]string{
	catalog.StoreAmazon:   {"#corePrice_feature_div .a-offscreen", ".a-price .a-offscreen"},
	catalog.StoreKabum:    {"h4.finalPrice"},
	catalog.StoreMagalu:   {`[data-testid="price-value"]`},
	catalog.StoreTerabyte: {"#valVista"},
	catalog.StorePichau:   {`div[class*="price_vista"]`},
}

// Source 가격을 찾은 위치입니다.
type Source string

const (
	SourceSelector Source = "selector"
	SourceJSONLD   Source = "json-ld"
	SourceMeta     Source = "meta"
)

type ParsedPrice struct {
	Price     money.Amount
	Available bool
	Source    Source
}

// brlPattern "R$ 1.234,56", "1234,56" 같은 브라질 표기 금액을 찾습니다.
var brlPattern = regexp.MustCompile(`\d{1,3}(?:\.\d{3})+,\d{2}|\d+,\d{2}`)

type Parser struct {
	selectors map[catalog.Store][]string
}

// NewParser overrides에 지정된 소매점은 기본 셀렉터를 대체합니다.
func NewParser(overrides map[string][]string) *Parser {
	selectors := make(map[catalog.Store][]string, len(DefaultSelectors))
	for store, s := range DefaultSelectors {
		selectors[store] = s
	}
	for store, s := range overrides {
		if len(s) > 0 {
			selectors[catalog.Store(store)] = s
		}
	}

	return &Parser{selectors: selectors}
}

// ParsePrice 셀렉터, JSON-LD, meta 태그 순서로 가격을 찾습니다.
//
// 구매 가능 여부는 JSON-LD의 offers.availability를 따르고, 없으면 가격을 찾은 것만으로 구매 가능으로 봅니다.
func (p *Parser) ParsePrice(store catalog.Store, doc *goquery.Document) (ParsedPrice, error) {
	available, hasAvailability := availabilityFromJSONLD(doc)

	result := func(price money.Amount, source Source) (ParsedPrice, error) {
		pp := ParsedPrice{Price: price, Available: true, Source: source}
		if hasAvailability {
			pp.Available = available
		}
		return pp, nil
	}

	for _, sel := range p.selectors[store] {
		var found money.Amount
		doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if price, ok := parsePriceText(s.Text()); ok {
				found = price
				return false
			}
			return true
		})
		if found.IsPositive() {
			return result(found, SourceSelector)
		}
	}

	if price, ok := priceFromJSONLD(doc); ok {
		return result(price, SourceJSONLD)
	}

	if price, ok := priceFromMeta(doc); ok {
		return result(price, SourceMeta)
	}

	return ParsedPrice{}, ErrPriceNotFound
}

func parsePriceText(text string) (money.Amount, bool) {
	text = strutil.NormalizeSpaces(text)
	if text == "" {
		return money.Zero, false
	}

	candidate := text
	if m := brlPattern.FindString(text); m != "" {
		candidate = m
	}

	price, err := money.Parse(candidate)
	if err != nil || !price.IsPositive() {
		return money.Zero, false
	}
	return price, true
}

// productNodes JSON-LD 문서에서 offers를 가진 객체를 모두 찾습니다. 최상위 배열과 @graph를 모두 처리합니다.
func productNodes(root gjson.Result) []gjson.Result {
	var nodes []gjson.Result

	switch {
	case root.IsArray():
		root.ForEach(func(_, v gjson.Result) bool {
			nodes = append(nodes, productNodes(v)...)
			return true
		})
	case root.IsObject():
		// "@" 로 시작하는 키는 gjson 경로에서 modifier로 해석될 수 있어 Map으로 접근한다.
		m := root.Map()
		if graph, ok := m["@graph"]; ok {
			nodes = append(nodes, productNodes(graph)...)
		}
		if offers, ok := m["offers"]; ok && offers.Exists() {
			nodes = append(nodes, offers)
		}
	}

	return nodes
}

func eachJSONLD(doc *goquery.Document, fn func(offers gjson.Result) bool) {
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		raw := strings.TrimSpace(s.Text())
		if !gjson.Valid(raw) {
			return true
		}
		for _, offers := range productNodes(gjson.Parse(raw)) {
			if !fn(offers) {
				return false
			}
		}
		return true
	})
}

var offerPricePaths = []string{"price", "0.price", "lowPrice", "0.lowPrice", "offers.0.price", "offers.price"}

func priceFromJSONLD(doc *goquery.Document) (money.Amount, bool) {
	var found money.Amount

	eachJSONLD(doc, func(offers gjson.Result) bool {
		for _, path := range offerPricePaths {
			v := offers.Get(path)
			if !v.Exists() {
				continue
			}
			if price, err := money.Parse(v.String()); err == nil && price.IsPositive() {
				found = price
				return false
			}
		}
		return true
	})

	return found, found.IsPositive()
}

func availabilityFromJSONLD(doc *goquery.Document) (available, ok bool) {
	eachJSONLD(doc, func(offers gjson.Result) bool {
		for _, path := range []string{"availability", "0.availability"} {
			v := offers.Get(path)
			if !v.Exists() {
				continue
			}
			available, ok = strings.HasSuffix(v.String(), "InStock"), true
			return false
		}
		return true
	})

	return available, ok
}

func priceFromMeta(doc *goquery.Document) (money.Amount, bool) {
	for _, sel := range []string{`meta[itemprop="price"]`, `meta[property="product:price:amount"]`} {
		content, ok := doc.Find(sel).First().Attr("content")
		if !ok {
			continue
		}
		if price, err := money.Parse(content); err == nil && price.IsPositive() {
			return price, true
		}
	}
	return money.Zero, false
}
