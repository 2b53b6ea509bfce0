// Package pricewatch 소매점 상품 페이지를 주기적으로 읽어 비교 상품의 가격을 갱신합니다.
package pricewatch

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/darkkaiser/linkcompra-server/internal/config"
	"github.com/darkkaiser/linkcompra-server/internal/domain/catalog"
	apperrors "github.com/darkkaiser/linkcompra-server/internal/pkg/errors"
	"github.com/darkkaiser/linkcompra-server/internal/service/contract"
	"github.com/darkkaiser/linkcompra-server/internal/service/fetcher"
	applog "github.com/darkkaiser/linkcompra-server/pkg/log"
)

const component = "pricewatch.watcher"

const defaultConcurrency = 4

// Report 한 번의 갱신 결과입니다.
type Report struct {
	Products int `json:"products"`

	// Checked 시도한 (상품, 소매점) 페이지 수
	Checked int `json:"checked"`

	// Updated 가격이 하나 이상 반영되어 저장된 상품 수
	Updated int `json:"updated"`

	// Failed 가져오기나 파싱에 실패한 페이지 수와 저장 실패 수
	Failed int `json:"failed"`

	// LowestRenewed 역대 최저가가 갱신된 "상품ID:소매점" 목록
	LowestRenewed []string `json:"lowest_renewed,omitempty"`
}

type Watcher struct {
	products contract.ProductRepository
	fetcher  fetcher.Fetcher
	parser   *Parser

	concurrency int

	now func() time.Time

	runMu sync.Mutex
}

func NewWatcher(cfg config.PriceRefreshConfig, products contract.ProductRepository, f fetcher.Fetcher) *Watcher {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	return &Watcher{
		products: products,
		fetcher:  f,
		parser:   NewParser(cfg.Selectors),

		concurrency: concurrency,

		now: time.Now,
	}
}

type pageResult struct {
	parsed ParsedPrice
	err    error
}

// RefreshAll 모든 상품의 모든 소매점 페이지를 병렬로 읽어 가격을 반영합니다.
//
// 페이지 하나의 실패는 해당 소매점 가격을 건드리지 않고 집계만 합니다.
func (w *Watcher) RefreshAll(ctx context.Context) (Report, error) {
	if !w.runMu.TryLock() {
		return Report{}, ErrAlreadyRunning
	}
	defer w.runMu.Unlock()

	products, err := w.products.FindAll(ctx)
	if err != nil {
		return Report{}, apperrors.Wrap(err, apperrors.System, "상품 목록을 불러오지 못했습니다")
	}

	report := Report{Products: len(products)}

	applog.WithComponentAndFields(component, applog.Fields{
		"products":    len(products),
		"concurrency": w.concurrency,
	}).Info("가격 갱신 시작")

	// results[i][j] 는 products[i].Prices[j] 의 결과. 인덱스가 겹치지 않아 잠금이 필요 없다.
	results := make([][]*pageResult, len(products))

	var g errgroup.Group
	g.SetLimit(w.concurrency)

	for i, p := range products {
		results[i] = make([]*pageResult, len(p.Prices))

		for j, sp := range p.Prices {
			if sp.URL == "" || !sp.Store.Valid() {
				continue
			}

			report.Checked++
			g.Go(func() error {
				results[i][j] = w.fetchPrice(ctx, p.ID, sp)
				return nil
			})
		}
	}
	_ = g.Wait()

	for i, p := range products {
		if w.apply(ctx, p, results[i], &report) {
			report.Updated++
		}
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"products":       report.Products,
		"checked":        report.Checked,
		"updated":        report.Updated,
		"failed":         report.Failed,
		"lowest_renewed": len(report.LowestRenewed),
	}).Info("가격 갱신 완료")

	return report, nil
}

func (w *Watcher) fetchPrice(ctx context.Context, productID string, sp catalog.StorePrice) *pageResult {
	doc, err := fetcher.FetchHTMLDocument(ctx, w.fetcher, sp.URL)
	if err != nil {
		return &pageResult{err: err}
	}

	parsed, err := w.parser.ParsePrice(sp.Store, doc)
	if err != nil {
		return &pageResult{err: err}
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"product_id": productID,
		"store":      sp.Store,
		"price":      parsed.Price.String(),
		"available":  parsed.Available,
		"source":     parsed.Source,
	}).Debug("소매점 가격 확인")

	return &pageResult{parsed: parsed}
}

// apply 성공한 페이지 결과만 반영하고, 하나라도 반영되었으면 저장합니다.
func (w *Watcher) apply(ctx context.Context, p *catalog.ComparisonProduct, results []*pageResult, report *Report) bool {
	now := w.now()
	changed := false

	for j, r := range results {
		if r == nil {
			continue
		}
		store := p.Prices[j].Store

		if r.err != nil {
			report.Failed++
			applog.WithComponentAndFields(component, applog.Fields{
				"product_id": p.ID,
				"store":      store,
				"error":      r.err,
			}).Warn("소매점 가격 확인 실패 (기존 가격 유지)")
			continue
		}

		if p.ApplyPriceAt(j, r.parsed.Price, r.parsed.Available, now) {
			report.LowestRenewed = append(report.LowestRenewed, p.ID+":"+store.String())
		}
		changed = true
	}

	if !changed {
		return false
	}

	if err := w.products.Save(ctx, p); err != nil {
		report.Failed++
		applog.WithComponentAndFields(component, applog.Fields{
			"product_id": p.ID,
			"error":      err,
		}).Error("갱신된 상품 가격 저장 실패")
		return false
	}

	return true
}
