package scheduler

import (
	"context"

	"github.com/darkkaiser/linkcompra-server/internal/config"
	"github.com/darkkaiser/linkcompra-server/internal/service/alert"
	"github.com/darkkaiser/linkcompra-server/internal/service/pricewatch"
	applog "github.com/darkkaiser/linkcompra-server/pkg/log"
)

const (
	JobAlertCheckPrices = "alert.check_prices"
	JobPriceRefresh     = "pricewatch.refresh"
	JobOffersWarmup     = "offers.cache_warmup"
)

// Job 스케줄러가 TimeSpec마다 실행하는 작업입니다.
type Job struct {
	ID       string
	TimeSpec string
	Run      func(ctx context.Context) error
}

type PriceChecker interface {
	CheckPrices(ctx context.Context) (alert.Result, error)
}

type PriceRefresher interface {
	RefreshAll(ctx context.Context) (pricewatch.Report, error)
}

type OffersWarmer interface {
	Warmup(ctx context.Context, queries []string) (int, error)
}

// NewJobs 설정에서 활성화된 작업만 골라 Job 목록을 만듭니다. nil로 전달된 의존성의 작업은 등록하지 않습니다.
func NewJobs(cfg *config.AppConfig, checker PriceChecker, refresher PriceRefresher, warmer OffersWarmer) []Job {
	var jobs []Job

	if cfg.Alert.Enabled && checker != nil {
		jobs = append(jobs, Job{
			ID:       JobAlertCheckPrices,
			TimeSpec: cfg.Alert.TimeSpec,
			Run: func(ctx context.Context) error {
				result, err := checker.CheckPrices(ctx)
				if err != nil {
					return err
				}

				applog.WithComponentAndFields(component, applog.Fields{
					"job_id":        JobAlertCheckPrices,
					"leads_checked": result.LeadsChecked,
					"notified":      result.Notified,
					"skipped":       result.Skipped,
					"errors":        result.Errors,
				}).Info("가격 알림 점검 완료")
				return nil
			},
		})
	}

	if cfg.PriceRefresh.Enabled && refresher != nil {
		jobs = append(jobs, Job{
			ID:       JobPriceRefresh,
			TimeSpec: cfg.PriceRefresh.TimeSpec,
			Run: func(ctx context.Context) error {
				report, err := refresher.RefreshAll(ctx)
				if err != nil {
					return err
				}

				applog.WithComponentAndFields(component, applog.Fields{
					"job_id":         JobPriceRefresh,
					"products":       report.Products,
					"checked":        report.Checked,
					"updated":        report.Updated,
					"failed":         report.Failed,
					"lowest_renewed": report.LowestRenewed,
				}).Info("매장 가격 갱신 완료")
				return nil
			},
		})
	}

	if len(cfg.Offers.WarmQueries) > 0 && cfg.Offers.WarmupTimeSpec != "" && warmer != nil {
		queries := cfg.Offers.WarmQueries
		jobs = append(jobs, Job{
			ID:       JobOffersWarmup,
			TimeSpec: cfg.Offers.WarmupTimeSpec,
			Run: func(ctx context.Context) error {
				warmed, err := warmer.Warmup(ctx, queries)

				applog.WithComponentAndFields(component, applog.Fields{
					"job_id":  JobOffersWarmup,
					"queries": len(queries),
					"warmed":  warmed,
				}).Debug("오퍼 캐시 예열")
				return err
			},
		})
	}

	return jobs
}
