package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/darkkaiser/linkcompra-server/internal/config"
	"github.com/darkkaiser/linkcompra-server/internal/pkg/version"
	"github.com/darkkaiser/linkcompra-server/internal/service"
	"github.com/darkkaiser/linkcompra-server/internal/service/alert"
	"github.com/darkkaiser/linkcompra-server/internal/service/api"
	"github.com/darkkaiser/linkcompra-server/internal/service/fetcher"
	"github.com/darkkaiser/linkcompra-server/internal/service/notification"
	"github.com/darkkaiser/linkcompra-server/internal/service/offers"
	"github.com/darkkaiser/linkcompra-server/internal/service/offers/cache"
	"github.com/darkkaiser/linkcompra-server/internal/service/offers/providers"
	"github.com/darkkaiser/linkcompra-server/internal/service/pricewatch"
	"github.com/darkkaiser/linkcompra-server/internal/service/scheduler"
	"github.com/darkkaiser/linkcompra-server/internal/service/subscription"
	"github.com/darkkaiser/linkcompra-server/internal/storage"
	applog "github.com/darkkaiser/linkcompra-server/pkg/log"
)

// @title LinkCompra API
// @version 1.0.0
// @description 브라질 소매점 가격 비교, WhatsApp 가격 알림, 제휴 오퍼 검색을 제공하는 LinkCompra 서버의 REST API입니다.
// @description
// @description ## 주요 기능
// @description - 상품별 소매점 가격 비교 (역대 최저가 포함)
// @description - 목표가 도달 시 WhatsApp 가격 알림 구독/해지
// @description - Amazon, Shopee, Lomadee, Mercado Livre 제휴 오퍼 검색
// @description
// @description 클라이언트에 반환되는 에러 메시지는 포르투갈어(pt-BR)입니다.

// @contact.name DarkKaiser
// @contact.url https://github.com/DarkKaiser
// @contact.email darkkaiser@gmail.com

// @license.name MIT

// @host api.linkcompra.com.br
// @BasePath /

const (
	component = "main"

	// storageShutdownTimeout 서비스 종료 후 저장소 연결을 닫을 때 기다리는 최대 시간
	storageShutdownTimeout = 5 * time.Second
)

const banner = `
  _      _         _       ____
 | |    (_) _ __  | | __  / ___| ___   _ __ ___   _ __   _ __  __ _
 | |    | || '_ \ | |/ / | |    / _ \ | '_ ' _ \ | '_ \ | '__|/ _' |
 | |___ | || | | ||   <  | |___| (_) || | | | | || |_) || |  | (_| |
 |_____||_||_| |_||_|\_\  \____|\___/ |_| |_| |_|| .__/ |_|   \__,_|
                                                 |_|              %s
                                                        developed by DarkKaiser
--------------------------------------------------------------------------------
`

// components 서버 구동에 필요한 서비스와 종료 시 해제할 자원 목록입니다.
type components struct {
	services []service.Service

	closers []func(ctx context.Context) error
}

func (c *components) close(ctx context.Context) {
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](ctx); err != nil {
			applog.WithComponentAndFields(component, log.Fields{
				"error": err,
			}).Warn("자원 해제 중 오류 발생")
		}
	}
}

func main() {
	configFile := flag.String("config", config.DefaultFilename, "설정 파일 경로")
	flag.Parse()

	// 1. 환경설정 로드 (로그 설정에 필요하므로 가장 먼저 수행한다)
	appConfig, err := config.LoadWithFile(*configFile)
	if err != nil {
		// 로거 초기화 전이므로 표준 에러에 출력
		fmt.Fprintf(os.Stderr, "[FATAL] 환경설정 로드 실패: %v\n", err)
		os.Exit(1)
	}

	// 2. 로그 시스템 초기화
	appLogCloser, err := setupLogging(appConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] 로그 시스템 초기화 실패. 서버 구동을 중단합니다. (Cause: %v)\n", err)
		os.Exit(1)
	}
	defer appLogCloser.Close()

	buildInfo := version.Get()

	fmt.Printf(banner, buildInfo.Version)

	applog.WithComponentAndFields(component, log.Fields{
		"version": buildInfo.String(),
		"env":     map[bool]string{true: "development", false: "production"}[appConfig.Debug],
		"config":  *configFile,
	}).Info("서버 초기화 시작")

	serviceStopCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c, err := newComponents(serviceStopCtx, appConfig, buildInfo)
	if err != nil {
		applog.WithComponentAndFields(component, log.Fields{
			"error": err,
		}).Fatal("서비스 구성 실패로 프로그램을 종료합니다")
	}

	serviceStopWG := &sync.WaitGroup{}
	if err := startServices(serviceStopCtx, serviceStopWG, c.services); err != nil {
		applog.WithComponentAndFields(component, log.Fields{
			"error": err,
		}).Error("서비스 초기화 실패")

		cancel() // 이미 시작된 서비스들도 종료
		serviceStopWG.Wait()
		shutdown(c)

		log.Fatal("서비스 초기화 실패로 프로그램을 종료합니다")
	}

	termC := make(chan os.Signal, 1)
	signal.Notify(termC, syscall.SIGINT, syscall.SIGTERM)

	applog.WithComponent(component).Info("서버 가동 완료")

	<-termC

	applog.WithComponent(component).Info("종료 신호 수신")
	cancel()
	serviceStopWG.Wait()
	shutdown(c)

	applog.WithComponent(component).Info("서버 종료 완료")
}

func setupLogging(appConfig *config.AppConfig) (io.Closer, error) {
	var logOpts applog.Options
	if appConfig.Debug {
		logOpts = applog.NewDevelopmentConfig(config.AppName)
	} else {
		logOpts = applog.NewProductionConfig(config.AppName)
	}

	closer, err := applog.Setup(logOpts)
	if err != nil {
		return nil, err
	}

	applog.SetDebugMode(appConfig.Debug)

	return closer, nil
}

// newComponents 저장소를 열고 서비스들을 생성합니다.
//
// 시작 순서는 notification, scheduler, api입니다. 다른 서비스가 알림을 보낼 수 있도록
// notification 서비스가 가장 먼저 시작되어야 합니다.
func newComponents(ctx context.Context, appConfig *config.AppConfig, buildInfo version.Info) (*components, error) {
	c := &components{}

	repos, err := storage.Open(ctx, appConfig.Storage)
	if err != nil {
		return nil, err
	}
	c.closers = append(c.closers, repos.Close)

	offersCache, closeCache, err := cache.New[offers.Result](ctx, appConfig.Offers.Cache)
	if err != nil {
		c.close(ctx)
		return nil, err
	}
	c.closers = append(c.closers, func(context.Context) error { return closeCache() })

	offerProviders, err := providers.New(appConfig.Offers.EnabledProviders())
	if err != nil {
		c.close(ctx)
		return nil, err
	}

	notificationService := notification.NewService(appConfig)
	subscriptionService := subscription.NewService(appConfig.Alert, repos.Products, repos.Leads, notificationService)
	aggregator := offers.NewAggregator(appConfig.Offers, offerProviders, offersCache)

	monitor := alert.NewMonitor(appConfig.Alert, repos.Products, repos.Leads, notificationService)
	watcher := pricewatch.NewWatcher(appConfig.PriceRefresh, repos.Products, fetcher.New(appConfig.HTTPRetry))

	var warmer scheduler.OffersWarmer
	if len(offerProviders) > 0 {
		warmer = aggregator
	}
	schedulerService := scheduler.NewService(scheduler.NewJobs(appConfig, monitor, watcher, warmer), notificationService)

	apiService := api.NewService(appConfig, api.Dependencies{
		Notification:  notificationService,
		Storage:       repos.Pinger,
		Subscriptions: subscriptionService,
		Offers:        aggregator,
		Products:      repos.Products,
	}, buildInfo)

	c.services = []service.Service{notificationService, schedulerService, apiService}

	return c, nil
}

// startServices 서비스를 순서대로 시작합니다. 하나라도 실패하면 즉시 에러를 반환합니다.
func startServices(ctx context.Context, wg *sync.WaitGroup, services []service.Service) error {
	for _, s := range services {
		wg.Add(1)
		if err := s.Start(ctx, wg); err != nil {
			return err
		}
	}
	return nil
}

func shutdown(c *components) {
	ctx, cancel := context.WithTimeout(context.Background(), storageShutdownTimeout)
	defer cancel()

	c.close(ctx)
}
