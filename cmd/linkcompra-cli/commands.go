package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/signal"
	"sync"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/darkkaiser/linkcompra-server/internal/config"
	"github.com/darkkaiser/linkcompra-server/internal/pkg/phone"
	"github.com/darkkaiser/linkcompra-server/internal/pkg/version"
	"github.com/darkkaiser/linkcompra-server/internal/service/alert"
	"github.com/darkkaiser/linkcompra-server/internal/service/fetcher"
	"github.com/darkkaiser/linkcompra-server/internal/service/notification"
	"github.com/darkkaiser/linkcompra-server/internal/service/offers"
	"github.com/darkkaiser/linkcompra-server/internal/service/offers/cache"
	"github.com/darkkaiser/linkcompra-server/internal/service/offers/providers"
	"github.com/darkkaiser/linkcompra-server/internal/service/pricewatch"
	"github.com/darkkaiser/linkcompra-server/internal/storage"
)

// commandContext Ctrl+C로 취소되는 명령 실행 context를 반환합니다.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
}

func openStorage(ctx context.Context, configFile string) (*config.AppConfig, *storage.Repositories, error) {
	appConfig, err := config.LoadWithFile(configFile)
	if err != nil {
		return nil, nil, err
	}

	repos, err := storage.Open(ctx, appConfig.Storage)
	if err != nil {
		return nil, nil, err
	}

	return appConfig, repos, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newCheckPricesCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check-prices",
		Short: "가격 알림 점검을 한 번 실행합니다",
		Long: `활성 구독 전체의 현재 최저가를 목표가와 비교하여 조건을 만족하면 WhatsApp 알림을 보냅니다.
발송 대기 중인 알림이 모두 처리된 뒤 종료합니다.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()

			appConfig, repos, err := openStorage(ctx, opts.configFile)
			if err != nil {
				return err
			}
			defer repos.Close(context.Background())

			// 알림 워커는 자체 context로 구동하고, 점검이 끝나면 취소하여 대기 중인 발송을 마무리합니다.
			notifyCtx, stopNotify := context.WithCancel(context.Background())
			notifyWG := &sync.WaitGroup{}
			defer func() {
				stopNotify()
				notifyWG.Wait()
			}()

			notificationService := notification.NewService(appConfig)
			notifyWG.Add(1)
			if err := notificationService.Start(notifyCtx, notifyWG); err != nil {
				return err
			}

			monitor := alert.NewMonitor(appConfig.Alert, repos.Products, repos.Leads, notificationService)
			result, err := monitor.CheckPrices(ctx)
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), result)
		},
	}
}

func newRefreshPricesCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh-prices",
		Short: "소매점 가격 갱신을 한 번 실행합니다",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()

			appConfig, repos, err := openStorage(ctx, opts.configFile)
			if err != nil {
				return err
			}
			defer repos.Close(context.Background())

			watcher := pricewatch.NewWatcher(appConfig.PriceRefresh, repos.Products, fetcher.New(appConfig.HTTPRetry))
			report, err := watcher.RefreshAll(ctx)
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), report)
		},
	}
}

func newSearchOffersCmd(opts *cliOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "search-offers <query>",
		Short: "제휴 제공자에서 오퍼를 검색합니다",
		Example: `  linkcompra-cli search-offers "air fryer"
  linkcompra-cli search-offers --json "iphone 15"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()

			appConfig, err := config.LoadWithFile(opts.configFile)
			if err != nil {
				return err
			}

			offerProviders, err := providers.New(appConfig.Offers.EnabledProviders())
			if err != nil {
				return err
			}

			// 일회성 실행이므로 Redis 설정과 무관하게 메모리 캐시를 사용합니다.
			aggregator := offers.NewAggregator(appConfig.Offers, offerProviders, cache.NewMemory[offers.Result]())

			result, err := aggregator.Search(ctx, args[0])
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(cmd.OutOrStdout(), result)
			}
			return printOffers(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "결과를 JSON으로 출력")

	return cmd
}

// printOffers 검색 결과를 가격 오름차순 표로 출력합니다.
func printOffers(w io.Writer, r offers.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "PROVIDER\tPRICE\tFRETE GRÁTIS\tTITLE\tURL")
	for _, o := range r.Offers {
		freeShipping := "-"
		if o.FreeShipping {
			freeShipping = "sim"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", o.Provider, o.Price.FormatBRL(), freeShipping, o.Title, o.URL)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\n%d offers (query=%q)\n", len(r.Offers), r.Query)
	for provider, reason := range r.ProviderErrors {
		fmt.Fprintf(w, "  ! %s: %s\n", provider, reason)
	}

	return nil
}

func newNormalizePhoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "normalize-phone <raw>",
		Short:   "브라질 전화번호를 E.164 형식으로 정규화합니다",
		Example: `  linkcompra-cli normalize-phone "(11) 98765-4321"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e164, err := phone.NormalizeBR(args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", e164, phone.Mask(e164))
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "빌드 정보를 출력합니다",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Get().String())
		},
	}
}
