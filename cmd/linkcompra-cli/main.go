// linkcompra-cli 운영자가 스케줄 작업을 수동으로 실행하거나 데이터를 점검할 때 사용하는 도구입니다.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/darkkaiser/linkcompra-server/internal/config"
	applog "github.com/darkkaiser/linkcompra-server/pkg/log"
)

// cliOptions 모든 하위 명령이 공유하는 전역 플래그입니다.
type cliOptions struct {
	configFile string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	root := &cobra.Command{
		Use:   "linkcompra-cli",
		Short: "LinkCompra 운영 도구",
		Long: `LinkCompra 서버의 스케줄 작업을 수동으로 실행하거나 데이터를 점검합니다.

서버와 같은 설정 파일을 사용하며, --config로 경로를 지정할 수 있습니다.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// 명령 출력과 섞이지 않도록 기본적으로 경고 이상만 기록합니다.
			if opts.verbose {
				applog.SetLevel(applog.DebugLevel)
			} else {
				applog.SetLevel(applog.WarnLevel)
			}
		},
	}

	root.PersistentFlags().StringVar(&opts.configFile, "config", config.DefaultFilename, "설정 파일 경로")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "디버그 로그 출력")

	root.AddCommand(
		newCheckPricesCmd(opts),
		newRefreshPricesCmd(opts),
		newSearchOffersCmd(opts),
		newNormalizePhoneCmd(),
		newVersionCmd(),
	)

	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
