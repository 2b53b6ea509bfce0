package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darkkaiser/linkcompra-server/internal/pkg/money"
	"github.com/darkkaiser/linkcompra-server/internal/pkg/version"
	"github.com/darkkaiser/linkcompra-server/internal/service/offers"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := newRootCmd()
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(new(bytes.Buffer))
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

// TestRootCmd 하위 명령과 전역 플래그 등록을 검증합니다.
func TestRootCmd(t *testing.T) {
	root := newRootCmd()

	for _, name := range []string{"check-prices", "refresh-prices", "search-offers", "normalize-phone", "version"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}

	flag := root.PersistentFlags().Lookup("config")
	require.NotNil(t, flag)
	assert.Equal(t, "linkcompra-server.json", flag.DefValue)
}

// TestNormalizePhoneCmd 전화번호 정규화 결과와 마스킹 출력을 검증합니다.
func TestNormalizePhoneCmd(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		out, err := execute(t, "normalize-phone", "(11) 98765-4321")

		require.NoError(t, err)
		assert.Equal(t, "+5511987654321\t+55*******4321\n", out)
	})

	t.Run("Failure_InvalidNumber", func(t *testing.T) {
		_, err := execute(t, "normalize-phone", "123")

		assert.Error(t, err)
	})

	t.Run("Failure_MissingArgument", func(t *testing.T) {
		_, err := execute(t, "normalize-phone")

		assert.Error(t, err)
	})
}

// TestVersionCmd 빌드 정보 출력을 검증합니다.
func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")

	require.NoError(t, err)
	assert.Equal(t, version.Get().String()+"\n", out)
}

// TestCommands_MissingConfig 설정 파일이 없으면 설정이 필요한 명령이 실패하는지 검증합니다.
func TestCommands_MissingConfig(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nao-existe.json")

	for _, args := range [][]string{
		{"check-prices", "--config", missing},
		{"refresh-prices", "--config", missing},
		{"search-offers", "tv", "--config", missing},
	} {
		t.Run(args[0], func(t *testing.T) {
			_, err := execute(t, args...)

			assert.Error(t, err)
		})
	}
}

// TestPrintOffers 오퍼 표 출력 형식을 검증합니다.
func TestPrintOffers(t *testing.T) {
	out := new(bytes.Buffer)

	err := printOffers(out, offers.Result{
		Query: "air fryer",
		Offers: []offers.Offer{
			{Provider: "mercadolivre", Title: "Air Fryer 4L", Price: money.MustParse("1299.90"), URL: "https://ml/1", FreeShipping: true},
			{Provider: "amazon", Title: "Air Fryer 5L", Price: money.MustParse("349.00"), URL: "https://amz/2"},
		},
		ProviderErrors: map[string]string{"shopee": "timeout"},
		FetchedAt:      time.Now(),
	})

	require.NoError(t, err)
	lines := strings.Split(out.String(), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "PROVIDER"))
	assert.Contains(t, lines[1], "R$ 1.299,90")
	assert.Contains(t, lines[1], "sim")
	assert.Contains(t, lines[2], "R$ 349,00")
	assert.Contains(t, out.String(), `2 offers (query="air fryer")`)
	assert.Contains(t, out.String(), "! shopee: timeout")
}
