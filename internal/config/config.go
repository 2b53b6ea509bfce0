// Package config 애플리케이션 설정 구조체와 로더를 정의합니다.
//
// 설정은 기본값(구조체) -> JSON 파일 -> 환경 변수(LINKCOMPRA_) 순서로 덮어쓰며,
// 로드 직후 validator/v10 기반 검증을 통과해야 합니다.
package config

import "time"

const (
	AppName = "linkcompra-server"

	// DefaultFilename -config 인자가 없을 때 읽는 설정 파일입니다.
	DefaultFilename = AppName + ".json"

	envPrefix = "LINKCOMPRA_"
)

const (
	StorageDriverMongo = "mongo"
	StorageDriverFile  = "file"

	CacheDriverMemory = "memory"
	CacheDriverRedis  = "redis"
)

// 오퍼 제공자 식별자
const (
	ProviderAmazon       = "amazon"
	ProviderShopee       = "shopee"
	ProviderLomadee      = "lomadee"
	ProviderMercadoLivre = "mercadolivre"
)

// AppConfig 설정 루트입니다.
type AppConfig struct {
	Debug        bool               `json:"debug"`
	HTTPRetry    HTTPRetryConfig    `json:"http_retry"`
	Storage      StorageConfig      `json:"storage"`
	Notifiers    NotifierConfig     `json:"notifiers"`
	Alert        AlertConfig        `json:"alert"`
	PriceRefresh PriceRefreshConfig `json:"price_refresh"`
	Offers       OffersConfig       `json:"offers"`
	API          APIConfig          `json:"api"`
}

// HTTPRetryConfig 소매점 페이지 수집에 쓰이는 재시도 정책입니다.
type HTTPRetryConfig struct {
	MaxRetries int           `json:"max_retries" validate:"min=0,max=10"`
	RetryDelay time.Duration `json:"retry_delay"`
	Timeout    time.Duration `json:"timeout"`
}

type StorageConfig struct {
	Driver string            `json:"driver" validate:"oneof=mongo file"`
	Mongo  MongoConfig       `json:"mongo"`
	File   FileStorageConfig `json:"file"`
}

type MongoConfig struct {
	URI      string        `json:"uri"`
	Database string        `json:"database"`
	Timeout  time.Duration `json:"timeout"`
}

type FileStorageConfig struct {
	Dir string `json:"dir"`
}

// NotifierConfig WhatsApp(구독자 알림)과 Telegram(운영자 알림) 채널 목록입니다.
// 모든 ID는 채널 종류와 무관하게 유일해야 합니다.
type NotifierConfig struct {
	DefaultNotifierID string           `json:"default_notifier_id" validate:"required"`
	WhatsApps         []WhatsAppConfig `json:"whatsapps"`
	Telegrams         []TelegramConfig `json:"telegrams"`
}

// WhatsAppConfig WhatsApp Cloud API 발신 번호 설정입니다.
type WhatsAppConfig struct {
	ID            string  `json:"id" validate:"required"`
	BaseURL       string  `json:"base_url" validate:"omitempty,url"`
	APIVersion    string  `json:"api_version"`
	PhoneNumberID string  `json:"phone_number_id" validate:"required,numeric"`
	AccessToken   string  `json:"access_token" validate:"required"`
	RateLimit     float64 `json:"rate_limit" validate:"min=0"`
	Burst         int     `json:"burst" validate:"min=0"`
}

type TelegramConfig struct {
	ID       string `json:"id" validate:"required"`
	BotToken string `json:"bot_token" validate:"required,telegram_bot_token"`
	ChatID   int64  `json:"chat_id" validate:"required"`
}

// AlertConfig 가격 알림 모니터 설정입니다.
type AlertConfig struct {
	Enabled     bool          `json:"enabled"`
	TimeSpec    string        `json:"time_spec"`
	Cooldown    time.Duration `json:"cooldown"`
	NotifierID  string        `json:"notifier_id"`
	SiteBaseURL string        `json:"site_base_url"`
}

// PriceRefreshConfig 소매점 가격 갱신 작업 설정입니다.
// Selectors는 소매점별 기본 CSS 셀렉터를 대체합니다.
type PriceRefreshConfig struct {
	Enabled     bool                `json:"enabled"`
	TimeSpec    string              `json:"time_spec"`
	Concurrency int                 `json:"concurrency" validate:"min=1,max=64"`
	Selectors   map[string][]string `json:"selectors"`
}

// OffersConfig 동적 오퍼 집계 설정입니다.
type OffersConfig struct {
	Timeout          time.Duration    `json:"timeout"`
	MaxResults       int              `json:"max_results" validate:"min=1,max=200"`
	ExcludedKeywords []string         `json:"excluded_keywords"`
	WarmQueries      []string         `json:"warm_queries"`
	WarmupTimeSpec   string           `json:"warmup_time_spec"`
	Cache            OffersCache      `json:"cache"`
	Providers        []ProviderConfig `json:"providers"`
}

type OffersCache struct {
	Driver string        `json:"driver" validate:"oneof=memory redis"`
	TTL    time.Duration `json:"ttl"`
	Redis  RedisConfig   `json:"redis"`
}

type RedisConfig struct {
	Addr     string `json:"addr"`
	Password string `json:"password"`
	DB       int    `json:"db" validate:"min=0"`
}

// ProviderConfig 오퍼 제공자별 설정입니다. Params는 제공자가 자신의 타입으로 디코딩합니다.
type ProviderConfig struct {
	ID        string         `json:"id" validate:"required,oneof=amazon shopee lomadee mercadolivre"`
	Enabled   bool           `json:"enabled"`
	Timeout   time.Duration  `json:"timeout"`
	RateLimit float64        `json:"rate_limit" validate:"min=0"`
	Params    map[string]any `json:"params"`
}

// APIConfig HTTP API 서버 설정입니다.
type APIConfig struct {
	ListenPort  int             `json:"listen_port" validate:"min=1,max=65535"`
	TLSServer   bool            `json:"tls_server"`
	TLSCertFile string          `json:"tls_cert_file" validate:"required_if=TLSServer true"`
	TLSKeyFile  string          `json:"tls_key_file" validate:"required_if=TLSServer true"`
	CORS        CORSConfig      `json:"cors"`
	RateLimit   RateLimitConfig `json:"rate_limit"`
}

type CORSConfig struct {
	AllowOrigins []string `json:"allow_origins" validate:"min=1,dive,cors_origin"`
}

// RateLimitConfig IP별 요청 제한입니다.
type RateLimitConfig struct {
	Enabled           bool    `json:"enabled"`
	RequestsPerSecond float64 `json:"requests_per_second" validate:"min=0"`
	Burst             int     `json:"burst" validate:"min=0"`
}

// newDefaultConfig 파일과 환경 변수보다 우선순위가 낮은 기본값입니다.
func newDefaultConfig() AppConfig {
	return AppConfig{
		HTTPRetry: HTTPRetryConfig{
			MaxRetries: 3,
			RetryDelay: 2 * time.Second,
			Timeout:    15 * time.Second,
		},
		Storage: StorageConfig{
			Driver: StorageDriverMongo,
			Mongo: MongoConfig{
				URI:      "mongodb://localhost:27017",
				Database: "linkcompra",
				Timeout:  10 * time.Second,
			},
			File: FileStorageConfig{Dir: "data"},
		},
		Alert: AlertConfig{
			Enabled:  true,
			TimeSpec: "0 0 */1 * * *",
			Cooldown: 24 * time.Hour,
		},
		PriceRefresh: PriceRefreshConfig{
			Enabled:     true,
			TimeSpec:    "0 30 */6 * * *",
			Concurrency: 4,
		},
		Offers: OffersConfig{
			Timeout:        8 * time.Second,
			MaxResults:     40,
			WarmupTimeSpec: "0 */4 * * * *",
			Cache: OffersCache{
				Driver: CacheDriverMemory,
				TTL:    5 * time.Minute,
				Redis:  RedisConfig{Addr: "localhost:6379"},
			},
		},
		API: APIConfig{
			ListenPort: 2443,
			CORS:       CORSConfig{AllowOrigins: []string{"*"}},
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerSecond: 10,
				Burst:             20,
			},
		},
	}
}

// WhatsApp 기본값
const (
	DefaultWhatsAppBaseURL    = "https://graph.facebook.com"
	DefaultWhatsAppAPIVersion = "v20.0"
	DefaultWhatsAppRateLimit  = 20
	DefaultWhatsAppBurst      = 5
)

// applyDefaults 슬라이스 요소처럼 구조체 기본값으로 표현할 수 없는 항목을 채웁니다.
func (c *AppConfig) applyDefaults() {
	for i := range c.Notifiers.WhatsApps {
		w := &c.Notifiers.WhatsApps[i]
		if w.BaseURL == "" {
			w.BaseURL = DefaultWhatsAppBaseURL
		}
		if w.APIVersion == "" {
			w.APIVersion = DefaultWhatsAppAPIVersion
		}
		if w.RateLimit == 0 {
			w.RateLimit = DefaultWhatsAppRateLimit
		}
		if w.Burst == 0 {
			w.Burst = DefaultWhatsAppBurst
		}
	}

	for i := range c.Offers.Providers {
		if c.Offers.Providers[i].Timeout == 0 {
			c.Offers.Providers[i].Timeout = c.Offers.Timeout
		}
	}

	if c.Alert.NotifierID == "" && len(c.Notifiers.WhatsApps) > 0 {
		c.Alert.NotifierID = c.Notifiers.WhatsApps[0].ID
	}
}

// EnabledProviders 활성화된 오퍼 제공자 설정만 반환합니다.
func (c *OffersConfig) EnabledProviders() []ProviderConfig {
	var out []ProviderConfig
	for _, p := range c.Providers {
		if p.Enabled {
			out = append(out, p)
		}
	}
	return out
}
