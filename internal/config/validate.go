package config

import (
	"fmt"
	"slices"
	"time"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/darkkaiser/linkcompra-server/internal/pkg/errors"
	"github.com/darkkaiser/linkcompra-server/pkg/cronx"
	"github.com/darkkaiser/linkcompra-server/pkg/validation"
)

// validate 구조체 태그 검증 후 항목 간 참조 관계를 확인합니다.
func (c *AppConfig) validate(v *validator.Validate) error {
	if err := c.HTTPRetry.validate(v); err != nil {
		return err
	}
	if err := c.Storage.validate(v); err != nil {
		return err
	}

	whatsAppIDs, err := c.Notifiers.validate(v)
	if err != nil {
		return err
	}

	if err := c.Alert.validate(whatsAppIDs); err != nil {
		return err
	}
	if err := c.PriceRefresh.validate(v); err != nil {
		return err
	}
	if err := c.Offers.validate(v); err != nil {
		return err
	}
	if err := c.API.validate(v); err != nil {
		return err
	}

	return nil
}

func (c *HTTPRetryConfig) validate(v *validator.Validate) error {
	if err := checkStruct(v, c, "HTTP 재시도(http_retry)"); err != nil {
		return err
	}
	if c.RetryDelay < 0 || c.Timeout <= 0 {
		return apperrors.New(apperrors.InvalidInput, "HTTP 재시도 대기 시간(retry_delay)은 0 이상, 타임아웃(timeout)은 0보다 커야 합니다")
	}
	return nil
}

func (c *StorageConfig) validate(v *validator.Validate) error {
	if err := checkStruct(v, c, "저장소(storage)"); err != nil {
		return err
	}

	switch c.Driver {
	case StorageDriverMongo:
		if c.Mongo.URI == "" || c.Mongo.Database == "" {
			return apperrors.New(apperrors.InvalidInput, "mongo 저장소는 uri와 database 설정이 필수입니다")
		}
		if c.Mongo.Timeout <= 0 {
			return apperrors.New(apperrors.InvalidInput, "mongo 저장소 타임아웃(timeout)은 0보다 커야 합니다")
		}
	case StorageDriverFile:
		if c.File.Dir == "" {
			return apperrors.New(apperrors.InvalidInput, "file 저장소는 디렉터리(dir) 설정이 필수입니다")
		}
		if err := validation.ValidateWritableDir(c.File.Dir); err != nil {
			return apperrors.Wrap(err, apperrors.InvalidInput, "file 저장소 디렉터리(dir)를 사용할 수 없습니다")
		}
	}
	return nil
}

// validate 검증을 통과하면 WhatsApp 채널 ID 목록을 반환합니다.
func (c *NotifierConfig) validate(v *validator.Validate) ([]string, error) {
	if err := checkStruct(v, c, "알림 채널(notifiers)"); err != nil {
		return nil, err
	}

	var whatsAppIDs, allIDs []string
	for _, w := range c.WhatsApps {
		if err := checkStruct(v, w, fmt.Sprintf("WhatsApp Notifier['%s']", w.ID)); err != nil {
			return nil, err
		}
		whatsAppIDs = append(whatsAppIDs, w.ID)
	}
	allIDs = append(allIDs, whatsAppIDs...)
	for _, t := range c.Telegrams {
		if err := checkStruct(v, t, fmt.Sprintf("Telegram Notifier['%s']", t.ID)); err != nil {
			return nil, err
		}
		allIDs = append(allIDs, t.ID)
	}

	// 채널 종류가 달라도 ID는 겹칠 수 없다.
	if err := checkUniqueField(v, allIDs, "", "Notifier"); err != nil {
		return nil, err
	}
	if !slices.Contains(allIDs, c.DefaultNotifierID) {
		return nil, apperrors.Newf(apperrors.NotFound, "기본 NotifierID('%s')가 정의된 Notifier 목록에 존재하지 않습니다", c.DefaultNotifierID)
	}

	return whatsAppIDs, nil
}

func (c *AlertConfig) validate(whatsAppIDs []string) error {
	if !c.Enabled {
		return nil
	}

	if err := cronx.Validate(c.TimeSpec); err != nil {
		return apperrors.Wrap(err, apperrors.InvalidInput, "가격 알림(alert)의 스케줄(time_spec) 설정이 유효하지 않습니다")
	}
	if c.Cooldown <= 0 {
		return apperrors.New(apperrors.InvalidInput, "가격 알림 재발송 간격(cooldown)은 0보다 커야 합니다")
	}
	if !slices.Contains(whatsAppIDs, c.NotifierID) {
		return apperrors.Newf(apperrors.NotFound, "가격 알림에서 참조하는 WhatsApp NotifierID('%s')가 정의되지 않았습니다", c.NotifierID)
	}
	if err := validation.ValidateHTTPURL(c.SiteBaseURL); err != nil {
		return apperrors.Wrap(err, apperrors.InvalidInput, "가격 알림의 사이트 주소(site_base_url)가 올바르지 않습니다")
	}
	return nil
}

func (c *PriceRefreshConfig) validate(v *validator.Validate) error {
	if err := checkStruct(v, c, "가격 갱신(price_refresh)"); err != nil {
		return err
	}
	if c.Enabled {
		if err := cronx.Validate(c.TimeSpec); err != nil {
			return apperrors.Wrap(err, apperrors.InvalidInput, "가격 갱신(price_refresh)의 스케줄(time_spec) 설정이 유효하지 않습니다")
		}
	}
	return nil
}

func (c *OffersConfig) validate(v *validator.Validate) error {
	if err := checkStruct(v, c, "오퍼(offers)"); err != nil {
		return err
	}
	if c.Timeout <= 0 || c.Cache.TTL <= 0 {
		return apperrors.New(apperrors.InvalidInput, "오퍼 제공자 타임아웃(timeout)과 캐시 TTL(cache.ttl)은 0보다 커야 합니다")
	}
	if c.Cache.Driver == CacheDriverRedis && c.Cache.Redis.Addr == "" {
		return apperrors.New(apperrors.InvalidInput, "redis 캐시는 주소(cache.redis.addr) 설정이 필수입니다")
	}
	if len(c.WarmQueries) > 0 {
		if err := cronx.Validate(c.WarmupTimeSpec); err != nil {
			return apperrors.Wrap(err, apperrors.InvalidInput, "오퍼 캐시 예열(warmup_time_spec) 스케줄 설정이 유효하지 않습니다")
		}
	}

	if err := checkUniqueField(v, c.Providers, "ID", "오퍼 제공자"); err != nil {
		return err
	}
	for _, p := range c.Providers {
		if err := checkStruct(v, p, fmt.Sprintf("오퍼 제공자['%s']", p.ID)); err != nil {
			return err
		}
	}
	return nil
}

func (c *APIConfig) validate(v *validator.Validate) error {
	if err := checkStruct(v, c, "API 서버(api)"); err != nil {
		return err
	}

	if slices.Contains(c.CORS.AllowOrigins, "*") && len(c.CORS.AllowOrigins) > 1 {
		return apperrors.New(apperrors.InvalidInput, "와일드카드(*)는 다른 도메인과 함께 사용할 수 없습니다")
	}

	if c.TLSServer {
		if err := validation.ValidateFile(c.TLSCertFile); err != nil {
			return apperrors.Wrap(err, apperrors.InvalidInput, "TLS 인증서 파일(tls_cert_file)을 사용할 수 없습니다")
		}
		if err := validation.ValidateFile(c.TLSKeyFile); err != nil {
			return apperrors.Wrap(err, apperrors.InvalidInput, "TLS 키 파일(tls_key_file)을 사용할 수 없습니다")
		}
	}
	return nil
}

// VerifyRecommendations 치명적이지는 않지만 운영 시 주의가 필요한 설정을 경고 메시지로 반환합니다.
func (c *AppConfig) VerifyRecommendations() []string {
	var warnings []string

	if c.API.ListenPort < 1024 {
		warnings = append(warnings, fmt.Sprintf("시스템 예약 포트(1-1023)를 사용하도록 설정되었습니다(port: %d). 서버 구동 시 관리자 권한이 필요할 수 있습니다", c.API.ListenPort))
	}
	if c.Alert.Enabled && c.Alert.Cooldown < time.Hour {
		warnings = append(warnings, fmt.Sprintf("가격 알림 재발송 간격(cooldown)이 1시간 미만입니다(%s). 구독자에게 알림이 과도하게 발송될 수 있습니다", c.Alert.Cooldown))
	}
	if !c.Debug && c.Offers.Cache.Driver == CacheDriverMemory {
		warnings = append(warnings, "운영 환경에서 memory 오퍼 캐시를 사용 중입니다. 다중 인스턴스 환경에서는 redis 사용을 권장합니다")
	}
	if !c.Debug && c.Storage.Driver == StorageDriverFile {
		warnings = append(warnings, "운영 환경에서 file 저장소를 사용 중입니다. mongo 사용을 권장합니다")
	}
	if len(c.Offers.EnabledProviders()) == 0 {
		warnings = append(warnings, "활성화된 오퍼 제공자가 없습니다. 오퍼 검색은 항상 빈 결과를 반환합니다")
	}

	return warnings
}
