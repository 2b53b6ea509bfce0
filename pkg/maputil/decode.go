// Package maputil map[string]any 형태의 동적 파라미터를 구조체로 변환합니다.
package maputil

import (
	"errors"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Decode input을 새 T로 디코딩합니다.
//
// 기본값은 json 태그 매핑, WeaklyTypedInput("123" -> 123), 임베디드 구조체 Squash이며
// 정의되지 않은 키는 무시합니다. 엄격한 검증이 필요하면 WithErrorUnused(true)를 사용합니다.
//
//	params, err := maputil.Decode[shopeeParams](provider.Params, maputil.WithErrorUnused(true))
func Decode[T any](input any, opts ...Option) (*T, error) {
	out := new(T)
	if err := DecodeTo(input, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeTo output의 기존 값을 유지한 채 input 값을 덮어씁니다.
func DecodeTo[T any](input any, output *T, opts ...Option) error {
	if output == nil {
		return errors.New("디코딩 결과를 저장할 output 포인터가 nil입니다")
	}

	cfg := &decodingConfig{
		tagName:          "json",
		weaklyTypedInput: true,
		squash:           true,
		trimSpace:        true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           output,
		TagName:          cfg.tagName,
		WeaklyTypedInput: cfg.weaklyTypedInput,
		ErrorUnused:      cfg.errorUnused,
		Squash:           cfg.squash,
		Metadata:         cfg.metadata,
		DecodeHook:       cfg.decodeHook(),
	})
	if err != nil {
		return err
	}

	if err := decoder.Decode(input); err != nil {
		return fmt.Errorf("입력 데이터를 %T(으)로 디코딩하는 데 실패했습니다: %w", output, err)
	}
	return nil
}

type decodingConfig struct {
	tagName          string
	weaklyTypedInput bool
	errorUnused      bool
	squash           bool
	trimSpace        bool

	metadata   *mapstructure.Metadata
	extraHooks []mapstructure.DecodeHookFunc
}

// decodeHook 사용자 훅이 기본 훅보다 먼저 실행되고, 환경 변수 치환은 기본 훅 중 가장 먼저 실행됩니다.
func (c *decodingConfig) decodeHook() mapstructure.DecodeHookFunc {
	hooks := make([]mapstructure.DecodeHookFunc, 0, len(c.extraHooks)+4)
	hooks = append(hooks, c.extraHooks...)
	hooks = append(hooks,
		expandEnvHookFunc(),
		mapstructure.TextUnmarshallerHookFunc(),
		stringToDurationHookFunc(),
		stringToSliceHookFunc(c.trimSpace),
	)
	return mapstructure.ComposeDecodeHookFunc(hooks...)
}

type Option func(*decodingConfig)

func WithTagName(tagName string) Option {
	return func(c *decodingConfig) { c.tagName = tagName }
}

func WithWeaklyTypedInput(enable bool) Option {
	return func(c *decodingConfig) { c.weaklyTypedInput = enable }
}

// WithErrorUnused 구조체에 없는 키가 있으면 에러를 반환합니다. 설정 오타 검출에 사용합니다.
func WithErrorUnused(enable bool) Option {
	return func(c *decodingConfig) { c.errorUnused = enable }
}

func WithDecodeHook(hooks ...mapstructure.DecodeHookFunc) Option {
	return func(c *decodingConfig) { c.extraHooks = append(c.extraHooks, hooks...) }
}

func WithMetadata(md *mapstructure.Metadata) Option {
	return func(c *decodingConfig) { c.metadata = md }
}

// WithTrimSpace "a, b" 형태 문자열을 슬라이스로 나눌 때 요소의 공백을 제거할지 정합니다. (기본값: true)
func WithTrimSpace(enable bool) Option {
	return func(c *decodingConfig) { c.trimSpace = enable }
}
