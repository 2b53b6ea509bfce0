// Package storage 설정에 따라 저장소 드라이버(mongo, file)를 선택합니다.
package storage

import (
	"context"
	"fmt"

	"github.com/darkkaiser/linkcompra-server/internal/config"
	apperrors "github.com/darkkaiser/linkcompra-server/internal/pkg/errors"
	"github.com/darkkaiser/linkcompra-server/internal/service/contract"
	"github.com/darkkaiser/linkcompra-server/internal/storage/file"
	"github.com/darkkaiser/linkcompra-server/internal/storage/mongodb"
	applog "github.com/darkkaiser/linkcompra-server/pkg/log"
)

const component = "storage"

// Repositories 서비스들이 공유하는 저장소 묶음입니다.
type Repositories struct {
	Products contract.ProductRepository
	Leads    contract.LeadRepository
	Pinger   contract.StoragePinger

	// Close 드라이버 연결을 해제합니다.
	Close func(ctx context.Context) error
}

// Open cfg.Driver에 해당하는 저장소를 엽니다.
func Open(ctx context.Context, cfg config.StorageConfig) (*Repositories, error) {
	switch cfg.Driver {
	case config.StorageDriverMongo:
		s, err := mongodb.Connect(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		return &Repositories{
			Products: s.Products(),
			Leads:    s.Leads(),
			Pinger:   s,
			Close:    s.Close,
		}, nil

	case config.StorageDriverFile:
		s, err := file.Open(cfg.File.Dir)
		if err != nil {
			return nil, err
		}

		applog.WithComponentAndFields(component, applog.Fields{
			"dir": cfg.File.Dir,
		}).Info("파일 저장소 사용")

		return &Repositories{
			Products: s.Products(),
			Leads:    s.Leads(),
			Pinger:   s,
			Close:    s.Close,
		}, nil

	default:
		return nil, apperrors.New(apperrors.InvalidInput, fmt.Sprintf("지원하지 않는 저장소 드라이버입니다: '%s'", cfg.Driver))
	}
}
