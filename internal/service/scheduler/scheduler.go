// Package scheduler 가격 알림 점검, 매장 가격 갱신, 오퍼 캐시 예열을 Cron 스케줄로 실행합니다.
package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"

	apperrors "github.com/darkkaiser/linkcompra-server/internal/pkg/errors"
	"github.com/darkkaiser/linkcompra-server/internal/service/contract"
	"github.com/darkkaiser/linkcompra-server/pkg/cronx"
	applog "github.com/darkkaiser/linkcompra-server/pkg/log"
)

const component = "scheduler.service"

type Scheduler struct {
	jobs []Job

	cron *cron.Cron

	// notificationSender 작업 실패를 기본 Notifier로 알립니다.
	notificationSender contract.NotificationSender

	running   bool
	runningMu sync.Mutex
}

func NewService(jobs []Job, notificationSender contract.NotificationSender) *Scheduler {
	if notificationSender == nil {
		panic("NotificationSender는 필수입니다")
	}

	return &Scheduler{
		jobs:               jobs,
		notificationSender: notificationSender,
	}
}

// Start 작업을 Cron 엔진에 등록하고 시작합니다. serviceStopCtx가 취소되면 실행 중인 작업이 끝날 때까지 기다린 뒤 멈춥니다.
func (s *Scheduler) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(component).Info("서비스 시작 진입: Scheduler 서비스 초기화 프로세스를 시작합니다")

	if s.notificationSender == nil {
		serviceStopWG.Done()
		return ErrNotificationSenderNotInitialized
	}

	if s.running {
		serviceStopWG.Done()
		applog.WithComponent(component).Warn("Scheduler 서비스가 이미 실행 중입니다 (중복 호출)")
		return nil
	}

	logger := cronLogger{}
	s.cron = cron.New(
		cron.WithParser(cronx.StandardParser()),
		cron.WithLogger(logger),
		cron.WithChain(
			cron.Recover(logger),
			cron.SkipIfStillRunning(logger),
		),
	)

	registered := s.registerJobs(serviceStopCtx)

	s.cron.Start()
	s.running = true

	applog.WithComponentAndFields(component, applog.Fields{
		"registered_schedules": registered,
		"total_defined_jobs":   len(s.jobs),
	}).Info("서비스 시작 완료: Scheduler 서비스가 정상적으로 초기화되었습니다")

	go func() {
		defer serviceStopWG.Done()

		<-serviceStopCtx.Done()

		s.stop()
	}()

	return nil
}

func (s *Scheduler) stop() {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if !s.running {
		return
	}

	applog.WithComponent(component).Info("종료 절차 진입: Scheduler 서비스 중지 시그널을 수신했습니다")

	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}

	s.cron = nil
	s.running = false

	applog.WithComponent(component).Info("Scheduler 서비스 종료 완료")
}

// registerJobs 표현식이 잘못된 작업은 건너뛰고 관리자에게 알립니다.
func (s *Scheduler) registerJobs(serviceStopCtx context.Context) int {
	registered := 0

	for _, job := range s.jobs {
		_, err := s.cron.AddFunc(job.TimeSpec, func() {
			s.runJob(serviceStopCtx, job)
		})
		if err != nil {
			s.logAndNotifyError(job.ID, newErrInvalidCronSpec(job.ID, job.TimeSpec, err))
			continue
		}
		registered++
	}

	return registered
}

// runJob 작업 컨텍스트는 서비스 종료 시 취소되어, 긴 작업이 종료를 붙잡지 않습니다.
func (s *Scheduler) runJob(ctx context.Context, job Job) {
	if ctx.Err() != nil {
		return
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"job_id": job.ID,
	}).Debug("작업 실행")

	err := job.Run(ctx)
	if err == nil {
		return
	}

	// 같은 프로세스에서 같은 Monitor/Watcher를 쓰는 다른 실행과 겹친 경우입니다.
	// CLI는 별도 프로세스라 이 잠금으로 막지 못합니다.
	if apperrors.Is(err, apperrors.Conflict) {
		applog.WithComponentAndFields(component, applog.Fields{
			"job_id": job.ID,
			"error":  err,
		}).Warn("이전 실행이 끝나지 않아 작업을 건너뜁니다")
		return
	}
	if ctx.Err() != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"job_id": job.ID,
		}).Info("서비스 종료로 작업이 중단되었습니다")
		return
	}

	s.logAndNotifyError(job.ID, err)
}

func (s *Scheduler) logAndNotifyError(jobID string, err error) {
	message := fmt.Sprintf("작업 실행 실패 (JobID=%s): %v", jobID, err)

	applog.WithComponentAndFields(component, applog.Fields{
		"job_id": jobID,
		"error":  err,
	}).Error("작업 실행 실패")

	if notifyErr := s.notificationSender.NotifyDefaultWithError(message); notifyErr != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"job_id": jobID,
			"error":  notifyErr,
		}).Warn("작업 실패 알림 전송 실패")
	}
}
