package file

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/darkkaiser/linkcompra-server/internal/service/contract"
	"github.com/darkkaiser/linkcompra-server/pkg/concurrency"
	applog "github.com/darkkaiser/linkcompra-server/pkg/log"
)

const component = "storage.file"

const (
	// tempFilePattern 원자적 쓰기에 쓰이는 임시 파일 패턴입니다. *.json 목록 조회에 섞이지 않습니다.
	tempFilePattern = ".entity-*.tmp"

	// staleTempFileAge 이보다 오래된 임시 파일은 비정상 종료의 잔재로 보고 삭제합니다.
	staleTempFileAge = time.Hour
)

// collection 한 종류의 엔티티를 "{dir}/{kind}" 아래에 엔티티당 JSON 파일 하나로 저장합니다.
type collection[T any] struct {
	kind string
	dir  string

	// locks 파일 경로(소문자) 단위로 읽기/쓰기를 직렬화합니다.
	locks *concurrency.KeyedMutex[string]
}

func newCollection[T any](baseDir, kind string) (*collection[T], error) {
	dir := filepath.Join(baseDir, kind)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, newErrDirectoryAccessFailed(err, dir)
	}

	c := &collection[T]{
		kind:  kind,
		dir:   dir,
		locks: concurrency.NewKeyedMutex[string](),
	}
	c.cleanupStaleTempFiles(time.Now())

	return c, nil
}

// load id에 해당하는 엔티티를 읽습니다. 파일이 없으면 contract.ErrNotFound입니다.
func (c *collection[T]) load(id string) (*T, error) {
	filename, err := c.resolveSafePath(id)
	if err != nil {
		return nil, err
	}

	var data []byte
	err = c.locks.WithLock(strings.ToLower(filename), func() error {
		var readErr error
		data, readErr = os.ReadFile(filename)
		if readErr != nil {
			if errors.Is(readErr, os.ErrNotExist) {
				return contract.ErrNotFound
			}
			return newErrReadFailed(readErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	v := new(T)
	if err := json.Unmarshal(data, v); err != nil {
		return nil, newErrUnmarshalFailed(err, filepath.Base(filename))
	}

	return v, nil
}

// loadAll 디렉토리의 모든 엔티티를 읽습니다. 손상된 파일은 경고를 남기고 건너뜁니다.
func (c *collection[T]) loadAll() ([]*T, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return nil, newErrReadFailed(err)
	}

	var out []*T
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}

		filename := filepath.Join(c.dir, entry.Name())

		var data []byte
		err := c.locks.WithLock(strings.ToLower(filename), func() error {
			var readErr error
			data, readErr = os.ReadFile(filename)
			return readErr
		})
		if err != nil {
			// 목록 조회와 삭제가 겹친 경우
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, newErrReadFailed(err)
		}

		v := new(T)
		if err := json.Unmarshal(data, v); err != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"kind":  c.kind,
				"file":  entry.Name(),
				"error": err,
			}).Warn("손상된 데이터 파일 건너뜀: JSON 역직렬화 실패")

			continue
		}

		out = append(out, v)
	}

	return out, nil
}

func (c *collection[T]) save(id string, v *T) error {
	if id == "" {
		return ErrEmptyID
	}

	filename, err := c.resolveSafePath(id)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		return newErrMarshalFailed(err)
	}

	return c.locks.WithLock(strings.ToLower(filename), func() error {
		return writeAtomic(filename, data)
	})
}

// remove id에 해당하는 파일을 삭제합니다. 파일이 없으면 contract.ErrNotFound입니다.
func (c *collection[T]) remove(id string) error {
	filename, err := c.resolveSafePath(id)
	if err != nil {
		return err
	}

	return c.locks.WithLock(strings.ToLower(filename), func() error {
		if err := os.Remove(filename); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return contract.ErrNotFound
			}
			return newErrWriteFailed(err, "파일 삭제")
		}
		return nil
	})
}

// resolveSafePath 파일 경로를 만들고 저장소 디렉토리를 벗어나지 않는지 검증합니다.
func (c *collection[T]) resolveSafePath(id string) (string, error) {
	cleanPath := filepath.Clean(filepath.Join(c.dir, generateFilename(c.kind, id)))

	rel, err := filepath.Rel(c.dir, cleanPath)
	if err != nil {
		return "", newErrPathResolutionFailed(err)
	}
	if strings.HasPrefix(rel, "..") || strings.ContainsRune(rel, filepath.Separator) {
		applog.WithComponentAndFields(component, applog.Fields{
			"kind":     c.kind,
			"id":       id,
			"path":     cleanPath,
			"rel_path": rel,
		}).Error("파일 경로 생성 차단: 경로 이탈 시도 감지")

		return "", ErrPathTraversalDetected
	}

	return cleanPath, nil
}

// cleanupStaleTempFiles 이전 실행에서 남은 오래된 임시 파일을 정리합니다.
func (c *collection[T]) cleanupStaleTempFiles(now time.Time) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"dir":   c.dir,
			"error": err,
		}).Warn("임시 파일 정리 중단: 디렉토리 조회 실패")

		return
	}

	threshold := now.Add(-staleTempFileAge)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if matched, _ := filepath.Match(tempFilePattern, entry.Name()); !matched {
			continue
		}

		info, err := entry.Info()
		if err != nil || info.ModTime().After(threshold) {
			continue
		}

		fullPath := filepath.Join(c.dir, entry.Name())
		if err := os.Remove(fullPath); err != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"file":  fullPath,
				"error": err,
			}).Warn("임시 파일 삭제 실패")
		} else {
			applog.WithComponentAndFields(component, applog.Fields{
				"file": fullPath,
			}).Info("임시 파일 삭제 완료: 이전 실행 잔존 파일 정리")
		}
	}
}

// writeAtomic 임시 파일에 쓰고 fsync 한 뒤 rename 으로 교체합니다.
// 중간에 프로세스가 죽어도 기존 파일은 온전히 남습니다.
func writeAtomic(filename string, data []byte) error {
	dir := filepath.Dir(filename)

	tmpFile, err := os.CreateTemp(dir, tempFilePattern)
	if err != nil {
		return newErrWriteFailed(err, "임시 파일 생성")
	}
	tmpPath := tmpFile.Name()

	// Windows에서는 열린 파일을 지울 수 없으므로 Close가 Remove보다 먼저 실행되어야 한다.
	defer os.Remove(tmpPath)
	defer tmpFile.Close()

	if _, err := tmpFile.Write(data); err != nil {
		return newErrWriteFailed(err, "파일 쓰기")
	}
	if err := tmpFile.Sync(); err != nil {
		return newErrWriteFailed(err, "디스크 동기화")
	}
	if err := tmpFile.Close(); err != nil {
		return newErrWriteFailed(err, "파일 닫기")
	}
	if err := renameWithRetry(tmpPath, filename); err != nil {
		return newErrWriteFailed(err, "파일 이름 변경")
	}

	// 디렉토리 엔트리까지 동기화한다. 실패해도 데이터는 이미 기록되었다.
	if dirFile, err := os.Open(dir); err == nil {
		_ = dirFile.Sync()
		dirFile.Close()
	}

	return nil
}

// renameWithRetry 백신이나 인덱서가 파일을 잠시 잡고 있는 Windows 개발 환경을 위해 짧게 재시도합니다.
func renameWithRetry(oldPath, newPath string) error {
	const maxRetries = 5
	const retryDelay = 10 * time.Millisecond

	var lastErr error
	for range maxRetries {
		if lastErr = os.Rename(oldPath, newPath); lastErr == nil {
			return nil
		}
		time.Sleep(retryDelay)
	}

	return lastErr
}
