package validation

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ValidateFile path가 읽을 수 있는 일반 파일인지 검사합니다. (TLS 인증서, 키 파일)
func ValidateFile(path string) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("파일 경로가 비어 있습니다")
	}
	path = filepath.Clean(path)

	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("파일이 존재하지 않습니다 (path=%q)", path)
	case err != nil:
		return fmt.Errorf("파일 정보를 확인할 수 없습니다 (path=%q): %w", path, err)
	case !info.Mode().IsRegular():
		return fmt.Errorf("일반 파일이 아닙니다 (path=%q, mode=%s)", path, info.Mode())
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("파일을 읽을 수 없습니다 (path=%q): %w", path, err)
	}
	return f.Close()
}

// ValidateWritableDir file 저장소 디렉터리를 검사합니다.
//
// 아직 없는 경로는 저장소가 만들기 때문에 통과시키고, 이미 있으면 디렉터리이면서 쓰기 가능해야 합니다.
func ValidateWritableDir(path string) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("디렉터리 경로가 비어 있습니다")
	}
	path = filepath.Clean(path)

	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil
	case err != nil:
		return fmt.Errorf("디렉터리 정보를 확인할 수 없습니다 (path=%q): %w", path, err)
	case !info.IsDir():
		return fmt.Errorf("디렉터리가 아닙니다 (path=%q)", path)
	}

	probe, err := os.CreateTemp(path, ".write-check-*")
	if err != nil {
		return fmt.Errorf("디렉터리에 쓸 수 없습니다 (path=%q): %w", path, err)
	}
	name := probe.Name()
	probe.Close()
	return os.Remove(name)
}
