package file

import (
	"fmt"
	"hash/fnv"
	"strings"
	"unicode/utf8"

	"github.com/iancoleman/strcase"
)

// maxNamePartBytes 파일명에 들어가는 ID 부분의 최대 바이트 길이입니다.
const maxNamePartBytes = 64

// filenameReplacer 경로 이탈과 OS 예약 문자를 하이픈으로 치환합니다.
var filenameReplacer = strings.NewReplacer(
	"..", "--",
	"/", "-",
	"\\", "-",
	"|", "-",
	"<", "-",
	">", "-",
	":", "-",
	"\"", "-",
	"?", "-",
	"*", "-",
)

// generateFilename "{kind}-{kebab(id)}-{fnv64}.json" 형식의 파일명을 만듭니다.
//
// 정제된 이름은 사람이 식별하기 위한 것이고, 고유성은 원본 ID의 64비트 해시가 보장합니다.
// 따라서 정제 후 이름이 같아지는 서로 다른 ID도 다른 파일에 저장됩니다.
func generateFilename(kind, id string) string {
	name := truncateByBytes(sanitizeName(id), maxNamePartBytes)

	hasher := fnv.New64a()
	_, _ = fmt.Fprintf(hasher, "%d:%s|%d:%s", len(kind), kind, len(id), id)

	return fmt.Sprintf("%s-%s-%016x.json", kind, name, hasher.Sum64())
}

func sanitizeName(s string) string {
	kebab := strcase.ToKebab(s)

	kebab = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7F {
			return '-'
		}
		return r
	}, kebab)

	return filenameReplacer.Replace(kebab)
}

// truncateByBytes UTF-8 문자를 깨뜨리지 않고 limit 바이트 이하로 자릅니다.
func truncateByBytes(s string, limit int) string {
	if len(s) <= limit {
		return s
	}

	var n int
	for i := 0; i < len(s); {
		_, size := utf8.DecodeRuneInString(s[i:])
		if n+size > limit {
			break
		}
		n += size
		i += size
	}

	return s[:n]
}
