package telegram

import (
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/darkkaiser/linkcompra-server/internal/pkg/mark"
	"github.com/darkkaiser/linkcompra-server/internal/service/contract"
	"github.com/darkkaiser/linkcompra-server/pkg/strutil"
)

const (
	// messageMaxLength Bot API 한도(4096)에서 HTML 태그 여유분을 뺀 값입니다.
	messageMaxLength = 3900

	maxTitleLength = 200

	titleFormat = "<b>【 %s 】</b>\n\n%s"
	errorFormat = "%s <b>오류가 발생하였습니다.</b>\n\n%s"
)

// buildMessage 본문은 HTML 이스케이프하고 제목과 오류 표시만 태그로 감쌉니다.
func buildMessage(notification *contract.Notification) string {
	message := html.EscapeString(notification.Message)

	if title := strings.TrimSpace(notification.Title); title != "" {
		message = fmt.Sprintf(titleFormat, html.EscapeString(strutil.Truncate(title, maxTitleLength)), message)
	}
	if notification.ErrorOccurred {
		message = fmt.Sprintf(errorFormat, mark.Alert, message)
	}

	return message
}

// splitMessage 가능한 줄 단위로 maxBytes 이하 조각으로 나눕니다.
// 한 줄이 maxBytes를 넘으면 UTF-8 문자 경계에서 자릅니다.
func splitMessage(message string, maxBytes int) []string {
	if len(message) <= maxBytes {
		return []string{message}
	}

	var chunks []string
	var sb strings.Builder

	flush := func() {
		if sb.Len() > 0 {
			chunks = append(chunks, sb.String())
			sb.Reset()
		}
	}

	for line := range strings.SplitSeq(message, "\n") {
		needed := len(line)
		if sb.Len() > 0 {
			needed++
		}

		if sb.Len()+needed <= maxBytes {
			if sb.Len() > 0 {
				sb.WriteByte('\n')
			}
			sb.WriteString(line)
			continue
		}

		flush()

		for len(line) > maxBytes {
			cut := maxBytes
			for cut > 0 && !utf8.RuneStart(line[cut]) {
				cut--
			}
			chunks = append(chunks, line[:cut])
			line = line[cut:]
		}
		sb.WriteString(line)
	}
	flush()

	return chunks
}
