package telegram

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	apperrors "github.com/darkkaiser/linkcompra-server/internal/pkg/errors"
	"github.com/darkkaiser/linkcompra-server/internal/service/contract"
)

type mockBotClient struct {
	mock.Mock
}

func (m *mockBotClient) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	args := m.Called(c)
	return tgbotapi.Message{}, args.Error(0)
}

func newTestNotifier(client botClient) *telegramNotifier {
	n := newNotifier("telegram", 1234, client, time.Millisecond)
	n.rateLimiter = rate.NewLimiter(rate.Inf, 1)
	return n
}

func sentText(c tgbotapi.Chattable) string {
	return c.(tgbotapi.MessageConfig).Text
}

func TestSendNotification(t *testing.T) {
	t.Run("Success_HTMLMessage", func(t *testing.T) {
		client := &mockBotClient{}
		client.On("Send", mock.MatchedBy(func(c tgbotapi.Chattable) bool {
			msg := c.(tgbotapi.MessageConfig)
			return msg.ChatID == 1234 && msg.ParseMode == tgbotapi.ModeHTML
		})).Return(nil).Once()

		n := newTestNotifier(client)
		n.sendNotification(context.Background(), &contract.Notification{Title: "가격 갱신", Message: "a < b"})

		client.AssertExpectations(t)
		assert.Equal(t, "<b>【 가격 갱신 】</b>\n\na &lt; b", sentText(client.Calls[0].Arguments.Get(0).(tgbotapi.Chattable)))
	})

	t.Run("Success_RetryThenSucceed", func(t *testing.T) {
		client := &mockBotClient{}
		client.On("Send", mock.Anything).Return(errors.New("network")).Once()
		client.On("Send", mock.Anything).Return(nil).Once()

		n := newTestNotifier(client)

		require.NoError(t, n.sendChunk(context.Background(), "m"))
		client.AssertNumberOfCalls(t, "Send", 2)
	})

	t.Run("Failure_AllAttempts", func(t *testing.T) {
		client := &mockBotClient{}
		client.On("Send", mock.Anything).Return(errors.New("network"))

		n := newTestNotifier(client)

		err := n.sendChunk(context.Background(), "m")
		assert.True(t, apperrors.Is(err, apperrors.Unavailable))
		client.AssertNumberOfCalls(t, "Send", maxAttempts)
	})

	t.Run("Success_SplitLongMessage", func(t *testing.T) {
		client := &mockBotClient{}
		client.On("Send", mock.Anything).Return(nil)

		line := strings.Repeat("x", 1000)
		message := strings.Join([]string{line, line, line, line, line}, "\n")

		n := newTestNotifier(client)
		n.sendNotification(context.Background(), &contract.Notification{Message: message})

		client.AssertNumberOfCalls(t, "Send", 2)
	})

	t.Run("Failure_StopAfterChunkFailure", func(t *testing.T) {
		client := &mockBotClient{}
		client.On("Send", mock.Anything).Return(errors.New("blocked"))

		line := strings.Repeat("x", 3000)
		n := newTestNotifier(client)
		n.sendNotification(context.Background(), &contract.Notification{Message: line + "\n" + line})

		client.AssertNumberOfCalls(t, "Send", maxAttempts)
	})
}

func TestBuildMessage(t *testing.T) {
	t.Run("Success_NoTitle", func(t *testing.T) {
		assert.Equal(t, "hello", buildMessage(&contract.Notification{Message: "hello"}))
	})

	t.Run("Success_ErrorPrefix", func(t *testing.T) {
		msg := buildMessage(&contract.Notification{Message: "falhou", ErrorOccurred: true})
		assert.True(t, strings.HasPrefix(msg, "🚨 <b>오류가 발생하였습니다.</b>"))
		assert.True(t, strings.HasSuffix(msg, "falhou"))
	})
}

func TestSplitMessage(t *testing.T) {
	t.Run("Success_Short", func(t *testing.T) {
		assert.Equal(t, []string{"abc"}, splitMessage("abc", 10))
	})

	t.Run("Success_LineBoundary", func(t *testing.T) {
		assert.Equal(t, []string{"aaaa\nbbbb", "cccc"}, splitMessage("aaaa\nbbbb\ncccc", 10))
	})

	// 한 줄이 한도를 넘으면 멀티바이트 문자를 깨뜨리지 않고 잘라야 합니다.
	t.Run("Success_LongLineRuneBoundary", func(t *testing.T) {
		chunks := splitMessage(strings.Repeat("가", 10), 10)

		require.Len(t, chunks, 4)
		for _, c := range chunks {
			assert.LessOrEqual(t, len(c), 10)
			assert.True(t, strings.HasPrefix(c, "가"))
		}
		assert.Equal(t, strings.Repeat("가", 10), strings.Join(chunks, ""))
	})
}
