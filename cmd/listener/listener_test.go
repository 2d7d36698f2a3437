package listener

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signalexecutor/src/connectors"
	srclistener "signalexecutor/src/listener"
	"signalexecutor/src/pipeline"
)

func TestNotifyChatFallsBackToSource(t *testing.T) {
	assert.Equal(t, "-100", Config{SourceChannelID: "-100"}.NotifyChat())
	assert.Equal(t, "-200", Config{SourceChannelID: "-100", NotifyChannelID: "-200"}.NotifyChat())
}

func TestNewSource(t *testing.T) {
	telegram := connectors.NewTelegramClient("token", "http://127.0.0.1:1", time.Second)
	handler := pipeline.NewSequential(nil)

	src, err := newSource(Config{Mode: ModePoll, SourceChannelID: "-100"}, telegram, handler, nil)
	require.NoError(t, err)
	assert.IsType(t, &srclistener.Poller{}, src)

	src, err = newSource(Config{Mode: ModeRelay, RelayURL: "ws://127.0.0.1:1/feed"}, telegram, handler, nil)
	require.NoError(t, err)
	assert.IsType(t, &srclistener.Relay{}, src)

	_, err = newSource(Config{Mode: ModeRelay}, telegram, handler, nil)
	require.Error(t, err)

	src, err = newSource(Config{Mode: ModeWebhook}, telegram, handler, nil)
	require.NoError(t, err)
	assert.IsType(t, &webhookSource{}, src)

	_, err = newSource(Config{Mode: "carrier-pigeon"}, telegram, handler, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported listener mode")
}

func TestRunRequiresSourceChannel(t *testing.T) {
	t.Setenv("SOURCE_CHANNEL_ID", "")
	t.Setenv("TERMINAL", "paper")

	l := &Listener{}
	err := l.Run(testContext(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SOURCE_CHANNEL_ID")
}

func TestRunRejectsUnknownTerminal(t *testing.T) {
	t.Setenv("SOURCE_CHANNEL_ID", "-100")
	t.Setenv("TERMINAL", "mt4")

	l := &Listener{}
	err := l.Run(testContext(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported terminal")
}

func TestTelegramClientOutlastsIdleLongPoll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// an idle getUpdates is held by Telegram for the whole poll timeout
		time.Sleep(1500 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"result":[]}`))
	}))
	defer srv.Close()

	config := Config{PollTimeout: 1500 * time.Millisecond}
	client := newTelegramClient(connectors.Config{BotToken: "token", TelegramBaseURL: srv.URL}, config)

	updates, err := client.GetUpdates(testContext(t), 0, config.PollTimeout)
	require.NoError(t, err)
	assert.Empty(t, updates)
}

func TestTelegramClientTimeoutExceedsPollTimeout(t *testing.T) {
	for _, poll := range []time.Duration{0, time.Second, 30 * time.Second, 50 * time.Second} {
		client := newTelegramClient(connectors.Config{BotToken: "token"}, Config{PollTimeout: poll})
		assert.Greater(t, client.Timeout(), poll, "poll timeout %s", poll)
	}
}
