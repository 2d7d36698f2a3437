package listener

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"signalexecutor/src/broker"
	"signalexecutor/src/connectors"
	srclistener "signalexecutor/src/listener"
	"signalexecutor/src/pipeline"
	"signalexecutor/src/security"
	"signalexecutor/src/server"
	tradesignal "signalexecutor/src/signal"
)

type Listener struct {
	Log *logrus.Entry
}

// source is a running message feed.
type source interface {
	Run(ctx context.Context) error
}

func (l *Listener) Start() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	return l.Run(ctx)
}

// Run wires the pipeline from the environment and blocks until ctx ends.
func (l *Listener) Run(ctx context.Context) error {
	if l.Log == nil {
		l.Log = logrus.NewEntry(logrus.StandardLogger())
	}
	config := GetConfig()
	connCfg := connectors.GetConfig()

	if config.SourceChannelID == "" {
		return errors.New("SOURCE_CHANNEL_ID is required")
	}

	terminal, err := connectors.NewTerminal(connCfg)
	if err != nil {
		return err
	}
	telegram := newTelegramClient(connCfg, config)

	handler := pipeline.NewSequential(pipeline.NewOrchestrator(
		l.Log,
		tradesignal.NewParserFromConfig(tradesignal.GetConfig()),
		broker.NewTrader(terminal, broker.GetConfig(), l.Log),
		telegram,
		config.NotifyChat(),
	))

	l.Log.WithFields(logrus.Fields{
		"mode":     config.Mode,
		"terminal": connCfg.Terminal,
		"source":   config.SourceChannelID,
		"notify":   config.NotifyChat(),
		"timeout":  telegram.Timeout().String(),
	}).Info("starting signal listener")

	src, err := newSource(config, telegram, handler, l.Log)
	if err != nil {
		return err
	}
	return src.Run(ctx)
}

// pollTimeoutMargin keeps the HTTP deadline past the server-side long poll.
const pollTimeoutMargin = 10 * time.Second

// newTelegramClient builds the Bot API client shared by the poller and the
// notifier. Its timeout must outlast an idle getUpdates call.
func newTelegramClient(connCfg connectors.Config, config Config) *connectors.TelegramClient {
	return connectors.NewTelegramClient(connCfg.BotToken, connCfg.TelegramBaseURL, config.PollTimeout+pollTimeoutMargin)
}

func newSource(config Config, telegram *connectors.TelegramClient, handler pipeline.Handler, log *logrus.Entry) (source, error) {
	switch config.Mode {
	case ModePoll:
		return srclistener.NewPoller(telegram, handler, config.SourceChannelID, config.PollTimeout, config.PollErrorDelay, log), nil
	case ModeRelay:
		if config.RelayURL == "" {
			return nil, errors.New("RELAY_URL is required in relay mode")
		}
		return srclistener.NewRelay(config.RelayURL, config.RelayToken, handler, config.SourceChannelID, config.RelayReconnectDelay, log), nil
	case ModeWebhook:
		srvCfg := server.GetConfig()
		webhook := srclistener.NewWebhook(handler, config.SourceChannelID, security.GetConfig().WebhookSecretHash, log)
		return &webhookSource{port: srvCfg.Port, router: server.NewRouter(srvCfg.WebhookPath, webhook)}, nil
	default:
		return nil, fmt.Errorf("unsupported listener mode %q", config.Mode)
	}
}

type webhookSource struct {
	port   string
	router http.Handler
}

func (w *webhookSource) Run(ctx context.Context) error {
	return server.StartServer(ctx, w.port, w.router)
}
