package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"signalexecutor/cmd/keys"
	"signalexecutor/cmd/listener"
	"signalexecutor/cmd/parse"
	"signalexecutor/cmd/quote"
)

var Version string

func SetupLogger() {
	levelStr := strings.ToLower(os.Getenv("LOG_LEVEL"))

	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.DebugLevel
	}

	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}

func main() {
	// a missing .env is fine, the process environment still applies
	_ = godotenv.Load()
	SetupLogger()
	defer handlePanic()

	app := cli.NewApp()
	app.Name = "Signal Executor"
	app.Usage = "Execute chat trade signals on MetaTrader 5"
	app.Version = Version

	app.Commands = []cli.Command{
		listenCMD,
		parseCMD,
		quoteCMD,
		hashSecretCMD,
	}

	if err := app.Run(os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var (
	listenCMD = cli.Command{
		Name:        "listen",
		Usage:       "run the signal listener",
		Action:      listenAction,
		ArgsUsage:   "",
		Flags:       []cli.Flag{},
		Description: `Listen to the source channel and execute every trade signal`,
	}
	parseCMD = cli.Command{
		Name:        "parse",
		Usage:       "parse a message without trading",
		Action:      parseAction,
		ArgsUsage:   "[message text, read from stdin when omitted]",
		Flags:       []cli.Flag{},
		Description: `Print the trade signal found in a message`,
	}
	quoteCMD = cli.Command{
		Name:      "quote",
		Usage:     "print the current broker quote",
		Action:    quoteAction,
		ArgsUsage: "",
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:   "symbol",
				Value:  "XAUUSD",
				Usage:  "broker symbol",
				EnvVar: "SIGNAL_SYMBOL",
			},
		},
		Description: `Fetch bid, ask and minimum stop distance from the terminal`,
	}
	hashSecretCMD = cli.Command{
		Name:        "hash_secret",
		Usage:       "hash a webhook secret token",
		Action:      hashSecretAction,
		ArgsUsage:   "[token, read from stdin when omitted]",
		Flags:       []cli.Flag{},
		Description: `Print the WEBHOOK_SECRET_HASH value for a secret token`,
	}
)

func listenAction(_ *cli.Context) error {

	logrus.Info("Starting listen CMD")

	l := &listener.Listener{Log: logrus.WithField("cmd", "listen")}
	err := l.Start()
	if err != nil {
		logrus.WithError(err).Error("Starting cmd")
		return err
	}

	return nil
}

func parseAction(c *cli.Context) error {
	text, err := argsOrStdin(c, os.Stdin)
	if err != nil {
		return err
	}
	return parse.Run(text, os.Stdout)
}

func quoteAction(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return quote.Run(ctx, c.String("symbol"), os.Stdout, logrus.WithField("cmd", "quote"))
}

func hashSecretAction(c *cli.Context) error {
	token, err := argsOrStdin(c, os.Stdin)
	if err != nil {
		return err
	}
	return keys.HashSecret(token, os.Stdout)
}

func argsOrStdin(c *cli.Context, stdin io.Reader) (string, error) {
	if c.NArg() > 0 {
		return strings.Join(c.Args(), " "), nil
	}
	b, err := io.ReadAll(bufio.NewReader(stdin))
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(b), nil
}

func handlePanic() {
	if r := recover(); r != nil {
		logrus.WithError(fmt.Errorf("%+v", r)).Error("Application signal executor panic")
		//nolint
		time.Sleep(time.Second * 5)
	}
}
