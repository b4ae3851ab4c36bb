package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/five82/lumen/internal/app"
)

var (
	configPath string
	hostFlag   string
	debugMode  bool
	verbose    bool

	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
	faintColor   = color.New(color.FgHiBlack)
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		errorColor.Fprintf(os.Stderr, "lumen: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "lumen",
		Short: "Dim and brighten Philips Hue lights from the terminal",
		Long: `lumen talks to a Philips Hue bridge on the local network.

Without a subcommand it opens an interactive light list. The bridge host comes
from --host, the HOST environment variable or ~/.config/lumen/config.toml, and
is discovered over mDNS when none of these is set.`,
		Version:       "0.1.0",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), options(false))
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "config file (default ~/.config/lumen/config.toml)")
	flags.StringVar(&hostFlag, "host", "", "bridge host or IP, overrides config and HOST")
	flags.BoolVar(&debugMode, "debug", false, "log at debug level")
	flags.BoolVarP(&verbose, "verbose", "v", false, "log to stderr (non-interactive commands)")

	root.AddCommand(newPairCmd(), newLightsCmd(), newSetCmd(), newLogsCmd())
	return root
}

func options(console bool) app.Options {
	opts := app.Options{
		ConfigPath: configPath,
		Host:       hostFlag,
		Debug:      debugMode,
	}
	if console && verbose {
		opts.Console = os.Stderr
	}
	return opts
}

// withEnv runs fn with a ready Env and closes it afterwards.
func withEnv(ctx context.Context, fn func(*app.Env) error) error {
	env, err := app.Setup(ctx, options(true))
	if err != nil {
		return err
	}
	defer func() { _ = env.Close() }()
	return fn(env)
}

func printError(msg string) {
	errorColor.Fprintln(os.Stderr, "✗ "+msg)
}

func printHint(format string, args ...any) {
	faintColor.Fprintf(os.Stderr, format+"\n", args...)
}

func printKV(key, value string) {
	infoColor.Printf("%-10s", key)
	fmt.Println(value)
}
