package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/lumen/internal/app"
	"github.com/five82/lumen/internal/config"
	"github.com/five82/lumen/internal/hue"
	"github.com/five82/lumen/internal/logtail"
)

func newPairCmd() *cobra.Command {
	var wait bool
	cmd := &cobra.Command{
		Use:   "pair",
		Short: "Request a username from the bridge",
		Long: `Asks the bridge for a new username. Press the link button on the bridge
first, or pass --wait to keep retrying until it is pressed.

The username is printed, not stored. Put it in USERNAME_KEY or in the
username key of the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd.Context(), func(env *app.Env) error {
				if env.Session.Paired() {
					successColor.Println("✓ Already paired")
					printKV("Username:", env.Session.Username())
					return nil
				}

				var err error
				if wait {
					fmt.Println("Press the link button on the bridge...")
					err = app.PairUntilReady(cmd.Context(), env.Session, 0, env.Logger, func(_ int, delay time.Duration) {
						printHint("  not pressed yet, retrying in %s", delay)
					})
				} else {
					err = env.Session.Pair(cmd.Context())
				}
				if err != nil {
					if hue.IsLinkButtonNotPressed(err) {
						printError("Link button not pressed")
						printHint("Press the button on the bridge, then run `lumen pair` again or use --wait.")
					}
					return err
				}

				successColor.Println("✓ Paired with " + env.Session.Host())
				printKV("Username:", env.Session.Username())
				printHint("export %s=%s", config.EnvUsername, env.Session.Username())
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&wait, "wait", "w", false, "retry until the link button is pressed")
	return cmd
}

func newLightsCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "lights",
		Short: "List lights and their brightness",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd.Context(), func(env *app.Env) error {
				lights, err := env.Session.Lights(cmd.Context())
				if err != nil {
					if hue.IsUnauthorized(err) {
						printHint("Run `lumen pair` and set %s.", config.EnvUsername)
					}
					return err
				}
				printLights(os.Stdout, lights, all)
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "include unreachable lights")
	return cmd
}

func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <id> <brightness>",
		Short: "Set a light's brightness (0-254, 0 turns it off)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			bri, err := parseBrightness(args[1])
			if err != nil {
				return err
			}
			return withEnv(cmd.Context(), func(env *app.Env) error {
				if err := env.Session.SetBrightness(cmd.Context(), args[0], bri); err != nil {
					return err
				}
				successColor.Printf("✓ Light %s set to %s\n", args[0], describeLevel(bri, true))
				return nil
			})
		},
	}
}

func newLogsCmd() *cobra.Command {
	var lines int
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the tail of the lumen log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			tail, err := logtail.Read(cfg.LogFile, lines)
			if err != nil {
				return fmt.Errorf("read log %s: %w", cfg.LogFile, err)
			}
			if len(tail) == 0 {
				printHint("%s is empty", cfg.LogFile)
				return nil
			}
			for _, line := range logtail.ColorizeLines(tail) {
				fmt.Println(line)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "number of lines to show (0 for all)")
	return cmd
}

func printLights(w io.Writer, lights []hue.Light, all bool) {
	shown := 0
	for _, l := range lights {
		if !l.Reachable && !all {
			continue
		}
		shown++
		id := infoColor.Sprintf("%4s", l.ID)
		level := describeLevel(l.Brightness, l.On)
		if !l.Reachable {
			fmt.Fprintf(w, "%s  %s  %s\n", id, faintColor.Sprintf("%-24s", l.Name), faintColor.Sprint("unreachable"))
			continue
		}
		fmt.Fprintf(w, "%s  %-24s  %s\n", id, l.Name, level)
	}
	if shown == 0 {
		fmt.Fprintln(w, faintColor.Sprint("No lights found"))
	}
}

func describeLevel(bri int, on bool) string {
	bri = hue.ClampBrightness(bri)
	if !on || bri == 0 {
		return "off"
	}
	pct := (bri*100 + hue.MaxBrightness/2) / hue.MaxBrightness
	return fmt.Sprintf("%d%% (%d)", pct, bri)
}

func parseBrightness(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	bri, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("brightness %q: not a number", raw)
	}
	if bri < 0 || bri > hue.MaxBrightness {
		return 0, fmt.Errorf("brightness %d: must be between 0 and %d", bri, hue.MaxBrightness)
	}
	return bri, nil
}
