// Package app is the composition root for lumen.
//
// # Overview
//
// Setup wires configuration, logging, bridge discovery and the hue session
// into an Env that every command shares. Run builds on Setup to start the
// TUI, and PairUntilReady backs the `lumen pair --wait` command.
//
// # Startup
//
//	┌──────────────┐
//	│   Setup()    │
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()        File, HOST and USERNAME_KEY
//	       ├─────> logging.New()        Log file (the TUI owns stderr)
//	       ├─────> resolveHost()        --host, config, then mDNS discovery
//	       └─────> hue.NewSession()     Username and device type from config
//
//	Run():
//	       ├─────> prefs.Load()         Theme, step, offline filter
//	       └─────> ui.Run()             Blocks until quit
//
// # Host Resolution
//
// The --host flag wins, then the configured or HOST value. Discovery runs
// only when neither is set and discover is enabled. A bridge that does not
// answer mDNS is not an error at this point: the session refuses to start
// with hue.ErrNoHost and Setup reports how to configure the host.
//
// # Pairing
//
// The TUI pairs at start-up when no username is configured. PairUntilReady
// polls Pair with exponential backoff (2s doubling, capped at 30s) while the
// bridge reports that the link button has not been pressed.
//
// # Shutdown
//
// Env.Close shuts the session down, which cancels in-flight requests, and
// closes the log file.
package app
