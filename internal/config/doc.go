// Package config loads lumen's configuration.
//
// # Overview
//
// lumen needs to know where the bridge is and, optionally, a username from an
// earlier pairing. Everything else has a default, so the program runs without
// any configuration file at all.
//
// # Sources
//
// Values are resolved by viper in this order (later wins):
//
//  1. Built-in defaults
//  2. The TOML file (~/.config/lumen/config.toml unless a path is given)
//  3. LUMEN_* environment variables (LUMEN_DEVICE_TYPE, LUMEN_LOG_FILE, ...)
//  4. HOST and USERNAME_KEY for the bridge host and username
//
// # TOML Format
//
//	host = "192.168.1.20"
//	username = "..."
//	device_type = "lumen#laptop"
//	log_file = "~/.local/state/lumen/lumen.log"
//	discover = true
//	discovery_timeout = "3s"
//
// All fields are optional. Tilde expansion is applied to the config path and
// log_file. When host is empty and discover is true the caller looks for the
// bridge with mDNS.
//
// # Error Handling
//
// Load returns errors for path expansion failures and unparsable files. A
// missing file is not an error.
//
// The username is only read here. lumen never writes it back to disk.
package config
