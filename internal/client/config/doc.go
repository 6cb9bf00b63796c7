// Package config loads runtime configuration for the sensorhub CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the sensorhub API
//	-i int      online status check interval (seconds)
//	-t int      request timeout (seconds)
//	-f string   token cache file
//	-l string   log level (debug, info, warn, error)
//
// # JSON schema
//
// Durations use timex.Duration, so values can be either strings like "3s" or
// integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "http://127.0.0.1:8080",
//	  "online_check_interval": "3s",
//	  "request_timeout": "10s",
//	  "token_file": "/home/me/.config/sensorhub/token",
//	  "log_level": "info"
//	}
package config
