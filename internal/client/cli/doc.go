// Package cli provides the interactive sensorhub command-line client.
//
// It wires configuration, the HTTP API client, the auth and reading services,
// and an interactive REPL. Typical flow: restore a cached login if there is
// one, start a background connectivity watcher, and execute user commands.
//
// Commands:
//   - register / login / logout
//   - add <sensorId> <value> [timestamp]
//   - list [sensorId]
//   - help, exit
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
