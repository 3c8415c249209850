// Package cli provides the interactive SGR Sensor command-line client.
//
// It wires configuration, the session store, the API client and services,
// and an interactive REPL. Typical flow: log in, pick a sensor, start or
// stop it, inspect its signals and adjust setpoints.
//
// Key features:
//   - Login / Logout / Register / password restore
//   - Sensor run control and mode selection
//   - Signal listing and setpoint changes
//   - A notice whenever the backend closes the session
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
