// Package program wires the pure store reducer to the outside world: a
// single-goroutine message loop, command execution against the API gateway,
// and event fan-out to the toast tray, logs, and metrics.
package program
