// Package command defines the CLI command set for utilkit. It wires global
// flags, telemetry setup and the actions of each subcommand.
package command
