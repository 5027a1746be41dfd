// Package logutils manages log files and log formatting: timestamped
// file names, pruning of old logs, wrapping of long lines, and an
// apex/log handler that keeps multi-line messages aligned.
package logutils
