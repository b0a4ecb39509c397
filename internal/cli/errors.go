// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the entry points of termfolio.
//
// Handlers always return errors and let Execute decide how to display them.
package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/jeranaias/termfolio/internal/config"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError indicates a general/unknown error
	ExitGeneralError = 1
	// ExitUsageError indicates invalid command usage or arguments
	ExitUsageError = 2
	// ExitConfigError indicates configuration file or settings error
	ExitConfigError = 3
	// ExitCommandNotFound matches the shell convention for unknown commands
	ExitCommandNotFound = 127
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// CommandError represents a CLI command error with context.
type CommandError struct {
	Command string // Command that failed (e.g., "config")
	Action  string // Action being performed (e.g., "set")
	Reason  string // Human-readable reason
	Err     error  // Underlying error (if any)
}

func (e *CommandError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s failed: %s: %v", e.Command, e.Action, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s %s failed: %s", e.Command, e.Action, e.Reason)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// UsageError reports invalid arguments.
type UsageError struct {
	Reason string
	Usage  string
}

func (e *UsageError) Error() string {
	if e.Usage != "" {
		return fmt.Sprintf("%s\nUsage: %s", e.Reason, e.Usage)
	}
	return e.Reason
}

// ConfigError reports a configuration file that could not be used.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("config %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("config: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewCommandError creates a new command error.
func NewCommandError(command, action, reason string, err error) error {
	return &CommandError{
		Command: command,
		Action:  action,
		Reason:  reason,
		Err:     err,
	}
}

// ErrMissingArgument creates an error for a missing required argument.
func ErrMissingArgument(argName, usage string) error {
	return &UsageError{
		Reason: fmt.Sprintf("missing required argument: %s", argName),
		Usage:  usage,
	}
}

// =============================================================================
// DISPLAY
// =============================================================================

// DisplayError writes err in a consistent format.
func DisplayError(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("[ERROR]"), err.Error())
}

// GetExitCode determines the appropriate exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		return ExitUsageError
	}

	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return ExitConfigError
	}

	var validateErrs config.ValidateErrors
	if errors.As(err, &validateErrs) {
		return ExitConfigError
	}

	return ExitGeneralError
}
