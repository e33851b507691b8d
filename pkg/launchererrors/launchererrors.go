// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package launchererrors

import "errors"

const (
	ConfigurationError  = "CONFIGURATION_ERROR"
	NetworkError        = "NETWORK_ERROR"
	ChecksumMismatch    = "CHECKSUM_MISMATCH"
	ManifestCorrupt     = "MANIFEST_CORRUPT"
	RuntimeUnavailable  = "RUNTIME_UNAVAILABLE"
	PlatformUnsupported = "PLATFORM_UNSUPPORTED"
	UnknownError        = "UNKNOWN_ERROR"
)

// Process exit codes. The delegated JVM's own exit codes are passed
// through above ExitJvmPassthroughBase and never collide with these.
const (
	ExitSuccess            = 0
	ExitGeneralError       = 1
	ExitConfigError        = 2
	ExitNetworkError       = 3
	ExitRuntimeError       = 4
	ExitJvmPassthroughBase = 100
)

type LauncherError struct {
	Code  string
	Cause error
}

func (e *LauncherError) Error() string {
	if e.Cause != nil {
		return e.Code + ": " + e.Cause.Error()
	}
	return e.Code
}

func (e *LauncherError) Unwrap() error {
	return e.Cause
}

var _ error = (*LauncherError)(nil)

func NewConfigurationError(cause error) *LauncherError {
	return &LauncherError{Code: ConfigurationError, Cause: cause}
}

func NewNetworkError(cause error) *LauncherError {
	return &LauncherError{Code: NetworkError, Cause: cause}
}

func NewChecksumMismatchError(cause error) *LauncherError {
	return &LauncherError{Code: ChecksumMismatch, Cause: cause}
}

func NewManifestCorruptError(cause error) *LauncherError {
	return &LauncherError{Code: ManifestCorrupt, Cause: cause}
}

func NewRuntimeUnavailableError(cause error) *LauncherError {
	return &LauncherError{Code: RuntimeUnavailable, Cause: cause}
}

func NewPlatformUnsupportedError(cause error) *LauncherError {
	return &LauncherError{Code: PlatformUnsupported, Cause: cause}
}

func NewUnknownError(cause error) *LauncherError {
	return &LauncherError{Code: UnknownError, Cause: cause}
}

// Standardize wraps any error in a LauncherError, preserving one that
// already is.
func Standardize(err error) *LauncherError {
	if err == nil {
		return nil
	}

	var launcherErr *LauncherError
	if errors.As(err, &launcherErr) {
		return launcherErr
	}

	return NewUnknownError(err)
}

// ExitCode maps an error to the process exit code contract.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch Standardize(err).Code {
	case ConfigurationError:
		return ExitConfigError
	case NetworkError, ManifestCorrupt:
		return ExitNetworkError
	case RuntimeUnavailable:
		return ExitRuntimeError
	default:
		return ExitGeneralError
	}
}

// JvmPassthrough maps a delegated JVM exit code into the reserved
// pass-through band. Zero stays zero.
func JvmPassthrough(code int) int {
	if code == 0 {
		return 0
	}
	c := code
	if c < 0 {
		c = -c
	}
	if c > 155 {
		c = 155
	}
	return ExitJvmPassthroughBase + c
}
