// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package launchererrors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, ExitCode(nil))
	assert.Equal(t, ExitGeneralError, ExitCode(fmt.Errorf("plain")))
	assert.Equal(t, ExitConfigError, ExitCode(NewConfigurationError(fmt.Errorf("bad field"))))
	assert.Equal(t, ExitGeneralError, ExitCode(NewPlatformUnsupportedError(fmt.Errorf("plan9"))))
	assert.Equal(t, ExitNetworkError, ExitCode(NewNetworkError(fmt.Errorf("timeout"))))
	assert.Equal(t, ExitNetworkError, ExitCode(NewManifestCorruptError(fmt.Errorf("bad json"))))
	assert.Equal(t, ExitRuntimeError, ExitCode(NewRuntimeUnavailableError(fmt.Errorf("no java"))))
	assert.Equal(t, ExitGeneralError, ExitCode(NewChecksumMismatchError(fmt.Errorf("digest"))))
}

func TestExitCodeWrapped(t *testing.T) {
	err := fmt.Errorf("context: %w", NewNetworkError(fmt.Errorf("dns")))
	assert.Equal(t, ExitNetworkError, ExitCode(err))
}

func TestStandardize(t *testing.T) {
	coded := NewChecksumMismatchError(fmt.Errorf("digest"))
	assert.Equal(t, ChecksumMismatch, Standardize(coded).Code)
	assert.Equal(t, ChecksumMismatch, Standardize(fmt.Errorf("wrap: %w", coded)).Code)
	assert.Equal(t, UnknownError, Standardize(fmt.Errorf("plain")).Code)
}

func TestJvmPassthrough(t *testing.T) {
	assert.Equal(t, 0, JvmPassthrough(0))
	assert.Equal(t, 101, JvmPassthrough(1))
	assert.Equal(t, 142, JvmPassthrough(42))
	assert.Equal(t, 142, JvmPassthrough(-42))
	assert.Equal(t, 255, JvmPassthrough(155))
	assert.Equal(t, 255, JvmPassthrough(100000))
}
