// Copyright (c) 2025 The Vigil Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pow

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind enumerates the error kinds a device context can surface (spec
// §7). Every kind except DatasetNotReady is fatal to the device context
// that raised it.
type ErrorKind int

const (
	// NoSuchDevice means the caller selected a device id the enumeration
	// layer doesn't know about.
	NoSuchDevice ErrorKind = iota

	// DeviceInitFailed means the backend could not be brought up at all.
	DeviceInitFailed

	// KernelBuildFailed means the backend's kernel program failed to
	// compile or link; Error.Log carries the backend's build log.
	KernelBuildFailed

	// OutOfMemory means cache or DAG allocation failed; Error.Bytes
	// carries the size that was requested.
	OutOfMemory

	// DatasetNotReady means a job was submitted to a device context whose
	// dataset isn't built for the current epoch yet. This is the only
	// recoverable kind: calling DAG generation clears it.
	DatasetNotReady

	// DispatchFailed means a kernel launch failed; Error.Stage names which
	// of the three kernel entry points failed.
	DispatchFailed

	// InvalidJob means a submitted MiningJob failed basic validation
	// (malformed job id, etc).
	InvalidJob
)

func (k ErrorKind) String() string {
	switch k {
	case NoSuchDevice:
		return "no such device"
	case DeviceInitFailed:
		return "device init failed"
	case KernelBuildFailed:
		return "kernel build failed"
	case OutOfMemory:
		return "out of memory"
	case DatasetNotReady:
		return "dataset not ready"
	case DispatchFailed:
		return "dispatch failed"
	case InvalidJob:
		return "invalid job"
	default:
		return "unknown error kind"
	}
}

// Error is the single typed error used across the kernel and device
// contract. It carries enough structured detail (Bytes, Log, Stage) for
// each of the seven kinds spec §7 names, rather than one error type per
// kind, since every kind shares the same "recoverable or tear down the
// context" handling.
type Error struct {
	Kind  ErrorKind
	Bytes uint64 // set for OutOfMemory
	Log   string // set for KernelBuildFailed
	Stage string // set for DispatchFailed

	cause error
}

func (e *Error) Error() string {
	switch e.Kind {
	case OutOfMemory:
		return fmt.Sprintf("%s: requested %d bytes", e.Kind, e.Bytes)
	case KernelBuildFailed:
		return fmt.Sprintf("%s: %s", e.Kind, e.Log)
	case DispatchFailed:
		return fmt.Sprintf("%s: stage %s", e.Kind, e.Stage)
	default:
		if e.cause != nil {
			return fmt.Sprintf("%s: %s", e.Kind, e.cause)
		}
		return e.Kind.String()
	}
}

// Unwrap exposes the wrapped cause, if any, so errors.Is/errors.As work
// against the underlying error from a backend.
func (e *Error) Unwrap() error {
	return e.cause
}

// Recoverable reports whether the device context that raised this error can
// continue after remediation, rather than tearing the context down (spec
// §7: only DatasetNotReady is recoverable).
func (e *Error) Recoverable() bool {
	return e.Kind == DatasetNotReady
}

// NewOutOfMemory builds an OutOfMemory error for a failed allocation of the
// given size.
func NewOutOfMemory(bytesRequested uint64) *Error {
	return &Error{Kind: OutOfMemory, Bytes: bytesRequested}
}

// NewKernelBuildFailed builds a KernelBuildFailed error carrying the
// backend's build log.
func NewKernelBuildFailed(log string) *Error {
	return &Error{Kind: KernelBuildFailed, Log: log}
}

// NewDispatchFailed builds a DispatchFailed error naming the kernel stage
// that failed to launch ("generate_cache", "generate_dag", or "search").
func NewDispatchFailed(stage string, cause error) *Error {
	return &Error{Kind: DispatchFailed, Stage: stage, cause: errors.Wrap(cause, "dispatch failed")}
}

// NewDeviceInitFailed wraps a backend initialization failure.
func NewDeviceInitFailed(cause error) *Error {
	return &Error{Kind: DeviceInitFailed, cause: errors.Wrap(cause, "device init failed")}
}

// NewDatasetNotReady builds the recoverable DatasetNotReady error.
func NewDatasetNotReady() *Error {
	return &Error{Kind: DatasetNotReady}
}

// NewNoSuchDevice builds a NoSuchDevice error for an unknown device id.
func NewNoSuchDevice(id int) *Error {
	return &Error{Kind: NoSuchDevice, cause: errors.Errorf("no device with id %d", id)}
}

// NewInvalidJob wraps a job validation failure.
func NewInvalidJob(cause error) *Error {
	return &Error{Kind: InvalidJob, cause: cause}
}
