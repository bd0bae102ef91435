// Package netutil provides network utilities shared by cmdqd and cmdqctl.
//
// This file implements type-based network error classification so that
// callers can tell port conflicts and unreachable daemons apart from other
// failures without matching error strings.
package netutil

import (
	"errors"
	"net"
	"syscall"
)

// IsAddressInUseError checks if an error indicates "address already in use"
// using proper error type checking rather than string matching.
//
// Used by the port binder to decide whether to try the next port.
func IsAddressInUseError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return errors.Is(opErr.Err, syscall.EADDRINUSE)
	}
	return false
}

// IsConnectionRefusedError checks if an error indicates "connection refused".
//
// cmdqctl uses it to print a hint when no daemon is listening on --api.
func IsConnectionRefusedError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return errors.Is(opErr.Err, syscall.ECONNREFUSED)
	}
	return false
}
