// Package netutil provides network utilities shared by cmdqd and cmdqctl.
//
// The port binder pre-binds the daemon's API listener and hands the open
// listener to the HTTP server, so the port cannot be taken between discovery
// and serving. When the user did not pick a port explicitly, binding falls
// back to the next free port within a bounded range.
package netutil

import (
	"errors"
	"fmt"
	"net"
	"strconv"
)

// DefaultMaxPorts bounds the fallback search when no limit is configured.
const DefaultMaxPorts = 100

// AddressInUseError represents a "port already in use" error that preserves
// the original error for proper type checking while providing user-friendly messages.
type AddressInUseError struct {
	Port    int
	Address string
	Err     error
}

func (e *AddressInUseError) Error() string {
	return fmt.Sprintf("port %d is already in use on %s", e.Port, e.Address)
}

func (e *AddressInUseError) Unwrap() error {
	return e.Err
}

// PortBinder binds TCP listeners and keeps them open until a service takes
// them over.
type PortBinder struct{}

// NewPortBinder creates a new PortBinder instance for managing port reservations.
func NewPortBinder() *PortBinder {
	return &PortBinder{}
}

// BindTCP binds a TCP listener to address:port. Once it returns successfully
// the port is reserved until the listener is closed.
//
// Forces IPv4 binding for consistent behavior across platforms.
func (pb *PortBinder) BindTCP(address string, port int) (net.Listener, error) {
	addr := net.JoinHostPort(address, strconv.Itoa(port))

	listener, err := net.Listen("tcp4", addr)
	if err != nil {
		if IsAddressInUseError(err) {
			return nil, &AddressInUseError{
				Port:    port,
				Address: address,
				Err:     err,
			}
		}
		return nil, fmt.Errorf("failed to bind TCP to %s: %w", addr, err)
	}

	return listener, nil
}

// BindTCPWithFallbackAndLimit tries preferredPort first and then each
// following port, up to maxAttempts ports in total, while the ports are in
// use. Returns the listener and the port actually bound.
func (pb *PortBinder) BindTCPWithFallbackAndLimit(address string, preferredPort, maxAttempts int) (net.Listener, int, error) {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxPorts
	}

	for port := preferredPort; port < preferredPort+maxAttempts && port <= 65535; port++ {
		listener, err := pb.BindTCP(address, port)
		if err != nil {
			var addrInUseErr *AddressInUseError
			if errors.As(err, &addrInUseErr) {
				// Port is busy, try next port
				continue
			}
			// Some other error (permission, invalid address, etc.)
			return nil, 0, fmt.Errorf("failed to bind TCP starting from port %d: %w", preferredPort, err)
		}

		return listener, port, nil
	}

	return nil, 0, fmt.Errorf("no available TCP port found in range %d-%d on %s",
		preferredPort, preferredPort+maxAttempts-1, address)
}

// GetListenerPort extracts the port number from a bound net.Listener.
func (pb *PortBinder) GetListenerPort(listener net.Listener) (int, error) {
	tcpAddr, ok := listener.Addr().(*net.TCPAddr)
	if !ok {
		return 0, fmt.Errorf("listener is not a TCP listener: %T", listener.Addr())
	}

	return tcpAddr.Port, nil
}
