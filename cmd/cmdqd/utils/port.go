// Package utils contains utility functions for the cmdq daemon.
// This includes the API listener pre-binding used during daemon startup.
package utils

import (
	"fmt"
	"net"

	"github.com/angrypants/cmdq/cmd/cmdqd/config"
	"github.com/angrypants/cmdq/internal/logging"
	"github.com/angrypants/cmdq/internal/netutil"
)

// PreBindServiceListener reserves a TCP listener for a service before it
// starts, so the port cannot be taken between discovery and serving.
//
// Parameters:
//   - serviceName: human-readable name for logging (e.g., "API")
//   - portBinder: the PortBinder instance to use for binding
//   - explicitlySet: whether the user explicitly set the address/port
//   - addr: the address to bind to
//   - port: the port to bind to (or starting port for fallback)
//
// Explicit ports are bound exactly. Default ports fall back to the next free
// port within GetMaxPorts attempts. Returns the bound listener and actual port.
func PreBindServiceListener(serviceName string, portBinder *netutil.PortBinder, explicitlySet bool, addr string, port int) (net.Listener, int, error) {
	if explicitlySet {
		logging.Info("Pre-binding %s listener to explicit port %d", serviceName, port)

		listener, err := portBinder.BindTCP(addr, port)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to pre-bind %s listener to %s:%d: %w", serviceName, addr, port, err)
		}

		// Port 0 lets the OS choose; report what was actually bound
		actualPort, err := portBinder.GetListenerPort(listener)
		if err != nil {
			listener.Close()
			return nil, 0, fmt.Errorf("failed to read %s listener port: %w", serviceName, err)
		}
		return listener, actualPort, nil
	}

	logging.Info("Pre-binding %s listener starting from port %d", serviceName, port)

	listener, actualPort, err := portBinder.BindTCPWithFallbackAndLimit(addr, port, GetMaxPorts())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to pre-bind %s listener: %w", serviceName, err)
	}

	if actualPort != port {
		logging.Warn("Default %s port %d was busy, pre-bound to port %d", serviceName, port, actualPort)
	} else {
		logging.Info("Pre-bound %s listener to port %d", serviceName, actualPort)
	}

	return listener, actualPort, nil
}

// GetMaxPorts returns the configured maximum number of ports to try during
// port fallback.
func GetMaxPorts() int {
	if config.Global.MaxPorts <= 0 {
		return config.DefaultMaxPorts
	}
	return config.Global.MaxPorts
}
