package netutil

import (
	"errors"
	"net"
	"testing"
	"time"
)

// TestBindTCPAndPort binds an OS-assigned port and reads it back
func TestBindTCPAndPort(t *testing.T) {
	pb := NewPortBinder()

	listener, err := pb.BindTCP("127.0.0.1", 0)
	if err != nil {
		t.Fatalf("BindTCP() error = %v", err)
	}
	defer listener.Close()

	port, err := pb.GetListenerPort(listener)
	if err != nil {
		t.Fatalf("GetListenerPort() error = %v", err)
	}
	if port <= 0 {
		t.Errorf("GetListenerPort() = %d, want positive", port)
	}
}

// TestBindTCPAddressInUse checks the typed error for a taken port
func TestBindTCPAddressInUse(t *testing.T) {
	pb := NewPortBinder()

	held, err := pb.BindTCP("127.0.0.1", 0)
	if err != nil {
		t.Fatalf("BindTCP() error = %v", err)
	}
	defer held.Close()
	port, _ := pb.GetListenerPort(held)

	_, err = pb.BindTCP("127.0.0.1", port)
	var inUse *AddressInUseError
	if !errors.As(err, &inUse) {
		t.Fatalf("BindTCP() on a taken port error = %v, want AddressInUseError", err)
	}
	if inUse.Port != port {
		t.Errorf("AddressInUseError.Port = %d, want %d", inUse.Port, port)
	}
	if !IsAddressInUseError(err) {
		t.Error("IsAddressInUseError() = false for a wrapped EADDRINUSE")
	}
}

// TestBindTCPWithFallback checks the next free port is used when the
// preferred one is taken
func TestBindTCPWithFallback(t *testing.T) {
	pb := NewPortBinder()

	held, err := pb.BindTCP("127.0.0.1", 0)
	if err != nil {
		t.Fatalf("BindTCP() error = %v", err)
	}
	defer held.Close()
	port, _ := pb.GetListenerPort(held)

	listener, actual, err := pb.BindTCPWithFallbackAndLimit("127.0.0.1", port, 20)
	if err != nil {
		t.Skipf("no free port near %d: %v", port, err)
	}
	defer listener.Close()

	if actual == port {
		t.Errorf("fallback bound the taken port %d", port)
	}
	if actual < port || actual >= port+20 {
		t.Errorf("fallback port %d outside range %d-%d", actual, port, port+19)
	}
}

// TestBindTCPWithFallbackExhausted checks a limit of one fails on a taken port
func TestBindTCPWithFallbackExhausted(t *testing.T) {
	pb := NewPortBinder()

	held, err := pb.BindTCP("127.0.0.1", 0)
	if err != nil {
		t.Fatalf("BindTCP() error = %v", err)
	}
	defer held.Close()
	port, _ := pb.GetListenerPort(held)

	if _, _, err := pb.BindTCPWithFallbackAndLimit("127.0.0.1", port, 1); err == nil {
		t.Error("BindTCPWithFallbackAndLimit() with limit 1 on a taken port should fail")
	}
}

// TestIsConnectionRefusedError dials a closed port
func TestIsConnectionRefusedError(t *testing.T) {
	l, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("net.Listen() error = %v", err)
	}
	addr := l.Addr().String()
	l.Close()

	_, err = net.DialTimeout("tcp4", addr, time.Second)
	if err == nil {
		t.Skip("port was reused before dial")
	}
	if !IsConnectionRefusedError(err) {
		t.Errorf("IsConnectionRefusedError(%v) = false", err)
	}
	if IsConnectionRefusedError(errors.New("plain")) {
		t.Error("IsConnectionRefusedError() = true for a plain error")
	}
}
