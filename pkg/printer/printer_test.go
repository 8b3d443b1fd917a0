package printer

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"os"
	"path/filepath"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		typ      string
		usbPath  string
		address  string
		wantType string
		wantErr  bool
	}{
		{"usb", TypeUSB, "/dev/usb/lp0", "", TypeUSB, false},
		{"usb without path", TypeUSB, "", "", "", true},
		{"network", TypeNetwork, "", "10.0.0.5:9100", TypeNetwork, false},
		{"network without address", TypeNetwork, "", "", "", true},
		{"none", TypeNone, "", "", TypeNone, false},
		{"empty", "", "", "", TypeNone, false},
		{"unknown", "bluetooth", "", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.typ, tt.usbPath, tt.address)
			if tt.wantErr {
				if err == nil {
					t.Fatal("New() error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if p.Type() != tt.wantType {
				t.Errorf("Type() = %q, want %q", p.Type(), tt.wantType)
			}
		})
	}
}

func TestNullPrinter(t *testing.T) {
	p := NewNullPrinter()
	if err := p.Print(context.Background(), []byte("x")); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Print() error = %v, want ErrNotConfigured", err)
	}
	if p.IsConnected(context.Background()) {
		t.Error("IsConnected() = true, want false")
	}
}

func TestUSBPrinter_WritesToDevice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lp0")
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	p := NewUSBPrinter(path)
	if !p.IsConnected(context.Background()) {
		t.Fatal("IsConnected() = false for existing device")
	}
	if err := p.Print(context.Background(), []byte{ESC, '@', 'h', 'i'}); err != nil {
		t.Fatalf("Print() error = %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, []byte{ESC, '@', 'h', 'i'}) {
		t.Errorf("device content = %v", got)
	}
}

func TestUSBPrinter_MissingDevice(t *testing.T) {
	p := NewUSBPrinter(filepath.Join(t.TempDir(), "missing"))
	if p.IsConnected(context.Background()) {
		t.Error("IsConnected() = true for missing device")
	}
	if err := p.Print(context.Background(), []byte("x")); err == nil {
		t.Error("Print() error = nil, want error")
	}
}

func TestNetworkPrinter_SendsBytes(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()

	received := make(chan []byte, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		data, _ := io.ReadAll(conn)
		received <- data
	}()

	p := NewNetworkPrinter(ln.Addr().String())
	payload := []byte{ESC, '@', 'o', 'k', LF}
	if err := p.Print(context.Background(), payload); err != nil {
		t.Fatalf("Print() error = %v", err)
	}
	if got := <-received; !bytes.Equal(got, payload) {
		t.Errorf("received %v, want %v", got, payload)
	}
}

func TestNetworkPrinter_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewNetworkPrinter("127.0.0.1:9")
	if err := p.Print(ctx, []byte("x")); err == nil {
		t.Error("Print() error = nil, want error")
	}
}
