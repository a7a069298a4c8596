package options

import "testing"

func TestMCPAddrAndPath(t *testing.T) {
	o := &MCPOptions{Host: " ", Port: 0, Path: "rpc"}
	addr, err := o.Addr()
	if err != nil || addr != "127.0.0.1:0" {
		t.Fatalf("addr %q err %v", addr, err)
	}
	if got := o.EndpointPath(); got != "/rpc" {
		t.Fatalf("path %q", got)
	}
	o = &MCPOptions{Host: "::1", Port: 9000}
	if addr, _ := o.Addr(); addr != "[::1]:9000" {
		t.Fatalf("addr %q", addr)
	}
	if got := o.EndpointPath(); got != "/mcp" {
		t.Fatalf("default path %q", got)
	}
	o.Port = 70000
	if _, err := o.Addr(); err == nil {
		t.Fatalf("expected an error for an out of range port")
	}
}
