package mcp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"tableflip.dev/herbview/pkg/catalog"
)

// Transport selects how the MCP server is exposed.
type Transport string

const (
	// TransportHTTP serves MCP via the streamable HTTP transport.
	TransportHTTP Transport = "http"
	// TransportStdio serves MCP over stdio.
	TransportStdio Transport = "stdio"
)

const (
	defaultListenAddr = "127.0.0.1:8080"
	defaultPath       = "/mcp"
)

// Runner starts a read-only MCP server over one catalog.
type Runner struct {
	Source    catalog.Source
	Loader    *catalog.Loader
	AssetRoot string
	Version   string
	Log       *zap.Logger

	Transport        Transport
	HTTPListenAddr   string
	HTTPEndpointPath string
	OnHTTPListening  func(net.Addr)
}

// NewServer builds the MCP server with every catalog resource and tool.
func (r *Runner) NewServer() *server.MCPServer {
	version := r.Version
	if version == "" {
		version = "dev"
	}
	srv := server.NewMCPServer(
		"herbview MCP",
		version,
		server.WithResourceCapabilities(false, false),
		server.WithToolCapabilities(false),
		server.WithInstructions("Browse herb catalog items, their tags and quizzes. The catalog is read-only."),
		server.WithResourceRecovery(),
		server.WithRecovery(),
	)
	svc := NewService(r.Source, r.Loader, r.AssetRoot)
	registerResources(srv, svc)
	registerTools(srv, svc)
	return srv
}

// Do serves until ctx is done or the transport fails.
func (r *Runner) Do(ctx context.Context) error {
	if r.Loader == nil {
		return errors.New("mcp runner requires a catalog loader")
	}
	if r.Log == nil {
		r.Log = zap.NewNop()
	}
	srv := r.NewServer()

	switch t := r.Transport; t {
	case "", TransportHTTP:
		return r.serveHTTP(ctx, srv)
	case TransportStdio:
		r.Log.Info("serving mcp", zap.String("transport", string(t)), zap.Stringer("catalog", r.Source))
		return server.ServeStdio(srv)
	default:
		return fmt.Errorf("unknown MCP transport %q", t)
	}
}

func (r *Runner) serveHTTP(ctx context.Context, srv *server.MCPServer) error {
	path := r.HTTPEndpointPath
	if path == "" {
		path = defaultPath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	addr := r.HTTPListenAddr
	if addr == "" {
		addr = defaultListenAddr
	}

	mux := http.NewServeMux()
	mux.Handle(path, server.NewStreamableHTTPServer(srv))
	httpSrv := &http.Server{Handler: mux}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	r.Log.Info("serving mcp",
		zap.String("transport", string(TransportHTTP)),
		zap.Stringer("addr", ln.Addr()),
		zap.String("path", path),
		zap.Stringer("catalog", r.Source))
	if r.OnHTTPListening != nil {
		r.OnHTTPListening(ln.Addr())
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	err = httpSrv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
