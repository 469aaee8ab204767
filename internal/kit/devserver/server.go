// Package devserver implements the dev and preview server collaborators.
//
// Request serving is out of scope for the toolchain core: the framework's
// transform pipeline plugs in elsewhere. What this package owns is the part
// the CLI contract needs — binding the listener, reporting the effective
// binding (address, port, filesystem posture), and tying the listener's
// lifetime to the command's context.
package devserver

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"

	"github.com/fathomweb/fathom/internal/config"
	"github.com/fathomweb/fathom/internal/kit"
	"github.com/fathomweb/fathom/internal/model"
)

// Server binds and holds the listener for a dev or preview run.
// The two modes differ only in filesystem posture and pre-conditions,
// so one implementation backs both kit interfaces.
type Server struct {
	// preview marks the server as serving built artifacts: it requires a
	// prior build and never relaxes filesystem access.
	preview bool
}

// NewDev creates the development-server collaborator.
func NewDev() *Server {
	return &Server{}
}

// NewPreview creates the preview-server collaborator.
func NewPreview() *Server {
	return &Server{preview: true}
}

// Start binds the server's listener and returns the effective binding.
//
// The requested host and port come from flags; a zero port falls back to the
// configured dev-server port. The listener stays open until ctx is
// cancelled; Start itself returns as soon as the bind succeeds.
//
// The returned binding's Host field carries the requested host verbatim
// (empty when --host was not given) because the exposure report classifies
// the operator's intent, not the socket's resolved address.
func (s *Server) Start(ctx context.Context, cfg *config.Config, opts kit.StartOptions) (*model.ServerBinding, error) {
	if s.preview {
		if err := s.requireBuild(cfg); err != nil {
			return nil, err
		}
	}

	port := opts.Port
	if port == 0 {
		port = cfg.Kit.Serve.Port
	}

	bindHost := opts.Host
	if bindHost == "" {
		bindHost = "localhost"
	}

	listener, err := net.Listen("tcp", net.JoinHostPort(bindHost, strconv.Itoa(port)))
	if err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to bind %s:%d", bindHost, port), err)
	}

	// The accept loop keeps the port observably live. Connections are
	// closed immediately: the request pipeline is not this package's
	// concern.
	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			_ = conn.Close()
		}
	}()

	// Tie the listener's lifetime to the command context.
	go func() {
		<-ctx.Done()
		_ = listener.Close()
	}()

	effectivePort := port
	if tcpAddr, ok := listener.Addr().(*net.TCPAddr); ok {
		effectivePort = tcpAddr.Port
	}

	binding := &model.ServerBinding{
		Addr:  listener.Addr(),
		Port:  effectivePort,
		HTTPS: opts.HTTPS,
		Host:  opts.Host,
	}

	if !s.preview {
		fs := cfg.Kit.Serve.FS
		binding.LooseFS = fs.Strict != nil && !*fs.Strict
		binding.AllowList = fs.Allow
	}

	return binding, nil
}

// requireBuild verifies that build artifacts exist before previewing.
// Previewing an empty output directory would bind a port and serve nothing,
// which reads as a framework bug; failing up front with the fix is kinder.
func (s *Server) requireBuild(cfg *config.Config) error {
	manifest := filepath.Join(cfg.Kit.Outdir, "output", "build-manifest.yaml")
	if _, err := os.Stat(manifest); err != nil {
		return model.NewCLIError(model.ExitGeneralError,
			fmt.Sprintf("no build found in %s. Run fathom build first", cfg.Kit.Outdir))
	}
	return nil
}
