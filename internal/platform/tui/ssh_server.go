package tui

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/vovakirdan/rockfall/internal/config"
	"github.com/vovakirdan/rockfall/internal/metrics"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":2222").
	Address string

	// HostKeyPath is the path to the host key file. It is generated on
	// first start. A leading ~ is expanded.
	HostKeyPath string

	// MetricsAddress serves /metrics when set.
	MetricsAddress string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// MaxSessions caps concurrent connections; 0 means no limit.
	MaxSessions int
}

// SSHServerConfigFrom maps the server section of the configuration.
func SSHServerConfigFrom(c config.ServerConfig) SSHServerConfig {
	return SSHServerConfig{
		Address:        c.SSHAddr,
		HostKeyPath:    c.HostKeyPath,
		MetricsAddress: c.MetricsAddr,
		IdleTimeout:    c.IdleTimeout,
		MaxSessions:    c.MaxSessions,
	}
}

// SSHServer wraps a Wish SSH server that gives every connection its own
// rockfall session.
type SSHServer struct {
	config  SSHServerConfig
	opts    Options
	server  *ssh.Server
	metrics *http.Server
	logger  *log.Logger
	active  atomic.Int64
}

// NewSSHServer creates a new SSH server. opts is copied into every
// session with Player set to the SSH user name. When cfg.MetricsAddress is
// set and opts.Metrics is nil, metrics are created on a fresh registry.
func NewSSHServer(cfg SSHServerConfig, opts Options) (*SSHServer, error) {
	if opts.Levels == nil {
		return nil, errors.New("tui: no levels loaded")
	}

	logger := opts.logger().WithPrefix("ssh")
	srv := &SSHServer{
		config: cfg,
		logger: logger,
	}

	if cfg.MetricsAddress != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector())
		if opts.Metrics == nil {
			opts.Metrics = metrics.New(reg)
		}
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler(reg))
		srv.metrics = &http.Server{
			Addr:              cfg.MetricsAddress,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
	}
	srv.opts = opts

	hostKeyPath := config.ExpandHome(cfg.HostKeyPath)
	if hostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".rockfall", "ssh_host_ed25519")
	}

	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", err)
	}

	// Middleware runs last-to-first: logging wraps the limit check,
	// which wraps the PTY check and the game.
	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			activeterm.Middleware(),
			srv.limitMiddleware,
			logging.MiddlewareWithLogger(logger),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()

	opts := s.opts
	opts.Player = sess.User()
	opts.Logger = s.logger.With("user", sess.User(), "remote", splitHostPort(sess.RemoteAddr()))

	model := NewSessionModel(opts, pty.Window.Width, pty.Window.Height)
	go func() {
		<-sess.Context().Done()
		model.Close()
	}()

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// limitMiddleware turns away connections beyond MaxSessions.
func (s *SSHServer) limitMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		n := s.active.Add(1)
		defer s.active.Add(-1)

		if s.config.MaxSessions > 0 && n > int64(s.config.MaxSessions) {
			s.logger.Warn("session limit reached", "user", sess.User(), "limit", s.config.MaxSessions)
			wish.Fatalln(sess, "rockfall: server is full, try again later")
			return
		}
		next(sess)
	}
}

// ListenAndServe starts the servers and blocks until ctx is done, then
// shuts them down.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 2)

	s.logger.Info("starting SSH server", "address", s.config.Address)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- fmt.Errorf("ssh server: %w", err)
		}
	}()

	if s.metrics != nil {
		s.logger.Info("serving metrics", "address", s.metrics.Addr, "path", "/metrics")
		go func() {
			if err := s.metrics.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("metrics server: %w", err)
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
		s.logger.Error("server error", "error", runErr)
	}

	s.logger.Info("shutting down...")
	if err := s.Shutdown(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

// Shutdown gracefully stops the servers.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var errs []error
	if s.metrics != nil {
		errs = append(errs, s.metrics.Shutdown(ctx))
	}
	if err := s.server.Shutdown(ctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// ActiveSessions returns the number of open connections.
func (s *SSHServer) ActiveSessions() int {
	return int(s.active.Load())
}

// splitHostPort is used to label log lines with a short remote address.
func splitHostPort(addr net.Addr) string {
	host, _, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String()
	}
	return host
}
