package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"sceneforge/internal/config"
	"sceneforge/internal/logging"
	"sceneforge/internal/orchestrator"
	"sceneforge/internal/store"
)

const shutdownGrace = 10 * time.Second

// Daemon owns the HTTP server and the background orchestrator, and
// enforces single-instance execution through a lock file.
type Daemon struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   *store.Store
	orch    *orchestrator.Orchestrator
	handler http.Handler
	logPath string

	lockPath string
	lock     *flock.Flock

	running  atomic.Bool
	listener net.Listener
	server   *http.Server
}

// Status represents daemon runtime information.
type Status struct {
	Running      bool
	BindAddress  string
	StoreDBPath  string
	LockFilePath string
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, st *store.Store, orch *orchestrator.Orchestrator, handler http.Handler, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || st == nil || orch == nil || handler == nil {
		return nil, errors.New("daemon requires config, store, orchestrator, and handler")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	lockPath := filepath.Join(cfg.Paths.LogDir, "sceneforge.lock")
	return &Daemon{
		cfg:      cfg,
		logger:   logging.WithComponent(logger, "daemon"),
		store:    st,
		orch:     orch,
		handler:  handler,
		logPath:  filepath.Join(cfg.Paths.LogDir, "sceneforge.log"),
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// Start acquires the instance lock and begins serving HTTP requests.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another sceneforge daemon instance is already running")
	}

	listener, err := net.Listen("tcp", d.cfg.Paths.APIBind)
	if err != nil {
		_ = d.lock.Unlock()
		return fmt.Errorf("listen on %s: %w", d.cfg.Paths.APIBind, err)
	}
	d.listener = listener
	d.server = &http.Server{
		Handler:           d.handler,
		ReadHeaderTimeout: 15 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	srv := d.server
	go func() {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			d.logger.Error("http server stopped", logging.Error(err))
		}
	}()

	d.running.Store(true)
	d.logger.Info("sceneforge daemon started",
		logging.String("bind", listener.Addr().String()),
		logging.String("lock", d.lockPath))
	return nil
}

// Stop shuts down the HTTP server, drains in-flight jobs, and releases
// the instance lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if d.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		if err := d.server.Shutdown(ctx); err != nil {
			d.logger.Warn("http shutdown incomplete", logging.Error(err))
		}
		cancel()
		d.server = nil
		d.listener = nil
	}

	d.orch.Close()

	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.running.Store(false)
	d.logger.Info("sceneforge daemon stopped")
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	if d.store != nil {
		return d.store.Close()
	}
	return nil
}

// Addr returns the bound listener address, empty when not running.
func (d *Daemon) Addr() string {
	if d.listener == nil {
		return ""
	}
	return d.listener.Addr().String()
}

// LogPath returns the path to the daemon log file.
func (d *Daemon) LogPath() string {
	return d.logPath
}

// Status returns the current daemon status.
func (d *Daemon) Status() Status {
	return Status{
		Running:      d.running.Load(),
		BindAddress:  d.Addr(),
		StoreDBPath:  d.store.Path(),
		LockFilePath: d.lockPath,
	}
}
