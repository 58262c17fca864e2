package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"

	"github.com/gofrs/flock"

	"pitopd/internal/broadcast"
	"pitopd/internal/config"
	"pitopd/internal/logging"
	"pitopd/internal/protocol"
	"pitopd/internal/responder"
)

// Device is the hardware surface the daemon drives. The simulated backend in
// internal/device satisfies it; real hub drivers provide the same contract.
type Device interface {
	ID() string
	Brightness() (int, error)
	SetBrightness(brightness int) error
	IncrementBrightness() (newLevel int, err error)
	DecrementBrightness() (newLevel int, err error)
	BlankScreen() error
	UnblankScreen() error
	BatteryState() (protocol.BatteryState, error)
	PeripheralEnabled(peripheralID int) (bool, error)
	ScreenBlankingTimeout() (int, error)
	SetScreenBlankingTimeout(seconds int) error
}

// Daemon owns the IPC servers and enforces single-instance execution.
type Daemon struct {
	cfg    *config.Config
	logger *slog.Logger
	device Device

	publisher *broadcast.Publisher
	responder *responder.Responder

	lockPath string
	lock     *flock.Flock
	running  atomic.Bool
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, dev Device, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || dev == nil {
		return nil, errors.New("daemon requires config and device")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	lockPath := filepath.Join(cfg.Daemon.RuntimeDir, "pitopd.lock")
	return &Daemon{
		cfg:      cfg,
		logger:   logger,
		device:   dev,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// Start acquires the instance lock, brings up both IPC servers, then enables
// emitting and announces readiness. A broadcast bind failure is logged and
// tolerated; the daemon keeps serving requests.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	if err := d.cfg.EnsureDirectories(); err != nil {
		return err
	}
	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another pitopd instance is already running")
	}

	d.publisher = broadcast.New(ctx, d.cfg, d.logger)
	d.responder = responder.New(ctx, d.cfg, d, d.logger)

	if !d.publisher.StartListening() {
		d.logger.Warn("continuing without broadcast server",
			logging.String("bind", d.cfg.Server.BroadcastBind))
	}
	d.responder.StartListening()

	d.publisher.SetEmitting(true)
	d.publisher.PublishReady()

	d.running.Store(true)
	d.logger.Info("pitopd started",
		logging.String("device", d.device.ID()),
		logging.String("lock", d.lockPath))
	return nil
}

// Stop disables emitting, stops the responder, then the publisher, and
// releases the instance lock. Idempotent.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	d.publisher.SetEmitting(false)
	d.responder.StopListening()
	d.publisher.StopListening()

	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("releasing daemon lock failed", logging.Error(err))
	}
	d.running.Store(false)
	d.logger.Info("pitopd stopped")
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	return nil
}

// Running reports whether Start has completed and Stop has not.
func (d *Daemon) Running() bool {
	return d.running.Load()
}

// Publisher exposes the broadcast publisher so hardware monitors can emit
// events. Nil before Start.
func (d *Daemon) Publisher() *broadcast.Publisher {
	return d.publisher
}

// RequestAddr returns the bound request endpoint; empty before Start or
// after a bind failure.
func (d *Daemon) RequestAddr() string {
	if d.responder == nil {
		return ""
	}
	return d.responder.Addr()
}

// BroadcastAddr returns the bound broadcast endpoint; empty before Start or
// after a bind failure.
func (d *Daemon) BroadcastAddr() string {
	if d.publisher == nil {
		return ""
	}
	return d.publisher.Addr()
}
