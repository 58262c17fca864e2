package broadcast

import (
	"context"
	"log/slog"
	"sync"

	"github.com/go-zeromq/zmq4"

	"pitopd/internal/config"
	"pitopd/internal/logging"
	"pitopd/internal/protocol"
)

// Publisher owns the broadcast socket and exposes one method per event kind.
// Zero or more goroutines may publish concurrently.
type Publisher struct {
	bind       string
	logger     *slog.Logger
	logBattery bool

	ctx    context.Context
	cancel context.CancelFunc

	mu           sync.Mutex
	sock         zmq4.Socket
	emitting     bool
	shuttingDown bool
}

// New configures a publisher bound to the broadcast endpoint from cfg. The
// publisher does not touch the network until StartListening.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = logging.NewNop()
	}
	bind := "tcp://*:3781"
	logBattery := false
	if cfg != nil {
		bind = cfg.Server.BroadcastBind
		logBattery = cfg.Logging.LogBatteryBroadcasts
	}
	pctx, cancel := context.WithCancel(ctx)
	return &Publisher{
		bind:       bind,
		logger:     logger.With(logging.String("component", "broadcast")),
		logBattery: logBattery,
		ctx:        pctx,
		cancel:     cancel,
	}
}

// StartListening binds the broadcast socket. On failure it logs and returns
// false; the publisher then drops every publish but the process keeps
// running.
func (p *Publisher) StartListening() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.logger.Debug("opening publisher socket", logging.String("bind", p.bind))

	sock := zmq4.NewPub(p.ctx)
	if err := sock.Listen(p.bind); err != nil {
		p.logger.Error("starting the publish server failed", logging.Error(err), logging.String("bind", p.bind))
		return false
	}
	p.sock = sock
	p.logger.Debug("publish server ready")
	return true
}

// StopListening closes the broadcast socket. Safe to call before
// StartListening and safe to call twice; the shutting-down flag and the close
// happen under the same lock as in-flight sends.
func (p *Publisher) StopListening() {
	p.mu.Lock()
	if p.shuttingDown {
		// Second stop finds the socket already released.
		p.mu.Unlock()
		return
	}
	p.logger.Debug("closing publisher socket")
	p.shuttingDown = true
	if p.sock != nil {
		if err := p.sock.Close(); err != nil {
			p.logger.Error("closing the publish socket failed", logging.Error(err))
		}
	}
	p.mu.Unlock()
	p.cancel()
	p.logger.Debug("closed publisher socket")
}

// SetEmitting toggles whether publishes actually send. The daemon keeps
// emitting off until its own initialization completes.
func (p *Publisher) SetEmitting(emit bool) {
	p.mu.Lock()
	p.emitting = emit
	p.mu.Unlock()
}

// Addr returns the bound endpoint, usable as a dial address. Empty until
// StartListening succeeds.
func (p *Publisher) Addr() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.sock == nil {
		return ""
	}
	if addr := p.sock.Addr(); addr != nil {
		return "tcp://" + addr.String()
	}
	return p.bind
}

func (p *Publisher) PublishBrightnessChanged(brightness int) {
	p.send(protocol.New(protocol.PubBrightnessChanged, brightness), true)
}

func (p *Publisher) PublishPeripheralConnected(peripheralID int) {
	p.send(protocol.New(protocol.PubPeripheralConnected, peripheralID), true)
}

func (p *Publisher) PublishPeripheralDisconnected(peripheralID int) {
	p.send(protocol.New(protocol.PubPeripheralDisconnected, peripheralID), true)
}

func (p *Publisher) PublishUnsupportedHardware() {
	p.send(protocol.New(protocol.PubUnsupportedHardware), true)
}

func (p *Publisher) PublishShutdownRequested() {
	p.send(protocol.New(protocol.PubShutdownRequested), true)
}

func (p *Publisher) PublishRebootRequired() {
	p.send(protocol.New(protocol.PubRebootRequired), true)
}

// PublishBatteryStateChanged may fire several times a minute, so its log
// line is gated behind the battery logging config switch.
func (p *Publisher) PublishBatteryStateChanged(state protocol.BatteryState) {
	msg := protocol.New(protocol.PubBatteryStateChanged,
		state.Charging, state.Capacity, state.TimeRemaining, state.Wattage)
	p.send(msg, p.logBattery)
}

func (p *Publisher) PublishScreenBlanked() {
	p.send(protocol.New(protocol.PubScreenBlanked), true)
}

func (p *Publisher) PublishScreenUnblanked() {
	p.send(protocol.New(protocol.PubScreenUnblanked), true)
}

func (p *Publisher) PublishLowBatteryWarning() {
	p.send(protocol.New(protocol.PubLowBatteryWarning), true)
}

func (p *Publisher) PublishCriticalBatteryWarning() {
	p.send(protocol.New(protocol.PubCriticalBatteryWarning), true)
}

func (p *Publisher) PublishLidOpened() {
	p.send(protocol.New(protocol.PubLidOpened), true)
}

func (p *Publisher) PublishLidClosed() {
	p.send(protocol.New(protocol.PubLidClosed), true)
}

func (p *Publisher) PublishUpButtonStateChanged(pressed bool) {
	p.send(protocol.New(buttonEvent(pressed, protocol.PubButtonUpPressed, protocol.PubButtonUpReleased)), true)
}

func (p *Publisher) PublishDownButtonStateChanged(pressed bool) {
	p.send(protocol.New(buttonEvent(pressed, protocol.PubButtonDownPressed, protocol.PubButtonDownReleased)), true)
}

func (p *Publisher) PublishSelectButtonStateChanged(pressed bool) {
	p.send(protocol.New(buttonEvent(pressed, protocol.PubButtonSelectPressed, protocol.PubButtonSelectReleased)), true)
}

func (p *Publisher) PublishCancelButtonStateChanged(pressed bool) {
	p.send(protocol.New(buttonEvent(pressed, protocol.PubButtonCancelPressed, protocol.PubButtonCancelReleased)), true)
}

// PublishOLEDControlChanged reports whether the Raspberry Pi (1) or the hub
// (0) currently drives the OLED.
func (p *Publisher) PublishOLEDControlChanged(controlledByPi bool) {
	value := 0
	if controlledByPi {
		value = 1
	}
	p.send(protocol.New(protocol.PubOLEDControlChanged, value), true)
}

// PublishOLEDSPIBusChanged reports the SPI bus the OLED sits on: 0 when it
// uses SPI0, 1 otherwise.
func (p *Publisher) PublishOLEDSPIBusChanged(usesSPI0 bool) {
	value := 1
	if usesSPI0 {
		value = 0
	}
	p.send(protocol.New(protocol.PubOLEDSPIBusChanged, value), true)
}

func (p *Publisher) PublishReady() {
	p.send(protocol.New(protocol.PubReady), true)
}

func buttonEvent(pressed bool, pressedID, releasedID protocol.ID) protocol.ID {
	if pressed {
		return pressedID
	}
	return releasedID
}

// send performs the not-ready check, the shutting-down re-check, and the
// write inside one critical section so no write can start after shutdown
// begins and shutdown cannot complete mid-write.
func (p *Publisher) send(msg protocol.Message, logSend bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.sock == nil || !p.emitting {
		reason := "publish server not ready"
		if p.sock != nil {
			reason = "daemon not initialized"
		}
		p.logger.Info("not publishing message",
			logging.String("message", msg.Describe()),
			logging.String("reason", reason))
		return
	}
	if p.shuttingDown {
		return
	}

	if logSend {
		p.logger.Info("publishing message", logging.String("message", msg.Describe()))
	}
	if err := p.sock.Send(zmq4.NewMsgString(protocol.Encode(msg))); err != nil {
		p.logger.Error("communication error in publish server",
			logging.String("message", msg.Describe()),
			logging.Error(err))
		return
	}
	p.logger.Debug("published message", logging.String("message", msg.Describe()))
}
