package client_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"pitopd/internal/broadcast"
	"pitopd/internal/client"
	"pitopd/internal/config"
	"pitopd/internal/logging"
	"pitopd/internal/protocol"
	"pitopd/internal/responder"
)

type stubCallback struct {
	brightness int
	failNext   error
}

func (s *stubCallback) OnGetDeviceID() (string, error) { return "pi-top[4]", nil }
func (s *stubCallback) OnGetBrightness() (int, error)  { return s.brightness, s.failNext }
func (s *stubCallback) OnSetBrightness(brightness int) error {
	s.brightness = brightness
	return s.failNext
}
func (s *stubCallback) OnIncrementBrightness() error { return s.failNext }
func (s *stubCallback) OnDecrementBrightness() error { return s.failNext }
func (s *stubCallback) OnBlankScreen() error         { return s.failNext }
func (s *stubCallback) OnUnblankScreen() error       { return s.failNext }
func (s *stubCallback) OnGetBatteryState() (protocol.BatteryState, error) {
	return protocol.BatteryState{Charging: 1, Capacity: 75, TimeRemaining: 90, Wattage: 12}, s.failNext
}
func (s *stubCallback) OnGetPeripheralEnabled(int) (bool, error)  { return true, s.failNext }
func (s *stubCallback) OnGetScreenBlankingTimeout() (int, error)  { return 300, s.failNext }
func (s *stubCallback) OnSetScreenBlankingTimeout(seconds int) error {
	return s.failNext
}

func startResponder(t *testing.T, cb responder.CallbackClient) *responder.Responder {
	t.Helper()

	cfg := config.Default()
	cfg.Server.RequestBind = "tcp://127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	r := responder.New(ctx, &cfg, cb, logging.NewNop())
	r.StartListening()
	if r.Addr() == "" {
		t.Fatal("responder did not bind")
	}
	t.Cleanup(r.StopListening)
	return r
}

func dial(t *testing.T, addr string) *client.Requester {
	t.Helper()
	req, err := client.DialRequester(context.Background(), addr, 2*time.Second)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { req.Close() })
	return req
}

func TestRequesterRoundTrip(t *testing.T) {
	cb := &stubCallback{brightness: 5}
	r := startResponder(t, cb)
	req := dial(t, r.Addr())

	if err := req.Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}
	if err := req.SetBrightness(9); err != nil {
		t.Fatalf("set brightness: %v", err)
	}
	level, err := req.Brightness()
	if err != nil {
		t.Fatalf("get brightness: %v", err)
	}
	if level != 9 {
		t.Fatalf("brightness = %d, want 9", level)
	}

	state, err := req.BatteryState()
	if err != nil {
		t.Fatalf("battery state: %v", err)
	}
	want := protocol.BatteryState{Charging: 1, Capacity: 75, TimeRemaining: 90, Wattage: 12}
	if state != want {
		t.Fatalf("battery state = %+v, want %+v", state, want)
	}

	enabled, err := req.PeripheralEnabled(3)
	if err != nil {
		t.Fatalf("peripheral enabled: %v", err)
	}
	if !enabled {
		t.Fatal("peripheral reported disabled")
	}
}

func TestRequesterMapsErrorResponses(t *testing.T) {
	cb := &stubCallback{failNext: errors.New("hub unavailable")}
	r := startResponder(t, cb)
	req := dial(t, r.Addr())

	if err := req.BlankScreen(); !errors.Is(err, client.ErrServer) {
		t.Fatalf("callback failure mapped to %v, want ErrServer", err)
	}

	// A broadcast id is not a request; the daemon rejects it as unsupported.
	if _, err := req.Do(protocol.New(protocol.PubLidClosed)); !errors.Is(err, client.ErrUnsupported) {
		t.Fatalf("broadcast id mapped to %v, want ErrUnsupported", err)
	}
}

func TestSubscriberDeliversDecodedBroadcasts(t *testing.T) {
	cfg := config.Default()
	cfg.Server.BroadcastBind = "tcp://127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	pub := broadcast.New(ctx, &cfg, logging.NewNop())
	if !pub.StartListening() {
		t.Fatal("publisher did not bind")
	}
	t.Cleanup(pub.StopListening)
	pub.SetEmitting(true)

	sub, err := client.Subscribe(context.Background(), pub.Addr(), logging.NewNop())
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	t.Cleanup(func() { sub.Close() })

	// Give the subscription time to propagate to the publisher.
	time.Sleep(200 * time.Millisecond)

	pub.PublishBrightnessChanged(4)

	select {
	case msg := <-sub.Messages():
		if msg.ID != protocol.PubBrightnessChanged {
			t.Fatalf("message id = %d, want %d", msg.ID, protocol.PubBrightnessChanged)
		}
		if got, err := msg.Int(0); err != nil || got != 4 {
			t.Fatalf("brightness param = %v (err %v), want 4", got, err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no broadcast received")
	}
}

func TestSubscriberCloseIsIdempotent(t *testing.T) {
	cfg := config.Default()
	cfg.Server.BroadcastBind = "tcp://127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	pub := broadcast.New(ctx, &cfg, logging.NewNop())
	if !pub.StartListening() {
		t.Fatal("publisher did not bind")
	}
	t.Cleanup(pub.StopListening)

	sub, err := client.Subscribe(context.Background(), pub.Addr(), logging.NewNop())
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if err := sub.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := sub.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if _, ok := <-sub.Messages(); ok {
		t.Fatal("messages channel still open after close")
	}
}
