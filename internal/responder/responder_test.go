package responder_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-zeromq/zmq4"

	"pitopd/internal/client"
	"pitopd/internal/config"
	"pitopd/internal/logging"
	"pitopd/internal/protocol"
	"pitopd/internal/responder"
)

type fakeCallback struct {
	mu sync.Mutex

	brightness      int
	blankingTimeout int
	battery         protocol.BatteryState
	peripherals     map[int]bool

	setBrightnessCalls []int
	actionCalls        int

	failWith  error
	panicNext bool
}

func newFakeCallback() *fakeCallback {
	return &fakeCallback{
		brightness:      5,
		blankingTimeout: 300,
		battery:         protocol.BatteryState{Charging: 1, Capacity: 80, TimeRemaining: 120, Wattage: 15},
		peripherals:     map[int]bool{2: true},
	}
}

func (f *fakeCallback) before() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.actionCalls++
	if f.panicNext {
		f.panicNext = false
		panic("hub driver fell over")
	}
	return f.failWith
}

func (f *fakeCallback) OnGetDeviceID() (string, error) {
	if err := f.before(); err != nil {
		return "", err
	}
	return "pi-top[4]", nil
}

func (f *fakeCallback) OnGetBrightness() (int, error) {
	if err := f.before(); err != nil {
		return 0, err
	}
	return f.brightness, nil
}

func (f *fakeCallback) OnSetBrightness(brightness int) error {
	if err := f.before(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.brightness = brightness
	f.setBrightnessCalls = append(f.setBrightnessCalls, brightness)
	return nil
}

func (f *fakeCallback) OnIncrementBrightness() error { return f.before() }
func (f *fakeCallback) OnDecrementBrightness() error { return f.before() }
func (f *fakeCallback) OnBlankScreen() error         { return f.before() }
func (f *fakeCallback) OnUnblankScreen() error       { return f.before() }

func (f *fakeCallback) OnGetBatteryState() (protocol.BatteryState, error) {
	if err := f.before(); err != nil {
		return protocol.BatteryState{}, err
	}
	return f.battery, nil
}

func (f *fakeCallback) OnGetPeripheralEnabled(peripheralID int) (bool, error) {
	if err := f.before(); err != nil {
		return false, err
	}
	return f.peripherals[peripheralID], nil
}

func (f *fakeCallback) OnGetScreenBlankingTimeout() (int, error) {
	if err := f.before(); err != nil {
		return 0, err
	}
	return f.blankingTimeout, nil
}

func (f *fakeCallback) OnSetScreenBlankingTimeout(seconds int) error {
	if err := f.before(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blankingTimeout = seconds
	return nil
}

func (f *fakeCallback) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.actionCalls
}

func startResponder(t *testing.T, cb responder.CallbackClient) (*responder.Responder, *client.Requester) {
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

	c, err := client.DialRequester(ctx, r.Addr(), 3*time.Second)
	if err != nil {
		t.Fatalf("DialRequester: %v", err)
	}
	t.Cleanup(func() {
		_ = c.Close()
	})
	return r, c
}

func TestPing(t *testing.T) {
	_, c := startResponder(t, newFakeCallback())
	if err := c.Ping(); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}

func TestSetBrightnessInvokesCallbackOnce(t *testing.T) {
	cb := newFakeCallback()
	_, c := startResponder(t, cb)

	if err := c.SetBrightness(50); err != nil {
		t.Fatalf("SetBrightness: %v", err)
	}
	cb.mu.Lock()
	defer cb.mu.Unlock()
	if len(cb.setBrightnessCalls) != 1 || cb.setBrightnessCalls[0] != 50 {
		t.Fatalf("setBrightnessCalls = %v, want [50]", cb.setBrightnessCalls)
	}
}

func TestBatteryStateReply(t *testing.T) {
	cb := newFakeCallback()
	_, c := startResponder(t, cb)

	state, err := c.BatteryState()
	if err != nil {
		t.Fatalf("BatteryState: %v", err)
	}
	want := protocol.BatteryState{Charging: 1, Capacity: 80, TimeRemaining: 120, Wattage: 15}
	if state != want {
		t.Fatalf("BatteryState = %+v, want %+v", state, want)
	}
}

func TestPeripheralEnabled(t *testing.T) {
	_, c := startResponder(t, newFakeCallback())

	enabled, err := c.PeripheralEnabled(2)
	if err != nil {
		t.Fatalf("PeripheralEnabled(2): %v", err)
	}
	if !enabled {
		t.Fatal("peripheral 2 should be enabled")
	}
	enabled, err = c.PeripheralEnabled(9)
	if err != nil {
		t.Fatalf("PeripheralEnabled(9): %v", err)
	}
	if enabled {
		t.Fatal("peripheral 9 should be disabled")
	}
}

func TestNonNumericParameterRejectedWithoutCallback(t *testing.T) {
	cb := newFakeCallback()
	_, c := startResponder(t, cb)

	raw := protocol.Message{ID: protocol.ReqSetBrightness, Params: []string{"abc"}}
	_, err := c.Do(raw)
	if !errors.Is(err, client.ErrMalformed) {
		t.Fatalf("error = %v, want ErrMalformed", err)
	}
	if cb.calls() != 0 {
		t.Fatalf("callback invoked %d times for a malformed request", cb.calls())
	}
}

func TestWrongParameterCountRejected(t *testing.T) {
	cb := newFakeCallback()
	_, c := startResponder(t, cb)

	_, err := c.Do(protocol.New(protocol.ReqPing, 1))
	if !errors.Is(err, client.ErrMalformed) {
		t.Fatalf("error = %v, want ErrMalformed", err)
	}
	if cb.calls() != 0 {
		t.Fatalf("callback invoked %d times for a bad-arity request", cb.calls())
	}
}

func TestRequestOutsideDispatchTableUnsupported(t *testing.T) {
	_, c := startResponder(t, newFakeCallback())

	// A broadcast id decodes fine but has no dispatch entry.
	_, err := c.Do(protocol.Message{ID: protocol.PubLidClosed})
	if !errors.Is(err, client.ErrUnsupported) {
		t.Fatalf("error = %v, want ErrUnsupported", err)
	}
}

func TestGarbageRequestGetsMalformedReply(t *testing.T) {
	r, _ := startResponder(t, newFakeCallback())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sock := zmq4.NewReq(ctx)
	if err := sock.Dial(r.Addr()); err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer sock.Close()

	if err := sock.Send(zmq4.NewMsgString("this is not a message")); err != nil {
		t.Fatalf("send: %v", err)
	}
	msg, err := sock.Recv()
	if err != nil {
		t.Fatalf("recv: %v", err)
	}
	reply, err := protocol.Decode(string(msg.Bytes()))
	if err != nil {
		t.Fatalf("decode reply: %v", err)
	}
	if reply.ID != protocol.RspErrMalformed {
		t.Fatalf("reply = %s, want RSP_ERR_MALFORMED", reply.Describe())
	}
}

func TestCallbackErrorBecomesServerError(t *testing.T) {
	cb := newFakeCallback()
	cb.failWith = errors.New("hub returned garbage")
	_, c := startResponder(t, cb)

	err := c.BlankScreen()
	if !errors.Is(err, client.ErrServer) {
		t.Fatalf("error = %v, want ErrServer", err)
	}
}

func TestCallbackPanicStillGetsOneReply(t *testing.T) {
	cb := newFakeCallback()
	cb.panicNext = true
	_, c := startResponder(t, cb)

	err := c.UnblankScreen()
	if !errors.Is(err, client.ErrServer) {
		t.Fatalf("error = %v, want ErrServer", err)
	}

	// The worker must have survived the panic.
	if err := c.Ping(); err != nil {
		t.Fatalf("Ping after panic: %v", err)
	}
}

func TestStopListeningIdempotent(t *testing.T) {
	r, c := startResponder(t, newFakeCallback())
	if err := c.Ping(); err != nil {
		t.Fatalf("Ping: %v", err)
	}

	done := make(chan struct{})
	go func() {
		r.StopListening()
		r.StopListening()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("StopListening did not return")
	}
}

func TestStopListeningWithoutStart(t *testing.T) {
	cfg := config.Default()
	// A port that will not bind: same socket twice.
	cfg.Server.RequestBind = "tcp://127.0.0.1:0"

	ctx := context.Background()
	r := responder.New(ctx, &cfg, newFakeCallback(), logging.NewNop())
	r.StopListening()
	r.StopListening()
}

func TestBindFailureLeavesProcessRunning(t *testing.T) {
	cfg := config.Default()
	cfg.Server.RequestBind = "tcp://127.0.0.1:0"
	ctx := context.Background()

	first := responder.New(ctx, &cfg, newFakeCallback(), logging.NewNop())
	first.StartListening()
	if first.Addr() == "" {
		t.Fatal("first responder did not bind")
	}
	t.Cleanup(first.StopListening)

	cfg2 := config.Default()
	cfg2.Server.RequestBind = first.Addr()
	second := responder.New(ctx, &cfg2, newFakeCallback(), logging.NewNop())
	second.StartListening()
	t.Cleanup(second.StopListening)
	if second.Addr() != "" {
		t.Fatal("second responder should have failed to bind the same port")
	}
}
