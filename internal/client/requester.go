package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-zeromq/zmq4"

	"pitopd/internal/protocol"
)

// Daemon-reported request failures, mapped from the three error responses.
var (
	ErrServer      = errors.New("daemon reported a server error")
	ErrMalformed   = errors.New("daemon rejected the request as malformed")
	ErrUnsupported = errors.New("daemon does not support the request")

	// ErrTimeout means no reply arrived in time. The request socket is in
	// an undefined state afterwards; close the client and dial again.
	ErrTimeout = errors.New("timed out waiting for a reply")
)

const defaultRequestTimeout = 2 * time.Second

// Requester is a synchronous request/response client. Calls are serialized;
// the transport allows only one outstanding request.
type Requester struct {
	sock    zmq4.Socket
	cancel  context.CancelFunc
	timeout time.Duration

	mu sync.Mutex
}

// DialRequester connects to the daemon's request endpoint. A non-positive
// timeout selects the default per-call timeout.
func DialRequester(ctx context.Context, addr string, timeout time.Duration) (*Requester, error) {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	cctx, cancel := context.WithCancel(ctx)
	sock := zmq4.NewReq(cctx)
	if err := sock.Dial(addr); err != nil {
		cancel()
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	return &Requester{sock: sock, cancel: cancel, timeout: timeout}, nil
}

// Close releases the underlying socket.
func (c *Requester) Close() error {
	c.cancel()
	return c.sock.Close()
}

// Do sends one request and waits for its reply, mapping daemon error
// responses to sentinel errors.
func (c *Requester) Do(req protocol.Message) (protocol.Message, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.sock.Send(zmq4.NewMsgString(protocol.Encode(req))); err != nil {
		return protocol.Message{}, fmt.Errorf("send %s: %w", req.ID.Name(), err)
	}

	type received struct {
		msg zmq4.Msg
		err error
	}
	ch := make(chan received, 1)
	go func() {
		msg, err := c.sock.Recv()
		ch <- received{msg: msg, err: err}
	}()

	select {
	case res := <-ch:
		if res.err != nil {
			return protocol.Message{}, fmt.Errorf("receive reply to %s: %w", req.ID.Name(), res.err)
		}
		reply, err := protocol.Decode(string(res.msg.Bytes()))
		if err != nil {
			return protocol.Message{}, fmt.Errorf("reply to %s: %w", req.ID.Name(), err)
		}
		switch reply.ID {
		case protocol.RspErrServer:
			return reply, ErrServer
		case protocol.RspErrMalformed:
			return reply, ErrMalformed
		case protocol.RspErrUnsupported:
			return reply, ErrUnsupported
		}
		return reply, nil
	case <-time.After(c.timeout):
		return protocol.Message{}, fmt.Errorf("%s: %w", req.ID.Name(), ErrTimeout)
	}
}

// request performs Do and checks the reply against the expected response id
// and schema.
func (c *Requester) request(req protocol.Message, want protocol.ID, schema []protocol.ParamType) (protocol.Message, error) {
	reply, err := c.Do(req)
	if err != nil {
		return reply, err
	}
	if reply.ID != want {
		return reply, fmt.Errorf("unexpected reply %s to %s", reply.Describe(), req.ID.Name())
	}
	if err := reply.ValidateParameters(schema); err != nil {
		return reply, err
	}
	return reply, nil
}

// Ping checks that the daemon is serving requests.
func (c *Requester) Ping() error {
	_, err := c.request(protocol.New(protocol.ReqPing), protocol.RspPing, nil)
	return err
}

// DeviceID returns the identifier of the attached device.
func (c *Requester) DeviceID() (string, error) {
	reply, err := c.request(protocol.New(protocol.ReqGetDeviceID),
		protocol.RspGetDeviceID, []protocol.ParamType{protocol.TypeString})
	if err != nil {
		return "", err
	}
	return reply.String(0)
}

// Brightness returns the current backlight level.
func (c *Requester) Brightness() (int, error) {
	reply, err := c.request(protocol.New(protocol.ReqGetBrightness),
		protocol.RspGetBrightness, []protocol.ParamType{protocol.TypeInt})
	if err != nil {
		return 0, err
	}
	return reply.Int(0)
}

// SetBrightness applies an absolute backlight level.
func (c *Requester) SetBrightness(brightness int) error {
	_, err := c.request(protocol.New(protocol.ReqSetBrightness, brightness),
		protocol.RspSetBrightness, nil)
	return err
}

// IncrementBrightness raises the backlight by one step.
func (c *Requester) IncrementBrightness() error {
	_, err := c.request(protocol.New(protocol.ReqIncrementBrightness),
		protocol.RspIncrementBrightness, nil)
	return err
}

// DecrementBrightness lowers the backlight by one step.
func (c *Requester) DecrementBrightness() error {
	_, err := c.request(protocol.New(protocol.ReqDecrementBrightness),
		protocol.RspDecrementBrightness, nil)
	return err
}

// BlankScreen turns the display off.
func (c *Requester) BlankScreen() error {
	_, err := c.request(protocol.New(protocol.ReqBlankScreen), protocol.RspBlankScreen, nil)
	return err
}

// UnblankScreen turns the display back on.
func (c *Requester) UnblankScreen() error {
	_, err := c.request(protocol.New(protocol.ReqUnblankScreen), protocol.RspUnblankScreen, nil)
	return err
}

// BatteryState returns the daemon's current battery snapshot.
func (c *Requester) BatteryState() (protocol.BatteryState, error) {
	schema := []protocol.ParamType{protocol.TypeInt, protocol.TypeInt, protocol.TypeInt, protocol.TypeInt}
	reply, err := c.request(protocol.New(protocol.ReqGetBatteryState), protocol.RspGetBatteryState, schema)
	if err != nil {
		return protocol.BatteryState{}, err
	}
	var state protocol.BatteryState
	for i, dst := range []*int{&state.Charging, &state.Capacity, &state.TimeRemaining, &state.Wattage} {
		value, err := reply.Int(i)
		if err != nil {
			return protocol.BatteryState{}, err
		}
		*dst = value
	}
	return state, nil
}

// PeripheralEnabled reports whether the given peripheral id is enabled.
func (c *Requester) PeripheralEnabled(peripheralID int) (bool, error) {
	reply, err := c.request(protocol.New(protocol.ReqGetPeripheralEnabled, peripheralID),
		protocol.RspGetPeripheralEnabled, []protocol.ParamType{protocol.TypeInt})
	if err != nil {
		return false, err
	}
	value, err := reply.Int(0)
	if err != nil {
		return false, err
	}
	return value == 1, nil
}

// ScreenBlankingTimeout returns the idle timeout in seconds, zero meaning
// never.
func (c *Requester) ScreenBlankingTimeout() (int, error) {
	reply, err := c.request(protocol.New(protocol.ReqGetScreenBlankingTimeout),
		protocol.RspGetScreenBlankingTimeout, []protocol.ParamType{protocol.TypeInt})
	if err != nil {
		return 0, err
	}
	return reply.Int(0)
}

// SetScreenBlankingTimeout applies a new idle timeout in seconds.
func (c *Requester) SetScreenBlankingTimeout(seconds int) error {
	_, err := c.request(protocol.New(protocol.ReqSetScreenBlankingTimeout, seconds),
		protocol.RspSetScreenBlankingTimeout, nil)
	return err
}
