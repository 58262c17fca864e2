package responder

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/go-zeromq/zmq4"

	"pitopd/internal/config"
	"pitopd/internal/logging"
	"pitopd/internal/protocol"
)

// pollInterval bounds how long the worker waits before re-checking for stop
// intent after a transient receive failure.
const pollInterval = 500 * time.Millisecond

// Responder owns the request/response socket and the single worker serving
// it.
type Responder struct {
	bind     string
	callback CallbackClient
	logger   *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	sock    zmq4.Socket
	started bool
}

// New configures a responder bound to the request endpoint from cfg,
// dispatching device actions to cb.
func New(ctx context.Context, cfg *config.Config, cb CallbackClient, logger *slog.Logger) *Responder {
	if logger == nil {
		logger = logging.NewNop()
	}
	bind := "tcp://*:3782"
	if cfg != nil {
		bind = cfg.Server.RequestBind
	}
	rctx, cancel := context.WithCancel(ctx)
	return &Responder{
		bind:     bind,
		callback: cb,
		logger:   logger.With(logging.String("component", "responder")),
		ctx:      rctx,
		cancel:   cancel,
	}
}

// StartListening binds the request socket and starts the worker. On bind
// failure it logs and returns without starting the worker; the process keeps
// running without a request server.
func (r *Responder) StartListening() {
	r.logger.Debug("opening request socket", logging.String("bind", r.bind))

	sock := zmq4.NewRep(r.ctx)
	if err := sock.Listen(r.bind); err != nil {
		r.logger.Error("starting the request server failed", logging.Error(err), logging.String("bind", r.bind))
		return
	}
	r.sock = sock
	r.started = true
	r.logger.Info("responder server ready")

	r.wg.Add(1)
	go r.serve()
}

// StopListening signals the worker to stop, waits for its current exchange
// to finish, then releases the socket. Safe to call without a prior
// successful StartListening, and safe to call twice.
func (r *Responder) StopListening() {
	r.cancel()
	if !r.started {
		return
	}
	r.logger.Info("closing responder socket")
	r.wg.Wait()
	if err := r.sock.Close(); err != nil && !errors.Is(err, context.Canceled) {
		r.logger.Error("closing the request socket failed", logging.Error(err))
	}
	r.started = false
	r.logger.Debug("responder stopped")
}

// Addr returns the bound endpoint, usable as a dial address. Empty until
// StartListening succeeds.
func (r *Responder) Addr() string {
	if r.sock == nil {
		return ""
	}
	if addr := r.sock.Addr(); addr != nil {
		return "tcp://" + addr.String()
	}
	return r.bind
}

// serve is the worker loop: one request in, exactly one reply out, until
// stop is requested. Receive failures other than cancellation are logged and
// retried after a bounded wait.
func (r *Responder) serve() {
	defer r.wg.Done()
	r.logger.Info("listening for requests")

	for {
		msg, err := r.sock.Recv()
		if err != nil {
			if r.ctx.Err() != nil {
				return
			}
			r.logger.Warn("receiving request failed", logging.Error(err))
			select {
			case <-r.ctx.Done():
				return
			case <-time.After(pollInterval):
			}
			continue
		}

		request := string(msg.Bytes())
		r.logger.Debug("request received", logging.String("request", request))

		reply := r.process(request)

		r.logger.Info("sending response", logging.String("response", reply.Describe()))
		if err := r.sock.Send(zmq4.NewMsgString(protocol.Encode(reply))); err != nil {
			r.logger.Error("sending response failed",
				logging.String("response", reply.Describe()),
				logging.Error(err))
		}
	}
}

// process turns one request line into exactly one reply, mapping every
// failure to one of the three error responses.
func (r *Responder) process(request string) protocol.Message {
	msg, err := protocol.Decode(request)
	if err != nil {
		r.logger.Error("processing message failed",
			logging.String("request", request),
			logging.Error(err))
		return protocol.New(protocol.RspErrMalformed)
	}

	r.logger.Info("received request", logging.String("request", msg.Describe()))

	h, ok := handlers[msg.ID]
	if !ok {
		r.logger.Error("unsupported request received", logging.String("request", msg.Describe()))
		return protocol.New(protocol.RspErrUnsupported)
	}

	if err := msg.ValidateParameters(h.params); err != nil {
		r.logger.Error("request parameters invalid",
			logging.String("request", msg.Describe()),
			logging.Error(err))
		return protocol.New(protocol.RspErrMalformed)
	}

	return r.invoke(h, msg)
}

// invoke runs the callback action and wraps its results into the response.
// A panicking callback is caught and reported as a server error so the
// worker keeps serving.
func (r *Responder) invoke(h handler, msg protocol.Message) (reply protocol.Message) {
	defer func() {
		if panicked := recover(); panicked != nil {
			r.logger.Error("callback panicked",
				logging.String("request", msg.Describe()),
				logging.Any("panic", panicked))
			reply = protocol.New(protocol.RspErrServer)
		}
	}()

	results, err := h.invoke(r.callback, msg)
	if err != nil {
		r.logger.Error("error processing message",
			logging.String("request", msg.Describe()),
			logging.Error(err))
		return protocol.New(protocol.RspErrServer)
	}
	return protocol.New(h.response, results...)
}
