package client

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-zeromq/zmq4"

	"pitopd/internal/logging"
	"pitopd/internal/protocol"
)

const subscriberRetryInterval = 500 * time.Millisecond

// Subscriber receives broadcast notifications from the daemon and delivers
// them decoded on a channel. Delivery is best-effort: when the consumer lags
// behind the buffer, messages are dropped.
type Subscriber struct {
	sock   zmq4.Socket
	cancel context.CancelFunc
	logger *slog.Logger

	messages chan protocol.Message
	wg       sync.WaitGroup
	once     sync.Once
}

// Subscribe connects to the daemon's broadcast endpoint and starts receiving
// all notifications.
func Subscribe(ctx context.Context, addr string, logger *slog.Logger) (*Subscriber, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	cctx, cancel := context.WithCancel(ctx)
	sock := zmq4.NewSub(cctx)
	if err := sock.Dial(addr); err != nil {
		cancel()
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	if err := sock.SetOption(zmq4.OptionSubscribe, ""); err != nil {
		cancel()
		_ = sock.Close()
		return nil, fmt.Errorf("subscribe: %w", err)
	}

	s := &Subscriber{
		sock:     sock,
		cancel:   cancel,
		logger:   logger.With(logging.String("component", "subscriber")),
		messages: make(chan protocol.Message, 64),
	}
	s.wg.Add(1)
	go s.loop(cctx)
	return s, nil
}

// Messages returns the channel of decoded broadcasts. It is closed when the
// subscriber shuts down.
func (s *Subscriber) Messages() <-chan protocol.Message {
	return s.messages
}

// Close stops receiving and closes the message channel.
func (s *Subscriber) Close() error {
	var err error
	s.once.Do(func() {
		s.cancel()
		err = s.sock.Close()
		s.wg.Wait()
	})
	return err
}

func (s *Subscriber) loop(ctx context.Context) {
	defer s.wg.Done()
	defer close(s.messages)

	for {
		msg, err := s.sock.Recv()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			s.logger.Warn("receiving broadcast failed", logging.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(subscriberRetryInterval):
			}
			continue
		}

		decoded, err := protocol.Decode(string(msg.Bytes()))
		if err != nil {
			s.logger.Warn("discarding undecodable broadcast", logging.Error(err))
			continue
		}

		select {
		case s.messages <- decoded:
		default:
			s.logger.Debug("dropping broadcast, consumer too slow",
				logging.String("message", decoded.Describe()))
		}
	}
}
