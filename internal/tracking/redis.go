package tracking

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/thakshilaCodes/Feedo/internal/logx"
)

const (
	redisChannelPrefix  = "tracking:"
	redisPublishTimeout = 2 * time.Second
)

// RedisBroker implements Broker over Redis Pub/Sub, so several service
// replicas can share the same rooms.
type RedisBroker struct {
	rdb     *redis.Client
	logger  logx.Logger
	dropped counter
	buffer  int

	out       chan Event
	stop      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewRedisBroker connects to the Redis server at url and starts the publish pump.
func NewRedisBroker(url string, buffer int, dropped counter, logger logx.Logger) (*RedisBroker, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	b := newRedisBroker(redis.NewClient(opt), buffer, dropped, logger)
	b.start()
	return b, nil
}

func newRedisBroker(rdb *redis.Client, buffer int, dropped counter, logger logx.Logger) *RedisBroker {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &RedisBroker{
		rdb:     rdb,
		logger:  logger,
		dropped: dropped,
		buffer:  buffer,
		out:     make(chan Event, buffer*4),
		stop:    make(chan struct{}),
	}
}

var _ Broker = (*RedisBroker)(nil)

func channelName(room string) string { return redisChannelPrefix + room }

// Ping checks the connection.
func (b *RedisBroker) Ping(ctx context.Context) error {
	return b.rdb.Ping(ctx).Err()
}

// Subscribe opens a Pub/Sub subscription for the room.
func (b *RedisBroker) Subscribe(ctx context.Context, room string) (<-chan Event, func(), error) {
	ps := b.rdb.Subscribe(ctx, channelName(room))
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, nil, fmt.Errorf("subscribe %s: %w", room, err)
	}

	ch := make(chan Event, b.buffer)
	go func() {
		defer close(ch)
		for msg := range ps.Channel() {
			var e Event
			if err := json.Unmarshal([]byte(msg.Payload), &e); err != nil {
				b.logger.Warn("tracking event decode failed", logx.String("room", room), logx.Err(err))
				continue
			}
			select {
			case ch <- e:
			default:
				b.drop()
			}
		}
	}()

	var once sync.Once
	done := make(chan struct{})
	cancel := func() {
		once.Do(func() {
			close(done)
			_ = ps.Close()
		})
	}
	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-done:
		}
	}()
	return ch, cancel, nil
}

// Publish queues e for the pump. It drops the event when the queue is full.
func (b *RedisBroker) Publish(_ context.Context, e Event) error {
	select {
	case b.out <- e:
	default:
		b.drop()
	}
	return nil
}

func (b *RedisBroker) start() {
	b.wg.Add(1)
	go b.pump()
}

func (b *RedisBroker) pump() {
	defer b.wg.Done()
	for {
		select {
		case <-b.stop:
			return
		case e := <-b.out:
			b.send(e)
		}
	}
}

func (b *RedisBroker) send(e Event) {
	payload, err := json.Marshal(e)
	if err != nil {
		b.logger.Error("tracking event encode failed", logx.String("room", e.Room), logx.Err(err))
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisPublishTimeout)
	defer cancel()
	if err := b.rdb.Publish(ctx, channelName(e.Room), payload).Err(); err != nil {
		b.logger.Warn("tracking publish failed",
			logx.String("room", e.Room),
			logx.String("type", string(e.Type)),
			logx.Err(err),
		)
	}
}

func (b *RedisBroker) drop() {
	if b.dropped != nil {
		b.dropped.Inc()
	}
}

// Close stops the pump and closes the Redis client.
func (b *RedisBroker) Close() error {
	var err error
	b.closeOnce.Do(func() {
		close(b.stop)
		b.wg.Wait()
		err = b.rdb.Close()
	})
	return err
}
