package relay

import (
	"context"
	"github.com/go-redis/redis"
	jsoniter "github.com/json-iterator/go"
	"github.com/lordralex/ballot/api"
	"github.com/lordralex/ballot/api/env"
	"github.com/lordralex/ballot/api/logger"
	"github.com/lordralex/ballot/chain"
	"github.com/lordralex/ballot/ledger"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Module struct {
	redis *redis.Client
}

func (*Module) Name() string {
	return "relay"
}

func (m *Module) Load(ctx context.Context, node *chain.Node) error {
	options, err := redis.ParseURL(env.GetOr("redis.url", "redis://localhost:6379/0"))
	if err != nil {
		return errors.Wrap(err, "parsing REDIS_URL")
	}

	m.redis = redis.NewClient(options)
	if err = m.redis.Ping().Err(); err != nil {
		_ = m.redis.Close()
		return errors.Wrap(err, "connecting to redis")
	}

	channel := env.GetOr("relay.channel", "ballot.events")
	logger.Out().Printf("Relaying ledger events to redis channel %s\n", channel)

	go func() {
		defer m.redis.Close()
		api.Follow(ctx, node, env.GetIntOr("relay.buffer", 256), func(ev ledger.Event) {
			if err := publish(m.redis, channel, ev); err != nil {
				logger.Err().Printf("Failed to relay event %d: %s\n", ev.Seq, err)
			}
		})
	}()
	return nil
}

func publish(client *redis.Client, channel string, ev ledger.Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return errors.Wrap(err, "encoding event")
	}
	return client.Publish(channel, data).Err()
}
