package mirror

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"productbot/assistant/internal/config"
	"productbot/assistant/internal/domain"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

var ErrNotFound = errors.New("no mirrored data")

// SnapshotMirror keeps a copy of the last successfully ingested data of each table
// outside the process.
type SnapshotMirror interface {
	Save(ctx context.Context, data *domain.TableData) error
	Load(ctx context.Context, kind domain.TableKind) (*domain.TableData, error)
}

type RedisMirror struct {
	redisClient *redis.Client
	keyPrefix   string
}

func NewRedisMirror(redisClient *redis.Client, cfg config.RedisConfig) *RedisMirror {
	return &RedisMirror{
		redisClient: redisClient,
		keyPrefix:   cfg.KeyPrefix,
	}
}

func (m *RedisMirror) key(kind domain.TableKind) string {
	return m.keyPrefix + kind.String()
}

func (m *RedisMirror) Save(ctx context.Context, data *domain.TableData) error {
	value, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to serialize %s table: %w", data.Kind, err)
	}

	key := m.key(data.Kind)
	if err := m.redisClient.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to store %s: %w", key, err)
	}

	log.Debugf("Mirrored %s table with %d products to %s", data.Kind, data.Len(), key)
	return nil
}

func (m *RedisMirror) Load(ctx context.Context, kind domain.TableKind) (*domain.TableData, error) {
	key := m.key(kind)
	value, err := m.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}

	var data domain.TableData
	if err := json.Unmarshal(value, &data); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	if data.Kind != kind {
		return nil, fmt.Errorf("%s holds %q data, expected %q", key, data.Kind, kind)
	}

	return &data, nil
}

func (m *RedisMirror) Close() error {
	if m.redisClient != nil {
		return m.redisClient.Close()
	}
	return nil
}
