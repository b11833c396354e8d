package caching

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"tableside/internal/models"

	"github.com/redis/go-redis/v9"
)

type CacheService interface {
	// Menu caching (full categories+items snapshot served to diners)
	GetMenu(ctx context.Context, key string) (*models.Menu, error)
	SetMenu(ctx context.Context, key string, menu *models.Menu, ttl time.Duration) error
	DeleteMenu(ctx context.Context) error

	// Settings caching
	GetSettings(ctx context.Context) (*models.Settings, error)
	SetSettings(ctx context.Context, settings *models.Settings, ttl time.Duration) error
	DeleteSettings(ctx context.Context) error

	Ping(ctx context.Context) error
	Close() error
}

const (
	MenuKey        = "tableside:menu"
	MenuAllKey     = "tableside:menu:all"
	settingsKey    = "tableside:settings"
	menuKeyPattern = "tableside:menu*"
)

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Accept both host:port and redis://host:port forms
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
			parsedAddr = hostPort
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	}

	return &redisCacheService{client: client}
}

func (r *redisCacheService) GetMenu(ctx context.Context, key string) (*models.Menu, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var menu models.Menu
	if err := json.Unmarshal(data, &menu); err != nil {
		return nil, err
	}
	return &menu, nil
}

func (r *redisCacheService) SetMenu(ctx context.Context, key string, menu *models.Menu, ttl time.Duration) error {
	data, err := json.Marshal(menu)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) DeleteMenu(ctx context.Context) error {
	keys, err := r.client.Keys(ctx, menuKeyPattern).Result()
	if err != nil {
		return err
	}
	if len(keys) > 0 {
		return r.client.Del(ctx, keys...).Err()
	}
	return nil
}

func (r *redisCacheService) GetSettings(ctx context.Context) (*models.Settings, error) {
	data, err := r.client.Get(ctx, settingsKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var settings models.Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *redisCacheService) SetSettings(ctx context.Context, settings *models.Settings, ttl time.Duration) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, settingsKey, data, ttl).Err()
}

func (r *redisCacheService) DeleteSettings(ctx context.Context) error {
	return r.client.Del(ctx, settingsKey).Err()
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *redisCacheService) Close() error {
	return r.client.Close()
}
