package repository

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/Leganyst/slot-booking/internal/model"
)

const availabilityKeyPrefix = "availability:open:"

// CachedAvailabilityRepository кэширует IsOpen в Redis.
// Ошибки Redis не фатальны: запрос уходит в основное хранилище.
type CachedAvailabilityRepository struct {
	AvailabilityRepository

	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedAvailabilityRepository(
	store AvailabilityRepository,
	client *redis.Client,
	ttl time.Duration,
	logger *zap.Logger,
) *CachedAvailabilityRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedAvailabilityRepository{
		AvailabilityRepository: store,
		client:                 client,
		ttl:                    ttl,
		logger:                 logger,
	}
}

func availabilityKey(date time.Time) string {
	return availabilityKeyPrefix + time.Time(dateKey(date)).Format("2006-01-02")
}

func (r *CachedAvailabilityRepository) IsOpen(ctx context.Context, date time.Time) (bool, error) {
	key := availabilityKey(date)

	v, err := r.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		return v == "1", nil
	case !errors.Is(err, redis.Nil):
		r.logger.Debug("availability cache get failed", zap.String("key", key), zap.Error(err))
	}

	open, err := r.AvailabilityRepository.IsOpen(ctx, date)
	if err != nil {
		return false, err
	}

	// SetNX: значение, записанное Upsert после нашего чтения из БД, не перетирается.
	if err := r.client.SetNX(ctx, key, cacheValue(open), r.ttl).Err(); err != nil {
		r.logger.Debug("availability cache set failed", zap.String("key", key), zap.Error(err))
	}
	return open, nil
}

func cacheValue(open bool) string {
	if open {
		return "1"
	}
	return "0"
}

// Upsert обновляет хранилище и записывает новое значение в кэш поверх старого.
func (r *CachedAvailabilityRepository) Upsert(
	ctx context.Context,
	date time.Time,
	open bool,
	notes string,
) (*model.AdminAvailability, error) {
	rec, err := r.AvailabilityRepository.Upsert(ctx, date, open, notes)
	if err != nil {
		return nil, err
	}
	key := availabilityKey(date)
	if err := r.client.Set(ctx, key, cacheValue(rec.IsAvailable), r.ttl).Err(); err != nil {
		r.logger.Warn("availability cache write failed", zap.String("key", key), zap.Error(err))
		if err := r.client.Del(ctx, key).Err(); err != nil {
			r.logger.Warn("availability cache invalidation failed", zap.String("key", key), zap.Error(err))
		}
	}
	return rec, nil
}
