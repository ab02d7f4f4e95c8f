package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/cartline/storefront/go/internal/core/ports"
)

const tokenPrefix = "storefront_tokens"

// TokenRedisRepository stores refresh tokens in Redis, expired by TTL.
type TokenRedisRepository struct {
	client redis.Cmdable
	logger *logrus.Logger
}

// NewTokenRedisRepository creates a new Redis token repository
func NewTokenRedisRepository(client redis.Cmdable, logger *logrus.Logger) ports.TokenRepository {
	return &TokenRedisRepository{client: client, logger: logger}
}

// StoreRefreshToken stores a refresh token with TTL derived from its expiry
func (r *TokenRedisRepository) StoreRefreshToken(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return fmt.Errorf("refresh token already expired")
	}

	rec := ports.RefreshToken{UserID: userID, Token: token, ExpiresAt: expiresAt}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal refresh token: %w", err)
	}

	key := fmt.Sprintf("%s:refresh:%s", tokenPrefix, token)
	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store refresh token in Redis: %w", err)
	}

	userKey := fmt.Sprintf("%s:user:%s:refresh", tokenPrefix, userID)
	if err := r.client.SAdd(ctx, userKey, token).Err(); err != nil {
		return fmt.Errorf("failed to add token to user mapping: %w", err)
	}
	_ = r.client.Expire(ctx, userKey, ttl+time.Hour)
	return nil
}

// GetRefreshToken retrieves a refresh token record
func (r *TokenRedisRepository) GetRefreshToken(ctx context.Context, token string) (*ports.RefreshToken, error) {
	key := fmt.Sprintf("%s:refresh:%s", tokenPrefix, token)
	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("refresh token not found or expired")
		}
		return nil, fmt.Errorf("failed to get refresh token from Redis: %w", err)
	}

	var rec ports.RefreshToken
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal refresh token: %w", err)
	}
	return &rec, nil
}

// DeleteRefreshToken removes a refresh token
func (r *TokenRedisRepository) DeleteRefreshToken(ctx context.Context, token string) error {
	rec, err := r.GetRefreshToken(ctx, token)
	if err != nil {
		// Deleting an absent token is a no-op: it may simply have expired.
		return nil
	}

	key := fmt.Sprintf("%s:refresh:%s", tokenPrefix, token)
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}

	userKey := fmt.Sprintf("%s:user:%s:refresh", tokenPrefix, rec.UserID)
	if err := r.client.SRem(ctx, userKey, token).Err(); err != nil && r.logger != nil {
		r.logger.WithFields(logrus.Fields{"user_id": rec.UserID}).WithError(err).Warn("failed to remove token from user mapping")
	}
	return nil
}

// DeleteUserTokens revokes every refresh token belonging to a user
func (r *TokenRedisRepository) DeleteUserTokens(ctx context.Context, userID uuid.UUID) error {
	userKey := fmt.Sprintf("%s:user:%s:refresh", tokenPrefix, userID)
	tokens, err := r.client.SMembers(ctx, userKey).Result()
	if err != nil {
		return fmt.Errorf("failed to list user tokens: %w", err)
	}

	for _, token := range tokens {
		key := fmt.Sprintf("%s:refresh:%s", tokenPrefix, token)
		if err := r.client.Del(ctx, key).Err(); err != nil && r.logger != nil {
			r.logger.WithFields(logrus.Fields{"user_id": userID}).WithError(err).Warn("failed to delete user refresh token")
		}
	}
	if err := r.client.Del(ctx, userKey).Err(); err != nil {
		return fmt.Errorf("failed to delete user token mapping: %w", err)
	}
	return nil
}
