// Copyright (c) 2026 OpusDB. All rights reserved.
// Author: minh.ngyn.dev@gmail.com

package auth

import (
	stdctx "context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/minhngyn/opusdb/internal/platform/constants"
	"github.com/minhngyn/opusdb/internal/platform/dberr"
)

// RedisCodeRepository implements CodeRepository using Redis.
//
// Only the bcrypt hash of the code is stored; the TTL lets codes expire
// without a cleanup job.
type RedisCodeRepository struct {
	client *redis.Client
}

// NewRedisCodeRepository creates a new Redis-backed CodeRepository.
func NewRedisCodeRepository(client *redis.Client) *RedisCodeRepository {
	return &RedisCodeRepository{client: client}
}

/*
Set stores a confirmation code hash for a user, replacing any previous one.

Parameters:
  - context: context.Context
  - userID: string
  - codeHash: string (bcrypt hash, never the raw code)
  - ttl: time.Duration

Returns:
  - error: Execution errors
*/
func (repository *RedisCodeRepository) Set(context stdctx.Context, userID, codeHash string, ttl time.Duration) error {
	key := constants.RedisPrefixConfirmationCode + userID

	if err := repository.client.Set(context, key, codeHash, ttl).Err(); err != nil {
		return fmt.Errorf("redis_confirmation_code_set_failed: %w", err)
	}

	return nil
}

/*
Get retrieves the stored code hash for a user.

Description: Returns dberr.ErrNotFound if no code is active (never issued,
or expired).

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - string: Stored bcrypt hash
  - error: dberr.ErrNotFound or connectivity errors
*/
func (repository *RedisCodeRepository) Get(context stdctx.Context, userID string) (string, error) {
	key := constants.RedisPrefixConfirmationCode + userID

	codeHash, err := repository.client.Get(context, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", dberr.ErrNotFound
		}
		return "", fmt.Errorf("redis_confirmation_code_get_failed: %w", err)
	}

	return codeHash, nil
}
