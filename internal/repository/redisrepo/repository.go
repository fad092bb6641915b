package redisrepo

import "github.com/redis/go-redis/v9"

type RedisRepository struct {
	Default Default
}

func New(rdb *redis.Client) *RedisRepository {
	return &RedisRepository{
		Default: newDefaultRepo(rdb),
	}
}
