package database

import (
	"context"
	"log"
	"net/url"
	"strconv"
	"time"

	"github.com/das-globally-web/discovery-backend/config"
	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

func InitRedis() {
	config.LoadEnv()

	rawURL := config.GetEnv("REDIS_URL", "localhost:6379")
	password := config.GetEnv("REDIS_PASSWORD", "")
	db := 0
	addr := rawURL

	// REDIS_URL may be a bare host:port or a full redis:// URI
	if u, err := url.Parse(rawURL); err == nil && u.Scheme != "" {
		addr = u.Host

		if u.User != nil {
			pw, _ := u.User.Password()
			if pw != "" {
				password = pw
			}
		}

		if u.Path != "" && u.Path != "/" {
			if dbNum, err := strconv.Atoi(u.Path[1:]); err == nil {
				db = dbNum
			}
		}
	}

	RedisClient = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := RedisClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Unable to connect to redis: %v\n", err)
	}

	log.Println("Connected to Redis at", addr)
}

// SetOnline records a user in the active_users hash while their chat socket is up.
func SetOnline(ctx context.Context, userID, remoteAddr string) error {
	return RedisClient.HSet(ctx, "active_users", userID, remoteAddr).Err()
}

func SetOffline(ctx context.Context, userID string) error {
	return RedisClient.HDel(ctx, "active_users", userID).Err()
}
