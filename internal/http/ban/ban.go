package ban

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/inventory-catalog/api/internal/redissvc"
)

const (
	maxStrikes = 5
	strikeTTL  = time.Minute
	banTTL     = 15 * time.Minute

	BanLogKey = "ratelimit:banlog"
)

var (
	rdb *redis.Client
	ctx context.Context
)

func SetRedisService(rs *redissvc.RedisService) {
	rdb = rs.Rdb()
	ctx = rs.Ctx()
}

// Enabled reports whether abuse control has a Redis backend to work with.
func Enabled() bool {
	return rdb != nil
}

// Strike records a rate-limit violation for a client and returns true when
// the client crosses the ban threshold. Degrades to a no-op without Redis.
func Strike(id, route string) bool {
	if rdb == nil {
		return false
	}

	key := "ratelimit:strikes:" + id
	strikes, err := rdb.Incr(ctx, key).Result()
	if err != nil {
		log.Printf("ban: could not count strike for %s: %v", id, err)
		return false
	}
	rdb.Expire(ctx, key, strikeTTL)

	if strikes < maxStrikes {
		return false
	}

	if err := rdb.Set(ctx, banKey(id), time.Now().Format(time.RFC3339), banTTL).Err(); err != nil {
		log.Printf("ban: could not ban %s: %v", id, err)
		return false
	}
	logBanEvent(id, route, int(strikes))
	return true
}

// IsBanned reports whether a client is currently banned.
func IsBanned(id string) bool {
	if rdb == nil {
		return false
	}
	n, err := rdb.Exists(ctx, banKey(id)).Result()
	if err != nil {
		log.Printf("ban: could not check %s: %v", id, err)
		return false
	}
	return n > 0
}

type BanLogEntry struct {
	Target  string    `json:"target"`
	Route   string    `json:"route"`
	Strikes int       `json:"strikes"`
	Time    time.Time `json:"time"`
}

func logBanEvent(target, route string, strikes int) {
	entry := BanLogEntry{
		Target:  target,
		Route:   route,
		Strikes: strikes,
		Time:    time.Now(),
	}
	data, _ := json.Marshal(entry)
	if err := rdb.RPush(ctx, BanLogKey, data).Err(); err != nil {
		log.Printf("ban: could not append ban log: %v", err)
	}
}

func banKey(id string) string {
	return fmt.Sprintf("ratelimit:ban:%s", id)
}
