package cache

import (
	"errors"
	"time"

	"github.com/go-redis/redis/v7"
)

// Client implements KV against a running cache server over RESP.
type Client struct {
	rdb *redis.Client
}

var _ KV = (*Client)(nil)

func NewClient(addr string) *Client {
	return &Client{rdb: redis.NewClient(&redis.Options{
		Addr:        addr,
		DialTimeout: 500 * time.Millisecond,
		MaxRetries:  0,
	})}
}

func (c *Client) Get(key string) (string, error) {
	v, err := c.rdb.Get(key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	return v, err
}

// Set sends SET key value [EX seconds]. The server only understands whole
// seconds, so sub-second remainders are rounded up.
func (c *Client) Set(key, value string, ttl time.Duration) error {
	var exp time.Duration
	if t := durationTTL(ttl); t.Finite() {
		exp = time.Duration(t.Seconds()) * time.Second
	}
	return c.rdb.Set(key, value, exp).Err()
}

func (c *Client) Close() error {
	return c.rdb.Close()
}
