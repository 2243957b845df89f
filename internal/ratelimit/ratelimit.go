package ratelimit

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"

	"codeberg.org/atlasagency/server/internal/errors"
	"codeberg.org/atlasagency/server/internal/logger"
)

const keyPrefix = "atlas:ratelimit"

// Middleware limits requests per client IP. formatted follows the limiter
// notation ("10-M" is ten per minute). A nil client keeps counters in memory.
func Middleware(formatted string, client *redis.Client) (gin.HandlerFunc, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit %q: %w", formatted, err)
	}

	store, err := newStore(client)
	if err != nil {
		return nil, err
	}

	instance := limiter.New(store, rate)

	return mgin.NewMiddleware(instance,
		mgin.WithLimitReachedHandler(limitReached(rate.Period)),
		mgin.WithErrorHandler(storeFailed),
	), nil
}

func newStore(client *redis.Client) (limiter.Store, error) {
	if client == nil {
		return memory.NewStoreWithOptions(limiter.StoreOptions{
			Prefix:          keyPrefix,
			CleanUpInterval: limiter.DefaultCleanUpInterval,
		}), nil
	}

	store, err := sredis.NewStoreWithOptions(client, limiter.StoreOptions{
		Prefix: keyPrefix,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create redis rate limit store: %w", err)
	}

	return store, nil
}

func limitReached(period time.Duration) func(c *gin.Context) {
	return func(c *gin.Context) {
		logger.FromContext(c.Request.Context()).Warn("rate limit exceeded", "ip", c.ClientIP())

		c.Header("Retry-After", strconv.Itoa(int(period.Seconds())))
		errors.TooManyRequests(c, "too many itinerary requests. please slow down.")
	}
}

// lets the request through when the counter store fails
func storeFailed(c *gin.Context, err error) {
	logger.FromContext(c.Request.Context()).Error("rate limit store failed", "error", err)
	c.Next()
}
