package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health reports the state of both stores the service depends on: Postgres
// (ledger) and Redis (alert queue + price cache). Returns 503 when either is
// unreachable so load balancers stop routing here. Never exposes DSNs or
// driver errors.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		postgres := "up"
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			postgres = "down"
		}

		redisState := "up"
		if rdb.Ping(ctx).Err() != nil {
			redisState = "down"
		}

		status := http.StatusOK
		overall := "ok"
		if postgres == "down" || redisState == "down" {
			status = http.StatusServiceUnavailable
			overall = "degraded"
		}

		c.JSON(status, gin.H{
			"status":   overall,
			"postgres": postgres,
			"redis":    redisState,
		})
	}
}
