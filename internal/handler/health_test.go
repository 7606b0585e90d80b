package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestHealthReportsDegradedStores(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// A zero-value gorm.DB has no connection pool and a client pointed at a
	// closed port cannot ping — both stores must report down and the endpoint
	// must answer 503.
	db := &gorm.DB{}
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond})

	r := gin.New()
	r.GET("/health", Health(db, rdb))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"degraded"`)
	assert.Contains(t, w.Body.String(), `"postgres":"down"`)
	assert.Contains(t, w.Body.String(), `"redis":"down"`)
}
