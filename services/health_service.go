package services

import (
	"context"
	"time"

	"github.com/WarikanHQ/warikan-backend/logger"
	"github.com/WarikanHQ/warikan-backend/types"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DBPool is the subset of pgxpool.Pool the health service needs; pgxmock
// satisfies it in tests.
type DBPool interface {
	Ping(ctx context.Context) error
	Stat() *pgxpool.Stat
	Config() *pgxpool.Config
}

type HealthService struct {
	dbPool      DBPool
	redisClient *redis.Client
	version     string
	startTime   time.Time
	log         *zap.SugaredLogger
}

func NewHealthService(dbPool DBPool, redisClient *redis.Client, version string) *HealthService {
	return &HealthService{
		dbPool:      dbPool,
		redisClient: redisClient,
		version:     version,
		startTime:   time.Now(),
		log:         logger.GetLogger(),
	}
}

func (h *HealthService) CheckHealth(ctx context.Context) types.HealthCheck {
	components := make(map[string]types.ComponentHealth)
	overallStatus := types.HealthStatusUp

	dbStatus := h.checkDatabase(ctx)
	components["database"] = dbStatus
	if dbStatus.Status == types.HealthStatusDown {
		overallStatus = types.HealthStatusDown
	} else if dbStatus.Status == types.HealthStatusDegraded {
		overallStatus = types.HealthStatusDegraded
	}

	redisStatus := h.checkRedis(ctx)
	components["redis"] = redisStatus
	if redisStatus.Status == types.HealthStatusDown {
		overallStatus = types.HealthStatusDown
	} else if redisStatus.Status == types.HealthStatusDegraded && overallStatus != types.HealthStatusDown {
		overallStatus = types.HealthStatusDegraded
	}

	return types.HealthCheck{
		Status:     overallStatus,
		Components: components,
		Version:    h.version,
		Uptime:     time.Since(h.startTime).Round(time.Second).String(),
		Timestamp:  time.Now().UTC(),
	}
}

func (h *HealthService) checkDatabase(ctx context.Context) types.ComponentHealth {
	// Transient connection drops are common right after a deploy; retry
	// before reporting down.
	var err error
	for attempt := 0; attempt < 3; attempt++ {
		if err = h.dbPool.Ping(ctx); err == nil {
			break
		}
	}
	if err != nil {
		h.log.Errorw("Database health check failed", "error", err)
		return types.ComponentHealth{
			Status:  types.HealthStatusDown,
			Details: "Database connection failed after multiple attempts",
		}
	}

	stat := h.dbPool.Stat()
	maxConns := h.dbPool.Config().MaxConns
	if maxConns > 0 && float64(stat.AcquiredConns())/float64(maxConns) > 0.9 {
		return types.ComponentHealth{
			Status:  types.HealthStatusDegraded,
			Details: "Connection pool near capacity",
		}
	}

	return types.ComponentHealth{
		Status: types.HealthStatusUp,
	}
}

func (h *HealthService) checkRedis(ctx context.Context) types.ComponentHealth {
	if err := h.redisClient.Ping(ctx).Err(); err != nil {
		h.log.Errorw("Redis health check failed", "error", err)
		return types.ComponentHealth{
			Status:  types.HealthStatusDown,
			Details: "Redis connection failed",
		}
	}

	return types.ComponentHealth{
		Status: types.HealthStatusUp,
	}
}
