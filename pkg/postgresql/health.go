package postgresql

import (
	"context"
	"fmt"
	"time"
)

// HealthCheck represents database health information
type HealthCheck struct {
	Status       string        `json:"status"`
	ResponseTime time.Duration `json:"response_time"`
	ActiveConns  int32         `json:"active_connections"`
	IdleConns    int32         `json:"idle_connections"`
	DatabaseName string        `json:"database_name"`
	Error        string        `json:"error,omitempty"`
}

// CheckHealth pings the pool and reports its usage.
func (c *Client) CheckHealth(ctx context.Context) *HealthCheck {
	start := time.Now()

	stats := c.Stats()
	health := &HealthCheck{
		DatabaseName: c.DatabaseName(),
		ActiveConns:  stats.AcquiredConns(),
		IdleConns:    stats.IdleConns(),
	}

	if err := c.Ping(ctx); err != nil {
		health.Status = "unhealthy"
		health.Error = fmt.Sprintf("ping failed: %v", err)
		health.ResponseTime = time.Since(start)
		return health
	}

	health.Status = "healthy"
	health.ResponseTime = time.Since(start)
	return health
}

// IsHealthy returns true if the database is healthy
func (c *Client) IsHealthy(ctx context.Context) bool {
	return c.CheckHealth(ctx).Status == "healthy"
}
