package health

import (
	"context"
	"encoding/json"
	"runtime"
	"strconv"
	"time"

	"rental-backend/internal/middleware"

	"github.com/redis/go-redis/v9"
)

// DBPinger is optional for health check. If nil, database is reported as disconnected.
type DBPinger interface {
	Ping() error
}

// Counter reports row counts for the health payload.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// CollectResult is the /health/json payload minus the service name.
type CollectResult struct {
	Status       string               `json:"status"`
	Runtime      RuntimeInfo          `json:"runtime"`
	Traffic      TrafficInfo          `json:"traffic"`
	Dependencies map[string]DepStatus `json:"dependencies"`
	Records      map[string]int64     `json:"records,omitempty"`
}

type RuntimeInfo struct {
	UptimeSeconds int64      `json:"uptimeSeconds"`
	Memory        MemoryInfo `json:"memory"`
	Platform      string     `json:"platform"`
	GoVersion     string     `json:"goVersion"`
	Goroutines    int        `json:"goroutines"`
}

type MemoryInfo struct {
	Alloc    int `json:"alloc"`
	HeapUsed int `json:"heapUsed"`
}

type TrafficInfo struct {
	TotalRequests   int         `json:"totalRequests"`
	SuccessCount    int         `json:"successCount"`
	FailedCount     int         `json:"failedCount"`
	SuccessRate     string      `json:"successRate"`
	AvgResponseTime interface{} `json:"avgResponseTime"`
	LastRequest     interface{} `json:"lastRequest"`
}

type DepStatus struct {
	Status string      `json:"status"`
	PingMs interface{} `json:"pingMs"`
}

// Service gathers health data from Redis and the database.
type Service struct {
	Rdb      *redis.Client
	DB       DBPinger
	Counters map[string]Counter
	// Started is used for uptime when Redis holds no start time.
	Started time.Time
}

// Collect reports "ok" only when both the database and Redis answer. Without
// Redis the traffic section is zeroed.
func (s *Service) Collect(ctx context.Context) CollectResult {
	result := CollectResult{
		Dependencies: make(map[string]DepStatus),
	}

	dbStatus, dbPingMs := "disconnected", (*int64)(nil)
	if s.DB != nil {
		start := time.Now()
		if err := s.DB.Ping(); err == nil {
			ms := time.Since(start).Milliseconds()
			dbPingMs = &ms
			dbStatus = "connected"
		} else {
			dbStatus = "error"
		}
	}
	result.Dependencies["database"] = DepStatus{Status: dbStatus, PingMs: dbPingMs}

	startTimeMs := time.Now().UnixMilli()
	if !s.Started.IsZero() {
		startTimeMs = s.Started.UnixMilli()
	}
	redisStatus, redisPingMs := "disconnected", (*int64)(nil)
	stats := TrafficInfo{AvgResponseTime: 0, SuccessRate: "100"}
	if s.Rdb != nil {
		start := time.Now()
		if err := s.Rdb.Ping(ctx).Err(); err == nil {
			ms := time.Since(start).Milliseconds()
			redisPingMs = &ms
			redisStatus = "connected"
			startTimeMs = s.readTraffic(ctx, &stats, startTimeMs)
		} else {
			redisStatus = "error"
		}
	}
	result.Dependencies["redis"] = DepStatus{Status: redisStatus, PingMs: redisPingMs}
	result.Traffic = stats

	if dbStatus == "connected" && len(s.Counters) > 0 {
		result.Records = make(map[string]int64, len(s.Counters))
		for name, c := range s.Counters {
			if n, err := c.Count(ctx); err == nil {
				result.Records[name] = n
			}
		}
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	uptimeSec := (time.Now().UnixMilli() - startTimeMs) / 1000
	if uptimeSec < 0 {
		uptimeSec = 0
	}
	result.Runtime = RuntimeInfo{
		UptimeSeconds: uptimeSec,
		Memory:        MemoryInfo{Alloc: int(m.Alloc / 1024 / 1024), HeapUsed: int(m.HeapInuse / 1024 / 1024)},
		Platform:      runtime.GOOS + " (" + runtime.GOARCH + ")",
		GoVersion:     runtime.Version(),
		Goroutines:    runtime.NumGoroutine(),
	}

	if dbStatus == "connected" && redisStatus == "connected" {
		result.Status = "ok"
	} else {
		result.Status = "issue"
	}
	return result
}

func (s *Service) readTraffic(ctx context.Context, stats *TrafficInfo, startTimeMs int64) int64 {
	totalReq, _ := s.Rdb.Get(ctx, middleware.StatsRequests).Result()
	totalErr, _ := s.Rdb.Get(ctx, middleware.StatsServerErrors).Result()
	totalTime, _ := s.Rdb.Get(ctx, middleware.StatsDurationMs).Result()
	resCount, _ := s.Rdb.Get(ctx, middleware.StatsResponses).Result()
	startTimeStr, _ := s.Rdb.Get(ctx, middleware.StatsStartedAt).Result()
	lastReqStr, _ := s.Rdb.Get(ctx, middleware.StatsLastRequest).Result()

	if startTimeStr != "" {
		if t, err := strconv.ParseInt(startTimeStr, 10, 64); err == nil {
			startTimeMs = t
		}
	} else {
		s.Rdb.Set(ctx, middleware.StatsStartedAt, startTimeMs, 0)
	}

	stats.TotalRequests, _ = strconv.Atoi(totalReq)
	stats.FailedCount, _ = strconv.Atoi(totalErr)
	stats.SuccessCount = stats.TotalRequests - stats.FailedCount
	if stats.TotalRequests > 0 {
		stats.SuccessRate = strconv.FormatFloat(float64(stats.SuccessCount)/float64(stats.TotalRequests)*100, 'f', 1, 64)
	}
	timeSum, _ := strconv.ParseFloat(totalTime, 64)
	countSum, _ := strconv.Atoi(resCount)
	if countSum > 0 {
		stats.AvgResponseTime = strconv.FormatFloat(timeSum/float64(countSum), 'f', 2, 64)
	}
	if lastReqStr != "" {
		var lastReq map[string]interface{}
		_ = json.Unmarshal([]byte(lastReqStr), &lastReq)
		stats.LastRequest = lastReq
	}
	return startTimeMs
}

// Reset clears the traffic counters and the error log, restarting uptime.
func (s *Service) Reset(ctx context.Context) error {
	keys := []string{middleware.StatsRequests, middleware.StatsServerErrors, middleware.StatsDurationMs, middleware.StatsResponses, middleware.StatsStartedAt, middleware.StatsLastRequest, middleware.ErrorLogKey}
	if err := s.Rdb.Del(ctx, keys...).Err(); err != nil {
		return err
	}
	return s.Rdb.Set(ctx, middleware.StatsStartedAt, strconv.FormatInt(time.Now().UnixMilli(), 10), 0).Err()
}

// RecentErrors returns the last 50 entries of the error log, newest first.
func (s *Service) RecentErrors(ctx context.Context) ([]map[string]interface{}, error) {
	entries, err := s.Rdb.LRange(ctx, middleware.ErrorLogKey, 0, middleware.ErrorLogSize-1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]map[string]interface{}, 0, len(entries))
	for _, e := range entries {
		var m map[string]interface{}
		if err := json.Unmarshal([]byte(e), &m); err == nil && m != nil {
			out = append(out, m)
		}
	}
	return out, nil
}
