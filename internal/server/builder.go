package server

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vinodtana/ai-tools-admin-web/internal/config"
	"github.com/vinodtana/ai-tools-admin-web/internal/logger"
)

// Builder assembles a Server fluently.
type Builder struct {
	id         identity
	listen     config.ServerConfig
	log        logger.Logger
	mount      func(*gin.Engine)
	checks     map[string]HealthChecker
	middleware []gin.HandlerFunc
}

// NewBuilder starts a builder for serviceName on port.
func NewBuilder(serviceName string, port int) *Builder {
	listen := defaultListener
	listen.Port = port
	return &Builder{
		id:     identity{name: serviceName, version: "dev"},
		listen: listen,
		checks: make(map[string]HealthChecker),
	}
}

func (b *Builder) WithLogger(log logger.Logger) *Builder {
	b.log = log
	return b
}

func (b *Builder) WithDebug(debug bool) *Builder {
	b.id.debug = debug
	return b
}

func (b *Builder) WithVersion(version string) *Builder {
	if version != "" {
		b.id.version = version
	}
	return b
}

// WithListener applies the host, timeouts and CORS origins from cfg.
// Zero values keep the defaults; the port given to NewBuilder wins.
func (b *Builder) WithListener(cfg config.ServerConfig) *Builder {
	if cfg.Host != "" {
		b.listen.Host = cfg.Host
	}
	b.listen.ReadTimeout = orDefault(cfg.ReadTimeout, b.listen.ReadTimeout)
	b.listen.WriteTimeout = orDefault(cfg.WriteTimeout, b.listen.WriteTimeout)
	b.listen.IdleTimeout = orDefault(cfg.IdleTimeout, b.listen.IdleTimeout)
	return b.WithCORSOrigins(cfg.CORSOrigins)
}

func (b *Builder) WithCORSOrigins(origins []string) *Builder {
	if len(origins) > 0 {
		b.listen.CORSOrigins = origins
	}
	return b
}

// WithMiddleware appends global middleware after the standard stack.
func (b *Builder) WithMiddleware(mw ...gin.HandlerFunc) *Builder {
	b.middleware = append(b.middleware, mw...)
	return b
}

func (b *Builder) WithHealthCheck(name string, checker HealthChecker) *Builder {
	b.checks[name] = checker
	return b
}

// WithDatabaseHealthCheck marks the service unhealthy when ping fails.
func (b *Builder) WithDatabaseHealthCheck(ping func() error) *Builder {
	return b.WithHealthCheck("database", PingChecker("Database", HealthStatusUnhealthy, ping))
}

func (b *Builder) WithRedisHealthCheck(ping func() error) *Builder {
	return b.WithHealthCheck("redis", PingChecker("Redis", HealthStatusDegraded, ping))
}

func (b *Builder) WithElasticsearchHealthCheck(ping func() error) *Builder {
	return b.WithHealthCheck("elasticsearch", PingChecker("Elasticsearch", HealthStatusDegraded, ping))
}

func (b *Builder) WithRoutes(mount func(*gin.Engine)) *Builder {
	b.mount = mount
	return b
}

// Build creates the server.
func (b *Builder) Build() *Server {
	log := b.log
	if log == nil {
		log = logger.NewNop()
	}

	started := time.Now()
	mount := func(engine *gin.Engine) {
		engine.Use(b.middleware...)
		RegisterHealthRoutes(engine, b.id.name, b.id.version, started, b.checks)
		if b.mount != nil {
			b.mount(engine)
		}
	}
	return newServer(b.id, b.listen, log, mount)
}

func orDefault(v, fallback time.Duration) time.Duration {
	if v > 0 {
		return v
	}
	return fallback
}
