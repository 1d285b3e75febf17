package container

import (
	"strconv"
	"time"
)

const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreRedis    = "redis"

	BrokerMemory = "memory"
	BrokerRedis  = "redis"
)

// Options holds the service configuration. humacli fills it from flags and
// SERVICE_* environment variables.
type Options struct {
	Port    int    `default:"8888"                  help:"Port to listen on"                                    short:"p"`
	BaseURL string `default:""                      help:"Public base URL of short links (defaults to localhost)"`
	Store   string `default:"memory"                help:"Link store: memory, sqlite, postgres or redis"         short:"s"`

	DatabaseURL string        `default:"postgres://localhost:5432/shortlink" help:"PostgreSQL connection string"`
	SQLitePath  string        `default:"shortlink.db"                       help:"SQLite database file"`
	RedisAddr   string        `default:"localhost:6379"                     help:"Redis server address"                short:"r"`
	CacheTTL    time.Duration `default:"0s"                                 help:"Redis lookup cache TTL for sql stores, 0 disables"`
	Broker      string        `default:"memory"                             help:"Event broker: memory or redis"`

	HashLength    int `default:"5"  help:"Length of the first hash candidate"       short:"l"`
	MaxAttempts   int `default:"3"  help:"Candidates tried per length before growing"`
	MaxHashLength int `default:"16" help:"Longest hash tried before giving up, 0 for no limit"`

	LogFormat string `default:"json" help:"Log format: json or console"`
	LogLevel  string `default:"info" help:"Log level"`
	LogFile   string `default:""     help:"Optional rotating log file"`

	RateLimit       int64         `default:"60" help:"Link creations allowed per client and window, 0 disables"`
	RateLimitWindow time.Duration `default:"1m" help:"Rate limit window"`
}

// PublicBaseURL returns BaseURL, or the local address when unset.
func (o *Options) PublicBaseURL() string {
	if o.BaseURL != "" {
		return o.BaseURL
	}

	return "http://localhost:" + strconv.Itoa(o.Port)
}
