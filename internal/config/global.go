package config

import (
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"permission-wizard/internal/utils/runtime"
)

const (
	kafkaHostFlag   = "kafka-host"
	kafkaPortFlag   = "kafka-port"
	mongoDBURIFlag  = "mongodb-uri"
	redisAddrFlag   = "redis-addr"
	developmentFlag = "development"
	grpcPortFlag    = "port"
	metricsPortFlag = "metrics-port"

	aiProviderFlag   = "ai-provider"
	aiAPIKeyFlag     = "ai-api-key"
	aiModelFlag      = "ai-model"
	aiWebSearchFlag  = "ai-web-search"
	aiTimeoutFlag    = "ai-timeout"
	aiRateLimitFlag  = "ai-rate-limit"
	aiCacheTTLFlag   = "ai-cache-ttl"
	classifyQuietFlg = "classify-quiet-period"
)

type Config struct {
	Kafka   KafkaConfig
	MongoDB MongoDBConfig
	Redis   RedisConfig
	AI      AIConfig

	Development bool

	GRPCPort    int
	MetricsPort int

	// ClassifyQuietPeriod is how long a keyed classification waits for
	// further edits before running.
	ClassifyQuietPeriod time.Duration
}

type KafkaConfig struct {
	Host string
	Port int
}

type MongoDBConfig struct {
	URI string
}

// RedisConfig is optional, an empty Addr disables the provider cache.
type RedisConfig struct {
	Addr string
}

// AIConfig configures the optional external rank classifier. Without an API
// key no external call is ever attempted.
type AIConfig struct {
	Provider        string
	APIKey          string
	Model           string
	EnableWebSearch bool
	Timeout         time.Duration
	// RateLimit is the number of provider requests allowed per second.
	RateLimit float64
	CacheTTL  time.Duration
}

func (c AIConfig) Enabled() bool {
	return c.APIKey != ""
}

func LoadGlobalConfig() Config {
	viper.SetDefault(kafkaHostFlag, "localhost")
	viper.SetDefault(kafkaPortFlag, 9092)
	viper.SetDefault(mongoDBURIFlag, "mongodb://localhost:27017")
	viper.SetDefault(redisAddrFlag, "")
	viper.SetDefault(developmentFlag, true)
	viper.SetDefault(grpcPortFlag, 10010)
	viper.SetDefault(metricsPortFlag, 8081)
	viper.SetDefault(aiProviderFlag, "anthropic")
	viper.SetDefault(aiAPIKeyFlag, "")
	viper.SetDefault(aiModelFlag, "")
	viper.SetDefault(aiWebSearchFlag, false)
	viper.SetDefault(aiTimeoutFlag, 10*time.Second)
	viper.SetDefault(aiRateLimitFlag, 2.0)
	viper.SetDefault(aiCacheTTLFlag, 24*time.Hour)
	viper.SetDefault(classifyQuietFlg, 300*time.Millisecond)

	pflag.String(kafkaHostFlag, viper.GetString(kafkaHostFlag), "Kafka host")
	pflag.Int32(kafkaPortFlag, viper.GetInt32(kafkaPortFlag), "Kafka port")
	pflag.String(mongoDBURIFlag, viper.GetString(mongoDBURIFlag), "MongoDB URI")
	pflag.String(redisAddrFlag, viper.GetString(redisAddrFlag), "Redis address for the provider cache, empty to disable")
	pflag.Bool(developmentFlag, viper.GetBool(developmentFlag), "Development mode")
	pflag.Int32(grpcPortFlag, viper.GetInt32(grpcPortFlag), "gRPC port")
	pflag.Int32(metricsPortFlag, viper.GetInt32(metricsPortFlag), "Prometheus metrics port")
	pflag.String(aiProviderFlag, viper.GetString(aiProviderFlag), "AI provider (anthropic or openai)")
	pflag.String(aiAPIKeyFlag, viper.GetString(aiAPIKeyFlag), "AI provider API key, empty disables AI classification")
	pflag.String(aiModelFlag, viper.GetString(aiModelFlag), "AI model, empty for the provider default")
	pflag.Bool(aiWebSearchFlag, viper.GetBool(aiWebSearchFlag), "Allow the AI provider to search the web for plugin permissions")
	pflag.Duration(aiTimeoutFlag, viper.GetDuration(aiTimeoutFlag), "Timeout for a single AI provider call")
	pflag.Float64(aiRateLimitFlag, viper.GetFloat64(aiRateLimitFlag), "AI provider requests per second")
	pflag.Duration(aiCacheTTLFlag, viper.GetDuration(aiCacheTTLFlag), "How long AI provider results are cached")
	pflag.Duration(classifyQuietFlg, viper.GetDuration(classifyQuietFlg), "Quiet period before a keyed rank classification runs")
	pflag.Parse()
	runtime.Must(viper.BindPFlags(pflag.CommandLine))

	// Bind the viper flags to environment variables
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	for _, key := range []string{kafkaHostFlag, kafkaPortFlag, mongoDBURIFlag, redisAddrFlag, developmentFlag,
		grpcPortFlag, metricsPortFlag, aiProviderFlag, aiAPIKeyFlag, aiModelFlag, aiWebSearchFlag, aiTimeoutFlag,
		aiRateLimitFlag, aiCacheTTLFlag, classifyQuietFlg} {
		runtime.Must(viper.BindEnv(key))
	}

	return Config{
		Kafka: KafkaConfig{
			Host: viper.GetString(kafkaHostFlag),
			Port: int(viper.GetInt32(kafkaPortFlag)),
		},
		MongoDB: MongoDBConfig{
			URI: viper.GetString(mongoDBURIFlag),
		},
		Redis: RedisConfig{
			Addr: viper.GetString(redisAddrFlag),
		},
		AI: AIConfig{
			Provider:        viper.GetString(aiProviderFlag),
			APIKey:          viper.GetString(aiAPIKeyFlag),
			Model:           viper.GetString(aiModelFlag),
			EnableWebSearch: viper.GetBool(aiWebSearchFlag),
			Timeout:         viper.GetDuration(aiTimeoutFlag),
			RateLimit:       viper.GetFloat64(aiRateLimitFlag),
			CacheTTL:        viper.GetDuration(aiCacheTTLFlag),
		},
		Development:         viper.GetBool(developmentFlag),
		GRPCPort:            int(viper.GetInt32(grpcPortFlag)),
		MetricsPort:         int(viper.GetInt32(metricsPortFlag)),
		ClassifyQuietPeriod: viper.GetDuration(classifyQuietFlg),
	}
}
