package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/trailforge/plancal/internal/platform/logging"
)

const (
	EnvDev  = "dev"
	EnvProd = "prod"
)

const (
	DatasetSourceSeed     = "seed"
	DatasetSourceFile     = "file"
	DatasetSourcePostgres = "postgres"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string
	HTTPAddr       string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration

	CORSAllowedOrigins []string
	InternalAPIToken   string

	// Calendar constants: the single fixed timezone every season must
	// declare and the weekday every week starts on.
	Timezone  string
	WeekStart string

	DatasetSource         string
	SnapshotDir           string
	SnapshotDecodeWorkers int
	DBURL                 string
	ValidateOnLoad        bool

	CacheEnabled bool
	CacheTTL     time.Duration

	PprofEnabled bool
	PprofAddr    string

	PyroscopeEnabled       bool
	PyroscopeServerAddress string
	PyroscopeAppName       string
	PyroscopeAuthToken     string
	PyroscopeUploadRate    time.Duration

	UptraceEnabled     bool
	UptraceDSN         string
	UptraceLogsEnabled bool

	LogLevel logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	readTimeout, err := time.ParseDuration(getEnv("HTTP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("HTTP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_WRITE_TIMEOUT: %w", err)
	}

	datasetSource := strings.ToLower(strings.TrimSpace(getEnv("DATASET_SOURCE", DatasetSourceSeed)))
	switch datasetSource {
	case DatasetSourceSeed, DatasetSourceFile, DatasetSourcePostgres:
	default:
		return Config{}, fmt.Errorf("DATASET_SOURCE must be one of seed, file, postgres; got %q", datasetSource)
	}

	snapshotDir := strings.TrimSpace(getEnv("SNAPSHOT_DIR", ""))
	if datasetSource == DatasetSourceFile && snapshotDir == "" {
		return Config{}, fmt.Errorf("SNAPSHOT_DIR is required when DATASET_SOURCE=file")
	}

	snapshotDecodeWorkers, err := getEnvAsInt("SNAPSHOT_DECODE_WORKERS", 8)
	if err != nil {
		return Config{}, fmt.Errorf("parse SNAPSHOT_DECODE_WORKERS: %w", err)
	}
	if snapshotDecodeWorkers < 1 {
		return Config{}, fmt.Errorf("SNAPSHOT_DECODE_WORKERS must be >= 1")
	}

	dbURL := strings.TrimSpace(getEnv("DB_URL", ""))
	if datasetSource == DatasetSourcePostgres && dbURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required when DATASET_SOURCE=postgres")
	}

	validateOnLoad, err := strconv.ParseBool(getEnv("VALIDATE_ON_LOAD", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse VALIDATE_ON_LOAD: %w", err)
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "5m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheEnabled && cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0 when CACHE_ENABLED=true")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	uptraceLogsEnabled, err := strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}

	serviceName := strings.TrimSpace(getEnv("SERVICE_NAME", "plancal"))

	cfg := Config{
		AppEnv:         appEnv,
		ServiceName:    serviceName,
		ServiceVersion: strings.TrimSpace(getEnv("SERVICE_VERSION", "dev")),
		HTTPAddr:       strings.TrimSpace(getEnv("HTTP_ADDR", ":8080")),
		ReadTimeout:    readTimeout,
		WriteTimeout:   writeTimeout,

		CORSAllowedOrigins: splitAndTrim(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		InternalAPIToken:   strings.TrimSpace(getEnv("INTERNAL_API_TOKEN", "")),

		Timezone:  strings.TrimSpace(getEnv("PLAN_TIMEZONE", "America/Los_Angeles")),
		WeekStart: strings.TrimSpace(getEnv("PLAN_WEEK_START", "monday")),

		DatasetSource:         datasetSource,
		SnapshotDir:           snapshotDir,
		SnapshotDecodeWorkers: snapshotDecodeWorkers,
		DBURL:                 dbURL,
		ValidateOnLoad:        validateOnLoad,

		CacheEnabled: cacheEnabled,
		CacheTTL:     cacheTTL,

		PprofEnabled: pprofEnabled,
		PprofAddr:    pprofAddr,

		PyroscopeEnabled:       pyroscopeEnabled,
		PyroscopeServerAddress: pyroscopeServerAddress,
		PyroscopeAppName:       strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", serviceName)),
		PyroscopeAuthToken:     strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeUploadRate:    pyroscopeUploadRate,

		UptraceEnabled:     uptraceEnabled,
		UptraceDSN:         uptraceDSN,
		UptraceLogsEnabled: uptraceLogsEnabled,

		LogLevel: parseLogLevel(getEnv("LOG_LEVEL", "info")),
	}

	if cfg.HTTPAddr == "" {
		return Config{}, fmt.Errorf("HTTP_ADDR cannot be empty")
	}
	if cfg.Timezone == "" {
		return Config{}, fmt.Errorf("PLAN_TIMEZONE cannot be empty")
	}
	if cfg.WeekStart == "" {
		return Config{}, fmt.Errorf("PLAN_WEEK_START cannot be empty")
	}

	return cfg, nil
}

func parseAppEnv(raw string) (string, error) {
	env := strings.ToLower(strings.TrimSpace(raw))
	switch env {
	case EnvDev, EnvProd:
		return env, nil
	default:
		return "", fmt.Errorf("APP_ENV must be dev or prod, got %q", raw)
	}
}

func parseLogLevel(raw string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) (int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	return strconv.Atoi(strings.TrimSpace(raw))
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
