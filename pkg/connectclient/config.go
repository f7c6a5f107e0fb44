package connectclient

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Endpoint overrides the regional Amazon Connect endpoint (local stacks, tests).
	Endpoint string
	Profile  string

	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string

	Timeout  time.Duration
	PageSize int32

	RetryCount int
	RetryDelay time.Duration

	RateLimit int
	RateBurst int

	CircuitBreakerEnabled bool
	CBFailureThreshold    int
	CBRecoveryTime        time.Duration
	CBMinRequests         int
	CBSamplingDuration    time.Duration
	CBHalfOpenMaxSuccess  int
}

func LoadFromEnv() Config {
	return Config{
		Endpoint: os.Getenv("CONNECT_CLIENT_ENDPOINT"),
		Profile:  os.Getenv("CONNECT_CLIENT_PROFILE"),

		AccessKeyID:     os.Getenv("CONNECT_CLIENT_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("CONNECT_CLIENT_SECRET_ACCESS_KEY"),
		SessionToken:    os.Getenv("CONNECT_CLIENT_SESSION_TOKEN"),

		Timeout:  time.Second * time.Duration(getInt("CONNECT_CLIENT_TIMEOUT", 10)),
		PageSize: int32(getInt("CONNECT_CLIENT_PAGE_SIZE", 10)),

		RetryCount: getInt("CONNECT_CLIENT_RETRY_COUNT", 2),
		RetryDelay: time.Millisecond * time.Duration(getInt("CONNECT_CLIENT_RETRY_DELAY_MS", 500)),

		RateLimit: getInt("CONNECT_CLIENT_RATE_LIMIT", 120),
		RateBurst: getInt("CONNECT_CLIENT_RATE_BURST", 2),

		CircuitBreakerEnabled: getBool("CONNECT_CLIENT_ENABLE_CIRCUIT_BREAKER", true),
		CBFailureThreshold:    getInt("CONNECT_CLIENT_CIRCUIT_BREAKER_FAILURE_THRESHOLD", 5),
		CBRecoveryTime:        time.Second * time.Duration(getInt("CONNECT_CLIENT_CIRCUIT_BREAKER_RECOVERY_TIME", 60)),
		CBMinRequests:         getInt("CONNECT_CLIENT_CIRCUIT_BREAKER_MIN_REQUESTS", 5),
		CBSamplingDuration:    time.Second * time.Duration(getInt("CONNECT_CLIENT_CIRCUIT_BREAKER_SAMPLING_DURATION", 60)),
		CBHalfOpenMaxSuccess:  getInt("CONNECT_CLIENT_CIRCUIT_BREAKER_HALF_OPEN_MAX_SUCCESS", 1),
	}
}

func getInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getBool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		return v == "true"
	}
	return def
}
