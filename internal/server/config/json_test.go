package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"endpoint_addr_grpc":             "www.example:9000",
		"endpoint_addr_http":             ":9090",
		"database_dsn":                   "postgres://db",
		"secret_key":                     "my_secret_key",
		"access_token_validity_duration": "1d",
		"s3_access_key_id":               "akid",
		"s3_secret_access_key":           "secret",
		"s3_bucket":                      "bucket",
		"s3_region":                      "region",
		"s3_base_endpoint":               "http://minio:9000",
		"environment":                    "test",
		"bcrypt_cost":                    4,
		"max_avatar_size":                2048,
		"log_level":                      "debug",
		"auth_rate_limit":                2.5,
		"auth_rate_burst":                3,
		"tracing_endpoint":               "http://otel:4318",
	})

	t.Run("loads every field", func(t *testing.T) {
		cfg := &Config{}
		require.NoError(t, parseJson(cfg, []string{"-config", path}))

		assert.Equal(t, &Config{
			EndpointAddrGRPC:            "www.example:9000",
			EndpointAddrHTTP:            ":9090",
			DatabaseDSN:                 "postgres://db",
			SecretKey:                   "my_secret_key",
			AccessTokenValidityDuration: 24 * time.Hour,
			S3AccessKeyID:               "akid",
			S3SecretAccessKey:           "secret",
			S3Bucket:                    "bucket",
			S3Region:                    "region",
			S3BaseEndpoint:              "http://minio:9000",
			Environment:                 "test",
			BcryptCost:                  4,
			MaxAvatarSize:               2048,
			LogLevel:                    "debug",
			AuthRateLimit:               2.5,
			AuthRateBurst:               3,
			TracingEndpoint:             "http://otel:4318",
		}, cfg)
	})

	t.Run("no flag leaves config untouched", func(t *testing.T) {
		cfg := validConfig()
		want := *cfg
		require.NoError(t, parseJson(cfg, []string{"-a", ":1"}))
		assert.Equal(t, want, *cfg)
	})

	t.Run("absent keys keep earlier values", func(t *testing.T) {
		partial := writeTempJSON(t, map[string]any{"s3_bucket": "only-this"})
		cfg := validConfig()
		require.NoError(t, parseJson(cfg, []string{"-c", partial}))
		assert.Equal(t, "only-this", cfg.S3Bucket)
		assert.Equal(t, ":50051", cfg.EndpointAddrGRPC)
		assert.Equal(t, time.Hour, cfg.AccessTokenValidityDuration)
	})

	t.Run("missing file", func(t *testing.T) {
		assert.Error(t, parseJson(&Config{}, []string{"-c", filepath.Join(t.TempDir(), "none.json")}))
	})

	t.Run("invalid json", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))
		assert.Error(t, parseJson(&Config{}, []string{"-c", bad}))
	})
}
