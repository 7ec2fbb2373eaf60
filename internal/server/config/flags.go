package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/gophaccounts/internal/flagx"
	"github.com/dmitrijs2005/gophaccounts/internal/timex"
)

// parseFlags overlays command-line flags onto config.
//
//	-a string    gRPC bind address (":50051")
//	-o string    ops HTTP bind address (":8081")
//	-d string    PostgreSQL DSN
//	-s string    JWT HMAC secret
//	-t duration  access token lifetime ("1h", "7d")
//	-u string    S3 access key id
//	-p string    S3 secret access key
//	-b string    S3 bucket
//	-g string    S3 region
//	-e string    S3 base endpoint, empty for AWS
//	-env string  development | production | test
//	-l string    log level
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-o", "-d", "-s", "-t", "-u", "-p", "-b", "-g", "-e", "-env", "-l"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "gRPC address and port")
	fs.StringVar(&config.EndpointAddrHTTP, "o", config.EndpointAddrHTTP, "ops HTTP address and port")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "JWT secret")
	fs.Func("t", "access token lifetime", func(v string) error {
		d, err := timex.ParseDuration(v)
		if err != nil {
			return err
		}
		config.AccessTokenValidityDuration = d
		return nil
	})
	fs.StringVar(&config.S3AccessKeyID, "u", config.S3AccessKeyID, "S3 access key id")
	fs.StringVar(&config.S3SecretAccessKey, "p", config.S3SecretAccessKey, "S3 secret access key")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.Environment, "env", config.Environment, "runtime environment")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("flags: %w", err)
	}
	return nil
}
