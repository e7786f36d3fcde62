// Package config populates env-tagged structs from the process
// environment.
//
// Load parses any struct whose fields carry `env` tags, reading the
// default .env file once per process before the first parse. LoadEnv
// layers explicitly named env files on top of the environment, last file
// winning. The Must variants panic, for configuration the process cannot
// start without. Load re-reads the environment on every call, so tests
// that mutate variables with t.Setenv observe fresh values.
//
// # Usage
//
//	type s3Config struct {
//		Bucket string `env:"REPORT_S3_BUCKET,required"`
//		Region string `env:"AWS_REGION" envDefault:"us-east-1"`
//	}
//
//	var cfg s3Config
//	config.MustLoad(&cfg)
//
// # Error Handling
//
// Failures wrap one of the sentinels, inspectable with errors.Is:
// ErrParsingConfig for tag parsing and missing required variables,
// ErrLoadingEnv for unreadable env files, ErrNilPointer for a nil
// destination.
package config
