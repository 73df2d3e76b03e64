// Package config provides functionality for managing configuration options
// for the vault daemon using command-line flags and environment variables.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"
)

// Options holds the configuration values for the vault daemon.
type Options struct {
	// Address defines the daemon's listening address (ip:port).
	Address string

	// DatabaseDSN holds the PostgreSQL connection string. When empty the
	// daemon falls back to the JSON file store.
	DatabaseDSN string

	// StoreFile is the path of the JSON file store used without a database.
	StoreFile string

	// CertDir is the directory holding (or receiving) the TLS material.
	CertDir string

	// LogLevel sets the logger's minimum level.
	LogLevel string

	// Config is the path to the Config file.
	Config string
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Address, "a", "localhost:8466", "run on ip:port server")
	flag.StringVar(&options.DatabaseDSN, "d", "", "db address (empty: file store)")
	flag.StringVar(&options.StoreFile, "f", "wallet_storage.json", "path to the file store")
	flag.StringVar(&options.CertDir, "certs", "certs", "directory for TLS cert and key")
	flag.StringVar(&options.LogLevel, "l", "info", "log level")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
}

// Parse parses the command-line flags and environment variables to set
// configuration values. It returns a pointer to the Options struct containing
// the parsed configuration values.
func Parse() *Options {
	flag.Parse()

	// Override flags with environment variables if set
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Address = serverAddress
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		options.DatabaseDSN = dsn
	}
	if storeFile := os.Getenv("STORE_FILE"); storeFile != "" {
		options.StoreFile = storeFile
	}
	if certDir := os.Getenv("CERT_DIR"); certDir != "" {
		options.CertDir = certDir
	}
	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		options.LogLevel = logLevel
	}

	return options
}
