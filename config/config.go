package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

var loadEnv = sync.OnceFunc(func() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "No .env file loaded: %v\n", err)
	}
})

// Config returns the value of a required environment variable. The process
// exits when the variable is unset so that misconfiguration fails at boot.
func Config(envVar string) string {
	loadEnv()

	envVarValue := os.Getenv(envVar)
	if envVarValue == "" {
		fmt.Fprintf(os.Stderr, "%s not set\n", envVar)
		os.Exit(1)
	}

	return envVarValue
}

// ConfigDefault returns the value of an environment variable, falling back
// to def when unset.
func ConfigDefault(envVar, def string) string {
	loadEnv()

	if v := os.Getenv(envVar); v != "" {
		return v
	}
	return def
}
