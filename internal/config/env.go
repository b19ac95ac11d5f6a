package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// envFiles are loaded in order; earlier files win because godotenv.Load
// never overrides variables that are already set.
var envFiles = []string{".env", ".env.local"}

// loadEnvFiles loads environment variables from .env/.env.local in dir when
// present. Existing process environment variables are not overwritten.
func loadEnvFiles(dir string) {
	for _, name := range envFiles {
		envPath := filepath.Join(dir, name)
		if _, err := os.Stat(envPath); err != nil {
			continue
		}
		if err := godotenv.Load(envPath); err != nil {
			fmt.Fprintf(os.Stderr, "Note: failed to load %s: %v\n", envPath, err)
			continue
		}
	}
}
