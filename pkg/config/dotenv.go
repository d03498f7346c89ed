package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// EnvFiles lists the .env files to load. Explicit files win; otherwise
// .env.<APP_ENV> is tried before .env.
func EnvFiles(explicit ...string) []string {
	if len(explicit) > 0 {
		return explicit
	}
	files := []string{".env"}
	if env := strings.ToLower(os.Getenv("APP_ENV")); env != "" {
		files = append([]string{".env." + env}, files...)
	}
	return files
}

// LoadEnvFiles loads each file into the process environment. Variables
// that are already set are kept, so earlier files take precedence over
// later ones. Missing files are ignored.
func LoadEnvFiles(files ...string) error {
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return ErrEnvFile.WithDetail("path", file).WithCause(err)
		}
	}
	return nil
}
