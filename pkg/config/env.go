package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables read by LoadEnv
const (
	EnvS3AccessKey = "RT_S3_ACCESS_KEY"
	EnvS3SecretKey = "RT_S3_SECRET_KEY"
	EnvS3Endpoint  = "RT_S3_ENDPOINT"
	EnvS3Region    = "RT_S3_REGION"
	EnvS3ACL       = "RT_S3_ACL"
)

// LoadEnv reads a .env file into the process environment, if present, and
// fills the S3 settings the config file left empty. Variables already set
// in the environment win over the file.
func (c *Config) LoadEnv(path string) error {
	if path != "" {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config: load %s: %w", path, err)
		}
	}

	fill := func(dst *string, key string) {
		if *dst == "" {
			*dst = os.Getenv(key)
		}
	}
	fill(&c.S3.AccessKey, EnvS3AccessKey)
	fill(&c.S3.SecretKey, EnvS3SecretKey)
	fill(&c.S3.Endpoint, EnvS3Endpoint)
	fill(&c.S3.Region, EnvS3Region)
	fill(&c.S3.ACL, EnvS3ACL)
	if c.S3.Region == "" {
		c.S3.Region = "us-east-1"
	}
	return nil
}
