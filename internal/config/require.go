package config

import (
	"fmt"
	"sort"
)

// MustNonEmpty returns an error naming every missing key, so a misconfigured
// deployment fails at startup with the full list instead of one key at a
// time.
func (c *Config) MustNonEmpty(pairs map[string]string) error {
	var missing []string
	for key, val := range pairs {
		if val == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("config: missing required environment variables: %v", missing)
	}
	return nil
}

// Validate checks the settings every deployment needs regardless of which
// optional backends are enabled.
func (c *Config) Validate() error {
	return c.MustNonEmpty(map[string]string{
		"JWT_SECRET": c.JWTSecret,
		"MONGO_URI":  c.MongoURI,
		"MONGO_DB":   c.MongoDB,
	})
}
