// Package envconfig loads optional .env-style override files for the
// server and client configuration structs.
package envconfig

import (
	"fmt"

	"github.com/joho/godotenv"
)

// Parse reads name as a .env-style file (KEY=value per line) and returns
// its contents as a plain map. A caller overlays the returned keys onto
// its own default configuration.
func Parse(name string) (map[string]string, error) {
	m, err := godotenv.Read(name)
	if err != nil {
		return nil, fmt.Errorf("envconfig: read %q: %w", name, err)
	}
	return m, nil
}
