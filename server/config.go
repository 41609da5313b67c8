package server

import (
	"fmt"
	"net"
	"os"
	"strconv"
)

// Defaults for the dev server configuration.
const (
	DefaultHost         = "127.0.0.1"
	DefaultPort         = 2024
	DefaultManifestPath = "reactagent.json"
)

// Environment variables overriding the defaults.
const (
	envHost         = "REACT_AGENT_SERVER_HOST"
	envPort         = "REACT_AGENT_SERVER_PORT"
	envManifestPath = "REACT_AGENT_MANIFEST"
)

// Config holds the dev server settings.
type Config struct {
	// Host is the interface the server binds to.
	Host string

	// Port is the TCP port the server listens on.
	Port int

	// ManifestPath locates the JSON manifest naming the graphs to serve.
	ManifestPath string
}

// Load builds a Config from defaults and environment overrides.
func Load() (Config, error) {
	cfg := Config{
		Host:         DefaultHost,
		Port:         DefaultPort,
		ManifestPath: DefaultManifestPath,
	}

	if host := os.Getenv(envHost); host != "" {
		cfg.Host = host
	}

	if portValue := os.Getenv(envPort); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port < 1 || port > 65535 {
			return Config{}, fmt.Errorf("invalid %s value %q: must be a port number", envPort, portValue)
		}
		cfg.Port = port
	}

	if manifestPath := os.Getenv(envManifestPath); manifestPath != "" {
		cfg.ManifestPath = manifestPath
	}

	return cfg, nil
}

// Addr returns the host:port address the server binds to.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
