package server

import (
	"encoding/json"
	"fmt"
	"os"
)

// Manifest is the parsed form of the reactagent.json configuration file.
// It names the graphs the dev server should load and, optionally, an env
// file to source before starting.
//
// Example:
//
//	{
//	  "graphs": {
//	    "agent": "github.com/leofalp/react-agent.New"
//	  },
//	  "env": ".env"
//	}
type Manifest struct {
	// Graphs maps a graph identifier to the factory that produces it.
	// The value is informational; binding identifiers to Go factories
	// happens in code via [Server.RegisterGraph].
	Graphs map[string]string `json:"graphs"`

	// Env is an optional path to a dotenv file loaded before startup.
	Env string `json:"env,omitempty"`
}

// LoadManifest reads and validates a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}

	if len(manifest.Graphs) == 0 {
		return nil, fmt.Errorf("manifest %s declares no graphs", path)
	}
	for graphID, factory := range manifest.Graphs {
		if graphID == "" || factory == "" {
			return nil, fmt.Errorf("manifest %s contains an empty graph entry", path)
		}
	}

	return &manifest, nil
}
