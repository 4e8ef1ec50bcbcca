package config

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

// Load loads the configuration from the directory.
func Load(fsys afero.Fs, path string) (*Configuration, error) {
	// If given the path to a config.yaml file, move back up a level.
	if filepath.Base(path) == ConfigurationName {
		path = filepath.Dir(path)
	}

	configContents, err := afero.ReadFile(fsys, filepath.Join(path, ConfigurationName))
	if err != nil {
		return nil, err
	}

	out := Default()
	if err := yaml.UnmarshalStrict(configContents, out); err != nil {
		return nil, err
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// Initialize writes the default configuration into the directory and returns
// it. It refuses to clobber an existing configuration.
func Initialize(fsys afero.Fs, dir string, logger *log.Logger) (*Configuration, error) {
	configPath := filepath.Join(dir, ConfigurationName)

	if exists, err := afero.Exists(fsys, configPath); err != nil {
		return nil, err
	} else if exists {
		return nil, fmt.Errorf("configuration already exists at %s", configPath)
	}

	if err := afero.WriteFile(fsys, configPath, defaultConfigData, 0600); err != nil {
		return nil, err
	}
	logger.Printf("Wrote %s", configPath)

	return Default(), nil
}
