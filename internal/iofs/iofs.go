// Package iofs manages the file system layout of minedb: config and
// log directories, and generation of the default config file.
package iofs

import (
	"os"

	"github.com/acdh-oeaw/minedb/pkg/config"
	"gopkg.in/yaml.v3"
)

// EnsureDirs creates the config and log directories if needed.
func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

// EnsureConfigFile writes a default config.yaml on first run. The file
// is generated from the default Config so it always reflects the
// current set of persistent options.
func EnsureConfigFile(homeDir string) error {
	configPath := config.ConfigFilePath(homeDir)

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	data, err := yaml.Marshal(config.New())
	if err != nil {
		return CopyFileError(configPath, err)
	}

	header := []byte("# minedb configuration.\n" +
		"# Every value can be overridden with MINEDB_* environment\n" +
		"# variables, e.g. MINEDB_API_TOKEN, MINEDB_DATABASE_HOST.\n\n")

	if err := os.WriteFile(configPath, append(header, data...), 0644); err != nil {
		return CopyFileError(configPath, err)
	}

	return nil
}
