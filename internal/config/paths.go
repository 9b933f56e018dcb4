package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// appName names the per-user configuration directory and the project-local
// config file (".ctor-generator.yaml" and friends).
const appName = "ctor-generator"

// DefaultConfigDir returns the platform-specific configuration directory.
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		if appdata := os.Getenv("AppData"); appdata != "" {
			return filepath.Join(appdata, appName), nil
		}

		return "", errors.New("AppData not set")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}

		if home := os.Getenv("HOME"); home != "" {
			return filepath.Join(home, ".config", appName), nil
		}

		return "", errors.New("HOME not set")
	}
}

// EnsureDir ensures the directory for a given file path exists.
func EnsureDir(filePath string) error {
	return os.MkdirAll(filepath.Dir(filePath), 0o755)
}

// CandidatePaths builds candidate paths for config files per format, in
// priority order. A user-supplied path comes first and is routed to the
// loader matching its extension.
func CandidatePaths(userPath, workDir string) (jsonPaths, yamlPaths, tomlPaths []string) {
	add := func(slice *[]string, p string) { *slice = append(*slice, p) }

	if userPath != "" {
		switch filepath.Ext(userPath) {
		case ".yaml", ".yml":
			add(&yamlPaths, userPath)
		case ".toml":
			add(&tomlPaths, userPath)
		default:
			add(&jsonPaths, userPath)
		}
	}

	if workDir != "" {
		base := filepath.Join(workDir, "."+appName)
		add(&jsonPaths, base+".json")
		add(&yamlPaths, base+".yaml")
		add(&yamlPaths, base+".yml")
		add(&tomlPaths, base+".toml")
	}

	if dir, err := DefaultConfigDir(); err == nil {
		base := filepath.Join(dir, "config")
		add(&jsonPaths, base+".json")
		add(&yamlPaths, base+".yaml")
		add(&yamlPaths, base+".yml")
		add(&tomlPaths, base+".toml")
	}

	return jsonPaths, yamlPaths, tomlPaths
}

// CandidatePathsFromWorkDir is CandidatePaths for the directory getwd
// returns. When getwd fails the working directory candidates are skipped and
// the error is returned with the remaining paths.
func CandidatePathsFromWorkDir(userPath string, getwd func() (string, error)) (jsonPaths, yamlPaths, tomlPaths []string, err error) {
	wd, err := getwd()
	if err != nil {
		wd = ""
		err = fmt.Errorf("resolving working directory: %w", err)
	}

	jsonPaths, yamlPaths, tomlPaths = CandidatePaths(userPath, wd)

	return jsonPaths, yamlPaths, tomlPaths, err
}
