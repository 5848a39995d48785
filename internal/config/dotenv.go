package config

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Environment overrides for the logging section.
const (
	EnvKey      = "UNITGEN_ENV"
	LogLevelKey = "UNITGEN_LOG_LEVEL"
)

// DotEnvPath returns the path of the .env file that sits next to the config file.
func DotEnvPath(configPath string) string {
	return filepath.Join(filepath.Dir(configPath), ".env")
}

// LoadDotEnv reads the .env file next to configPath. A missing file yields an
// empty map.
//
// Each non-blank, non-comment line is KEY=VALUE, optionally preceded by
// "export ". Single- or double-quoted values are unquoted; unquoted values
// lose a trailing " #comment". Malformed lines are ignored.
func LoadDotEnv(configPath string) (map[string]string, error) {
	p := DotEnvPath(configPath)
	f, err := os.Open(p)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open dotenv file %s: %w", p, err)
	}
	defer f.Close()

	vars := make(map[string]string)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if k, v, ok := parseDotEnvLine(sc.Text()); ok {
			vars[k] = v
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("cannot read dotenv file %s: %w", p, err)
	}
	return vars, nil
}

func parseDotEnvLine(line string) (key, value string, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" || line[0] == '#' {
		return "", "", false
	}
	line = strings.TrimPrefix(line, "export ")
	key, value, found := strings.Cut(line, "=")
	key = strings.TrimSpace(key)
	if !found || key == "" {
		return "", "", false
	}
	value = strings.TrimSpace(value)
	if n := len(value); n >= 2 && (value[0] == '"' || value[0] == '\'') && value[n-1] == value[0] {
		return key, value[1 : n-1], true
	}
	if i := strings.Index(value, " #"); i >= 0 {
		value = strings.TrimSpace(value[:i])
	}
	return key, value, true
}

// GetConfigValue returns the effective value for key: the process
// environment first, then the .env file next to configPath.
func GetConfigValue(configPath, key string) (string, error) {
	dotenv, err := LoadDotEnv(configPath)
	if err != nil {
		return "", err
	}
	return lookup(dotenv, key), nil
}

func lookup(dotenv map[string]string, key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return dotenv[key]
}

// ApplyEnv overrides the logging section from UNITGEN_ENV and
// UNITGEN_LOG_LEVEL. Blank values leave the section untouched.
func ApplyEnv(configPath string, cfg *Config) error {
	dotenv, err := LoadDotEnv(configPath)
	if err != nil {
		return err
	}
	if v := strings.TrimSpace(lookup(dotenv, EnvKey)); v != "" {
		cfg.Logging.Env = v
	}
	if v := strings.TrimSpace(lookup(dotenv, LogLevelKey)); v != "" {
		cfg.Logging.Level = v
	}
	return nil
}

// EnsureDotEnvTemplate creates the .env file next to configPath if it does
// not already exist. The template lists the override keys with empty values.
func EnsureDotEnvTemplate(configPath string) error {
	p := DotEnvPath(configPath)

	_, err := os.Stat(p)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("cannot stat dotenv file %s: %w", p, err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Overrides for the logging section of %s.\n", filepath.Base(configPath))
	fmt.Fprintf(&b, "# %s: dev or prod. %s: debug, info, warn or error.\n", EnvKey, LogLevelKey)
	for _, k := range []string{EnvKey, LogLevelKey} {
		b.WriteString(k + "=\n")
	}
	if err := os.WriteFile(p, []byte(b.String()), 0o600); err != nil {
		return fmt.Errorf("cannot write dotenv template %s: %w", p, err)
	}
	return nil
}
