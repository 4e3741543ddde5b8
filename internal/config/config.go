// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"gopkg.in/yaml.v3"
)

// ConfigType holds the parsed tsq.yaml document. Namespace is the subcommand
// name and is used as the preferred key prefix when resolving dotted paths,
// so `q.output` wins over `output` when the q command asks for "output".
type ConfigType struct {
	Source    string
	Namespace string
	Data      map[string]interface{}
}

var Config ConfigType

func init() {
	_, _ = Load()
}

// Load reads tsq.yaml and replaces the package-level Config. An optional
// namespace (the subcommand name) may be passed. A missing config file is
// not fatal to callers that tolerate empty config; the error is still
// returned for those that don't.
func Load(namespace ...string) (ConfigType, error) {
	ns := ""
	if len(namespace) > 0 {
		ns = namespace[0]
	}

	path, err := getConfigPath()
	if err != nil {
		Config = ConfigType{Namespace: ns}
		return Config, err
	}

	bytes, err := os.ReadFile(path)
	if err != nil {
		return ConfigType{}, err
	}

	var data map[string]interface{}
	if err := yaml.Unmarshal(bytes, &data); err != nil {
		return ConfigType{}, err
	}

	Config = ConfigType{
		Source:    path,
		Namespace: ns,
		Data:      data}

	return Config, nil
}

// get traverses the map using a dotted key path
func (cfg *ConfigType) get(kspec string) (any, error) {
	if len(cfg.Data) == 0 {
		_, _ = Load(cfg.Namespace)
		cfg.Data = Config.Data
		cfg.Source = Config.Source
	}

	candidateKeys := []string{"", kspec}
	if cfg.Namespace != "" {
		candidateKeys[0] = cfg.Namespace + "." + kspec
	}

	for _, key := range candidateKeys {
		keys := strings.Split(key, ".")
		var current interface{} = cfg.Data

		success := true
		for _, key := range keys {
			m, ok := current.(map[string]interface{})
			if !ok {
				success = false
				break
			}
			current, ok = m[key]
			if !ok {
				success = false
				break
			}
		}

		if success {
			return current, nil
		}
	}

	return nil, fmt.Errorf("no valid path found among: %v", candidateKeys)
}

func GetString(key string, defaultValue ...string) (string, error) {
	if len(Config.Data) == 0 {
		_, _ = Load()
	}

	val, err := Config.get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return "", err
	}

	s, ok := val.(string)
	if !ok {
		return "", errors.New("value is not a string")
	}

	return s, nil
}

func GetInt(key string, defaultValue ...int) (int, error) {
	if len(Config.Data) == 0 {
		_, _ = Load()
	}

	val, err := Config.get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return 0, err
	}

	// YAML numbers may be unmarshaled as int/float64 depending on content.
	switch v := val.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	default:
		return 0, errors.New("value is not an int")
	}
}

// GetStringSlice returns a list-valued key. Scalar list items are
// stringified so numeric YAML entries still come back usable.
func GetStringSlice(key string) ([]string, error) {
	if len(Config.Data) == 0 {
		_, _ = Load()
	}

	val, err := Config.get(key)
	if err != nil {
		return nil, err
	}

	items, ok := val.([]interface{})
	if !ok {
		return nil, errors.New("value is not a list")
	}

	result := make([]string, 0, len(items))
	for _, item := range items {
		result = append(result, fmt.Sprintf("%v", item))
	}
	return result, nil
}

func getConfigPath() (string, error) {

	// TSQ_CFG short-circuits the standard locations. It must point at a
	// file, not a directory.
	if c, ok := os.LookupEnv("TSQ_CFG"); ok && c != "" {
		fileInfo, err := os.Stat(c)
		if err != nil {
			return "", fmt.Errorf("config file not found: %s", c)
		}
		if fileInfo.IsDir() {
			return "", fmt.Errorf("TSQ_CFG points to a directory: %s", c)
		}
		return c, nil
	}

	var candidates []string = []string{
		os.Getenv("XDG_CONFIG_HOME"),
		os.Getenv("APPDATA"),
		os.Getenv("HOME"),
	}

	for _, c := range candidates {
		file := filepath.Join(c, "tsq.yaml")
		if fileInfo, err := os.Stat(file); err == nil {
			if !fileInfo.IsDir() {
				log.Debugf("using config file: %s", file)
				return file, nil
			}
		}
	}
	return "", fmt.Errorf("config file not found in standard locations")
}
