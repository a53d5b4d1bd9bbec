// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/hostfetch/pkg/errors"
)

const (
	appDir   = "hostfetch"
	fileName = "config.yaml"
	logoDir  = "logos"
)

// DefaultPath returns $XDG_CONFIG_HOME/hostfetch/config.yaml, or an empty
// string when the config directory is unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, appDir, fileName)
}

// DefaultLogoDir returns the optional user logo directory next to the config file.
func DefaultLogoDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, appDir, logoDir)
}

// File is the YAML form of the configuration. Scalars use the string
// syntax of Setting so the file and the environment accept the same values.
type File struct {
	Settings map[string]string `yaml:",inline"`
	Order    []string          `yaml:"order,omitempty"`
	Theme    map[string]string `yaml:"theme,omitempty"`
}

// ParseFile decodes a YAML document.
func ParseFile(r io.Reader) (*File, error) {
	var raw map[string]yaml.Node
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if err == io.EOF {
			return &File{}, nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, "malformed config file", err)
	}

	f := &File{Settings: make(map[string]string)}
	for key, node := range raw {
		var err error
		switch key {
		case KeyOrder:
			err = node.Decode(&f.Order)
		case KeyTheme:
			err = node.Decode(&f.Theme)
		default:
			if node.Kind != yaml.ScalarNode {
				err = fmt.Errorf("expected a scalar value")
				break
			}
			f.Settings[key] = node.Value
		}
		if err != nil {
			return nil, errors.WrapWithContext(errors.ErrCodeInvalidConfig,
				fmt.Sprintf("invalid value for %s", key), err, map[string]any{"key": key})
		}
	}
	return f, nil
}

// Options converts the file into options. Keys are applied in sorted order.
func (f *File) Options() ([]Option, error) {
	keys := make([]string, 0, len(f.Settings))
	for k := range f.Settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	opts := make([]Option, 0, len(keys)+2)
	for _, k := range keys {
		opt, err := Setting(k, f.Settings[k])
		if err != nil {
			return nil, err
		}
		opts = append(opts, opt)
	}
	if f.Order != nil {
		kinds, err := ParseOrder(f.Order)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithOrder(kinds...))
	}
	if len(f.Theme) > 0 {
		opts = append(opts, WithTheme(f.Theme))
	}
	return opts, nil
}

// LoadFile reads the YAML file at path. A missing file yields no options
// unless explicit is set, in which case it is an error.
func LoadFile(path string, explicit bool) ([]Option, error) {
	if path == "" {
		return nil, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil, nil
		}
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidConfig,
			"config file is not readable", err, map[string]any{"path": path})
	}
	f, err := ParseFile(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	return f.Options()
}

// LoadEnvFile reads HOSTFETCH_* assignments from a dotenv file. Other
// variables are ignored and the process environment is not modified.
func LoadEnvFile(path string) ([]Option, error) {
	if path == "" {
		return nil, nil
	}
	vars, err := godotenv.Read(path)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidConfig,
			"env file is not readable", err, map[string]any{"path": path})
	}
	return FromEnv(vars)
}

// FromEnv converts HOSTFETCH_* variables into options, in Keys order.
func FromEnv(vars map[string]string) ([]Option, error) {
	var opts []Option
	for _, k := range Keys {
		v, ok := vars[EnvName(k)]
		if !ok {
			continue
		}
		opt, err := Setting(k, v)
		if err != nil {
			return nil, err
		}
		opts = append(opts, opt)
	}
	return opts, nil
}
