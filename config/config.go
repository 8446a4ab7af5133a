package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Settings struct {
	Listen   string `yaml:"listen"`
	DataDir  string `yaml:"data_dir"`
	SwapAxes bool   `yaml:"swap_axes"`
	Encoding string `yaml:"encoding"`

	Log struct {
		File       string `yaml:"file"`
		Level      string `yaml:"level"`
		MaxSizeMB  int    `yaml:"max_size_mb"`
		MaxBackups int    `yaml:"max_backups"`
	} `yaml:"log"`
}

func Default() *Settings {
	s := &Settings{
		Listen:   ":8000",
		DataDir:  "data",
		SwapAxes: true,
		Encoding: "Windows 1251",
	}
	s.Log.Level = "info"
	s.Log.MaxSizeMB = 32
	s.Log.MaxBackups = 4
	return s
}

// LoadSettings reads yaml settings on top of defaults. An empty path
// means "tank_havok_browser.yaml if present, else defaults".
func LoadSettings(path string) (*Settings, error) {
	s := Default()

	explicit := path != ""
	if !explicit {
		path = "tank_havok_browser.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return s, nil
		}
		return nil, errors.Wrapf(err, "Failed to read settings %q", path)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, errors.Wrapf(err, "Failed to parse settings %q", path)
	}
	return s, nil
}

var swapAxes = true

func SetSwapAxes(v bool) { swapAxes = v }
func GetSwapAxes() bool  { return swapAxes }
