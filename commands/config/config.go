package config // import "code.cloudfoundry.org/quillfs/commands/config"

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"
)

type Config struct {
	Hostname         string   `yaml:"hostname"`
	ResolvConfTarget string   `yaml:"resolv_conf_target"`
	PruneBinaries    []string `yaml:"prune_binaries"`
	MetronEndpoint   string   `yaml:"metron_endpoint"`
	LogLevel         string   `yaml:"log_level"`
}

func Load(configPath string) (Config, error) {
	configContent, err := os.ReadFile(configPath)
	if err != nil {
		return Config{}, fmt.Errorf("invalid config path: %s", err)
	}

	var config Config
	if err := yaml.Unmarshal(configContent, &config); err != nil {
		return Config{}, fmt.Errorf("invalid config file: %s", err)
	}

	return config, nil
}
