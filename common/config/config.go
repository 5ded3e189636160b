package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/sunthewhat/easy-cert-form/common"
	"github.com/sunthewhat/easy-cert-form/common/util"
	"github.com/sunthewhat/easy-cert-form/type/shared"
	"gopkg.in/yaml.v3"
)

const defaultPath = "config.yml"

// Path returns the config file location, honouring CONFIG_PATH.
func Path() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return defaultPath
}

func Load(path string) (*shared.Config, error) {
	config := new(shared.Config)

	yml, readErr := os.ReadFile(path)
	if readErr != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, readErr)
	}

	if unmarshalErr := yaml.Unmarshal(yml, config); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", path, unmarshalErr)
	}

	if validateErr := util.ValidateStruct(config); validateErr != nil {
		if errors := util.GetValidationErrors(validateErr); len(errors) > 0 {
			return nil, fmt.Errorf("invalid %s: %s", path, errors[0])
		}
		return nil, fmt.Errorf("invalid %s: %w", path, validateErr)
	}

	return config, nil
}

func LoadConfig() {
	path := Path()
	config, err := Load(path)
	if err != nil {
		slog.Error("Failed to load config", "path", path, "error", err)
		os.Exit(1)
	}

	common.Config = config
}
