package cli

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config is the optional TOML sidecar controlling rendering preferences
// and branding. Every field may be omitted; the engine applies its own
// defaults.
type Config struct {
	PageSize               string `toml:"page_size"`
	MarginSize             string `toml:"margin_size"`
	Language               string `toml:"language"`
	FontsDir               string `toml:"fonts_dir"`
	DataClassification     string `toml:"data_classification"`
	ConfidentialityWarning string `toml:"confidentiality_warning"`
	LogoFile               string `toml:"logo_file"`
}

func loadConfig(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	return cfg, nil
}
