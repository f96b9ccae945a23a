package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "QUOTER"

const (
	EncodingUTF8     = "utf-8"
	EncodingShiftJIS = "shift_jis"
)

type Config struct {
	DBPath           string `envconfig:"DB_PATH" default:"local_inventory.db"`
	ProductsFile     string `envconfig:"PRODUCTS_FILE" default:"products.csv"`
	RequirementsFile string `envconfig:"REQUIREMENTS_FILE" default:"requirements.csv"`
	RulesFile        string `envconfig:"RULES_FILE" default:"category_rules.csv"`
	CSVEncoding      string `envconfig:"CSV_ENCODING" default:"utf-8"`
	LogLevel         string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat        string `envconfig:"LOG_FORMAT" default:"console"`
}

// Load reads the optional dotenv file and then the QUOTER_* environment.
// A missing dotenv file is not an error.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	c.CSVEncoding = strings.ToLower(strings.TrimSpace(c.CSVEncoding))
	switch c.CSVEncoding {
	case EncodingUTF8, "utf8":
		c.CSVEncoding = EncodingUTF8
	case EncodingShiftJIS, "sjis", "shift-jis":
		c.CSVEncoding = EncodingShiftJIS
	default:
		return fmt.Errorf("unsupported %s_CSV_ENCODING %q", EnvPrefix, c.CSVEncoding)
	}
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("%s_DB_PATH must not be empty", EnvPrefix)
	}
	return nil
}
