package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"splatviewer/internal/utils"
)

// DefaultPath is where the configuration file is looked up when no explicit
// path is given on the command line.
const DefaultPath = "data/configuration.toml"

// dataDirPlaceholder may appear in configured paths and expands to the
// base_paths.data_directory value.
const dataDirPlaceholder = "{DATA_DIR}"

type BasePaths struct {
	DataDirectory string `toml:"data_directory"`
}

type Logging struct {
	ConsoleOutputLevel     string `toml:"console_output_level"`
	LogFileOutputLevel     string `toml:"log_file_output_level"`
	LogFileOutputDirectory string `toml:"log_file_output_directory"`

	consoleLevel utils.LogLevel
	fileLevel    utils.LogLevel
}

// ConsoleLevel returns the parsed console level filter.
// Valid by construction: resolve validates it at load time.
func (l *Logging) ConsoleLevel() utils.LogLevel { return l.consoleLevel }

// FileLevel returns the parsed log-file level filter.
func (l *Logging) FileLevel() utils.LogLevel { return l.fileLevel }

type Screenshot struct {
	ScreenshotDirectoryPath string `toml:"screenshot_directory_path"`
}

type Render struct {
	SplatScalingFactor     float32 `toml:"splat_scaling_factor"`
	OrderedDecode          bool    `toml:"ordered_decode"`
	ConventionalProjection bool    `toml:"conventional_projection"`
}

// Config is the whole TOML configuration.
type Config struct {
	// FilePath is where this configuration was loaded from; empty for the
	// built-in defaults.
	FilePath string `toml:"-"`

	BasePaths  BasePaths  `toml:"base_paths"`
	Logging    Logging    `toml:"logging"`
	Screenshot Screenshot `toml:"screenshot"`
	Render     Render     `toml:"render"`
}

// Default returns the configuration used when no file is present. It is also
// the base that loaded files are unmarshalled over, so omitted keys keep
// these values.
func Default() Config {
	return Config{
		BasePaths: BasePaths{
			DataDirectory: "./data",
		},
		Logging: Logging{
			ConsoleOutputLevel:     "info",
			LogFileOutputLevel:     "debug",
			LogFileOutputDirectory: "{DATA_DIR}/logs",
		},
		Screenshot: Screenshot{
			ScreenshotDirectoryPath: "{DATA_DIR}/screenshots",
		},
		Render: Render{
			SplatScalingFactor: 2.0,
			OrderedDecode:      true,
		},
	}
}

// Load reads and validates a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %s: %w", path, err)
	}

	c := Default()
	if err := toml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %s: %w", path, err)
	}
	c.FilePath = path

	if err := c.resolve(); err != nil {
		return nil, fmt.Errorf("invalid configuration file %s: %w", path, err)
	}
	return &c, nil
}

// LoadDefault loads the configuration at DefaultPath, falling back to the
// built-in defaults when the file does not exist.
func LoadDefault() (*Config, error) {
	if _, err := os.Stat(DefaultPath); os.IsNotExist(err) {
		utils.Info("No configuration file at %s, using built-in defaults", DefaultPath)
		c := Default()
		if err := c.resolve(); err != nil {
			return nil, err
		}
		return &c, nil
	}
	return Load(DefaultPath)
}

// resolve validates level filters and expands the {DATA_DIR} placeholder in
// path values.
func (c *Config) resolve() error {
	consoleLevel, err := utils.ParseLevel(c.Logging.ConsoleOutputLevel)
	if err != nil {
		return fmt.Errorf("invalid logging.console_output_level: %w", err)
	}
	fileLevel, err := utils.ParseLevel(c.Logging.LogFileOutputLevel)
	if err != nil {
		return fmt.Errorf("invalid logging.log_file_output_level: %w", err)
	}
	c.Logging.consoleLevel = consoleLevel
	c.Logging.fileLevel = fileLevel

	if c.Render.SplatScalingFactor <= 0 {
		return fmt.Errorf("render.splat_scaling_factor must be positive, got %v", c.Render.SplatScalingFactor)
	}

	c.Logging.LogFileOutputDirectory = c.expandPath(c.Logging.LogFileOutputDirectory)
	c.Screenshot.ScreenshotDirectoryPath = c.expandPath(c.Screenshot.ScreenshotDirectoryPath)
	return nil
}

func (c *Config) expandPath(path string) string {
	return strings.ReplaceAll(path, dataDirPlaceholder, c.BasePaths.DataDirectory)
}
