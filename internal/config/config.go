package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"github.com/subsynth/subsynth/internal/types"
)

type Configuration struct {
	Generation GenerationConfig `validate:"required"`
	Output     OutputConfig     `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
}

// GenerationConfig bounds a run: the calendar horizon, the customer volume,
// and the PRNG seed. The seed is set exactly once per run; everything the
// pipeline emits is a pure function of this struct.
type GenerationConfig struct {
	StartDate string `mapstructure:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `mapstructure:"end_date" validate:"required,datetime=2006-01-02"`
	Customers int    `mapstructure:"customers" validate:"required,gt=0"`
	Seed      int64  `mapstructure:"seed"`
}

type OutputConfig struct {
	Dir string `mapstructure:"dir" validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

func NewConfig() (*Configuration, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/subsynth")

	v.SetEnvPrefix("SUBSYNTH")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("generation.start_date", "2023-01-01")
	v.SetDefault("generation.end_date", "2024-06-30")
	v.SetDefault("generation.customers", 8000)
	v.SetDefault("generation.seed", 42)
	v.SetDefault("output.dir", "data/raw")
	v.SetDefault("logging.level", "info")
}

func (c Configuration) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}
	_, err := c.Generation.Horizon()
	return err
}

// Horizon parses the configured date bounds into the typed horizon used by
// every stage.
func (g GenerationConfig) Horizon() (types.Horizon, error) {
	start, err := time.ParseInLocation(types.DateFormat, g.StartDate, time.UTC)
	if err != nil {
		return types.Horizon{}, fmt.Errorf("invalid generation.start_date: %w", err)
	}
	end, err := time.ParseInLocation(types.DateFormat, g.EndDate, time.UTC)
	if err != nil {
		return types.Horizon{}, fmt.Errorf("invalid generation.end_date: %w", err)
	}
	h := types.Horizon{Start: start, End: end}
	if err := h.Validate(); err != nil {
		return types.Horizon{}, err
	}
	return h, nil
}

// GetDefaultConfig returns the stock configuration used by tests and scripts:
// an 18 month horizon, 8000 customers, seed 42.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Generation: GenerationConfig{
			StartDate: "2023-01-01",
			EndDate:   "2024-06-30",
			Customers: 8000,
			Seed:      42,
		},
		Output:  OutputConfig{Dir: "data/raw"},
		Logging: LoggingConfig{Level: types.LogLevelDebug},
	}
}
