package config

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

type Application struct {
	Env     string `mapstructure:"env"      json:"env"`
	LogFile string `mapstructure:"log_file" json:"log_file"`
}

type Api struct {
	BaseUrl string `mapstructure:"base_url" json:"base_url"`
}

type Checkout struct {
	Freight string `mapstructure:"freight" json:"freight"`
}

type Storage struct {
	AuthFile    string `mapstructure:"auth_file"    json:"auth_file"`
	SessionFile string `mapstructure:"session_file" json:"session_file"`
}

type Otel struct {
	Host string `mapstructure:"host" json:"host"`
	Port int    `mapstructure:"port" json:"port"`
}

type Config struct {
	Application `mapstructure:"application" json:"application"`
	Api         `mapstructure:"api"         json:"api"`
	Checkout    `mapstructure:"checkout"    json:"checkout"`
	Storage     `mapstructure:"storage"     json:"storage"`
	Otel        `mapstructure:"otel"        json:"otel"`
}

var (
	once   sync.Once
	config *Config
)

func InitConfig(c context.Context, filename string) *Config {
	cfg := Config{}
	once.Do(func() {
		logger := zerolog.Ctx(c).
			With().
			Str("tag", "main InitConfig").
			Str("process", "init config").
			Str("filename", filename).
			Logger()

		viper.SetConfigName(filename)
		viper.AddConfigPath("./env")
		viper.SetConfigType("yaml")
		viper.AutomaticEnv()

		logger = logger.With().Str("process", "reading config").Logger()
		logger.Info().Msg("reading config")
		err := viper.ReadInConfig()
		if err != nil {
			err = fmt.Errorf("error when reading config with error=%w", err)
			logger.Fatal().Err(err).Msg(err.Error())
		}
		logger.Info().Msg("read config")

		logger = logger.With().Str("process", "unmarshaling config").Logger()
		logger.Info().Msg("unmarshaling config")
		err = viper.Unmarshal(&cfg)
		if err != nil {
			err = fmt.Errorf("error unmarshaling config with error=%w", err)
			logger.Fatal().Err(err).Msg(err.Error())
		}
		config = &cfg
		logger.Info().Msg("unmarshaled config")
	})
	return config
}
