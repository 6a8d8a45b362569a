package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"komari/internal/infrastructure/broker"
	"komari/internal/infrastructure/database"
	"komari/internal/infrastructure/fetcher"
	"komari/internal/infrastructure/grpcclient"
	"komari/internal/infrastructure/grpcserver"
	"komari/internal/infrastructure/minio"
	"komari/internal/infrastructure/wallpaper"
	"komari/pkg/logger"
)

type DefaultConfig struct {
	Address   string `yaml:"address"`
	BodyLimit string `yaml:"body_limit"`
	RateLimit int    `yaml:"rate_limit"`
}

// Config represents the configs used by services on system.
type Config struct {
	Environment     string                 `yaml:"environment"`
	Default         DefaultConfig          `yaml:"default"`
	DBConfig        database.Config        `yaml:"db_config"`
	MinIOClient     minio.ClientConfig     `yaml:"minio_client"`
	MinIOUploader   minio.UploaderConfig   `yaml:"minio_uploader"`
	BrokerConfig    broker.Config          `yaml:"redis_broker_config"`
	PublisherConfig broker.PublisherConfig `yaml:"publisher_config"`
	Fetcher         fetcher.Config         `yaml:"fetcher"`
	Wallpaper       wallpaper.Config       `yaml:"wallpaper"`
	GRPCServer      grpcserver.Config      `yaml:"grpc_server"`
	GRPCClient      grpcclient.Config      `yaml:"grpc_client"`
	Logger          logger.Config          `yaml:"logger"`
	AdminPubKeys    []string               `yaml:"-"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, Error{
			reason: err.Error(),
		}
	}
	defer file.Close()

	config := &Config{}

	decoder := yaml.NewDecoder(file)

	if err := decoder.Decode(config); err != nil {
		return nil, Error{
			reason: err.Error(),
		}
	}

	if config.Environment != "prod" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, Error{
				reason: err.Error(),
			}
		}
	}

	config.MinIOClient.AccessKey = os.Getenv("MINIO_ROOT_USER")
	config.MinIOClient.SecretKey = os.Getenv("MINIO_ROOT_PASSWORD")
	config.DBConfig.URI = os.Getenv("DATABASE_URI")
	config.BrokerConfig.URI = os.Getenv("BROKER_URI")
	config.AdminPubKeys = splitList(os.Getenv("ADMIN_PUBKEYS"))

	if err = config.basicCheck(); err != nil {
		return nil, Error{
			reason: err.Error(),
		}
	}

	return config, nil
}

// basicCheck validates the basic stuff in config.
func (c *Config) basicCheck() error {
	switch {
	case c.DBConfig.URI == "":
		return errors.New("DATABASE_URI is not set")
	case c.DBConfig.DBName == "":
		return errors.New("db_config.db_name is empty")
	case c.BrokerConfig.URI == "":
		return errors.New("BROKER_URI is not set")
	case c.BrokerConfig.StreamName == "" || c.BrokerConfig.GroupName == "":
		return errors.New("redis_broker_config needs stream_name and group_name")
	case c.MinIOClient.Endpoint == "":
		return errors.New("minio_client.endpoint is empty")
	case c.MinIOUploader.Bucket == "":
		return errors.New("minio_uploader.bucket is empty")
	case c.Default.Address == "":
		return errors.New("default.address is empty")
	case c.Wallpaper.TargetPath == "":
		return errors.New("wallpaper.target_path is empty")
	}

	return nil
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}

	return out
}
