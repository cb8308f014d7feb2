package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/RMahshie/roommodes/pkg/models"
)

// DefaultConfigName is the config file looked up in the working directory
// when no explicit path is given
const DefaultConfigName = "roommodes"

// Config holds all configuration for the application
type Config struct {
	Room     models.RoomGeometry
	Speaker  models.SpeakerPosition
	Ambient  models.AmbientConditions
	Analysis AnalysisConfig
	Output   OutputConfig
	Log      LogConfig
	Server   ServerConfig
	Database DatabaseConfig
	AWS      AWSConfig
}

// AnalysisConfig holds the analysis bounds and optional tables
type AnalysisConfig struct {
	Harmonics        int
	CutoffHz         float64
	IncludeRoomModes bool
	MaxOrder         int
}

// OutputConfig controls where and how the report is written
type OutputConfig struct {
	Path     string
	Format   string
	PlotPath string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
	File  string
	Zap   bool
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           string
	Env            string
	AllowedOrigins []string
}

// DatabaseConfig holds database configuration. An empty URL keeps reports
// in memory.
type DatabaseConfig struct {
	URL string
}

// AWSConfig holds AWS/S3 configuration. An empty bucket disables report
// archiving.
type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	S3Bucket        string
	S3Endpoint      string
}

// SetDefaults registers every key with its default value
func SetDefaults(v *viper.Viper) {
	v.SetDefault("dimensions.length", 0.0)
	v.SetDefault("dimensions.width", 0.0)
	v.SetDefault("dimensions.height", 0.0)
	v.SetDefault("xpos", 0.0)
	v.SetDefault("ypos", 0.0)
	v.SetDefault("zpos", 0.0)
	v.SetDefault("temp", 20.0)
	v.SetDefault("rh", 0.5)
	v.SetDefault("n", 4)
	v.SetDefault("lowpass", 250.0)
	v.SetDefault("all_modes", false)
	v.SetDefault("max_order", 0)

	v.SetDefault("output", "")
	v.SetDefault("format", "text")
	v.SetDefault("plot", "")

	v.SetDefault("loglevel", "info")
	v.SetDefault("logfile", "")
	v.SetDefault("zap", false)

	v.SetDefault("port", "8080")
	v.SetDefault("environment", "dev")
	v.SetDefault("allowed_origins", "http://localhost:5173,http://localhost:3000")
	v.SetDefault("database_url", "")
	v.SetDefault("aws_region", "us-east-1")
	v.SetDefault("aws_access_key_id", "")
	v.SetDefault("aws_secret_access_key", "")
	v.SetDefault("s3_bucket", "")
	v.SetDefault("s3_endpoint", "")
}

// Load reads configuration from defaults, an optional TOML file, the
// environment and any flags already bound to v, in increasing precedence.
// An explicit configFile must exist; the default roommodes.toml in the
// working directory is optional.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	SetDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	// ROOMMODES_DIMENSIONS_LENGTH, ROOMMODES_RH, ...
	v.SetEnvPrefix("ROOMMODES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Service settings keep their conventional unprefixed names
	v.BindEnv("port", "PORT")
	v.BindEnv("environment", "ENVIRONMENT")
	v.BindEnv("allowed_origins", "ALLOWED_ORIGINS")
	v.BindEnv("database_url", "DATABASE_URL")
	v.BindEnv("aws_region", "AWS_REGION")
	v.BindEnv("aws_access_key_id", "AWS_ACCESS_KEY_ID")
	v.BindEnv("aws_secret_access_key", "AWS_SECRET_ACCESS_KEY")
	v.BindEnv("s3_bucket", "S3_BUCKET")
	v.BindEnv("s3_endpoint", "S3_ENDPOINT")

	var config Config
	config.Room.Length = v.GetFloat64("dimensions.length")
	config.Room.Width = v.GetFloat64("dimensions.width")
	config.Room.Height = v.GetFloat64("dimensions.height")
	config.Speaker.X = v.GetFloat64("xpos")
	config.Speaker.Y = v.GetFloat64("ypos")
	config.Speaker.Z = v.GetFloat64("zpos")
	config.Ambient.TemperatureC = v.GetFloat64("temp")
	config.Ambient.RelativeHumidity = v.GetFloat64("rh")
	config.Analysis.Harmonics = v.GetInt("n")
	config.Analysis.CutoffHz = v.GetFloat64("lowpass")
	config.Analysis.IncludeRoomModes = v.GetBool("all_modes")
	config.Analysis.MaxOrder = v.GetInt("max_order")
	config.Output.Path = v.GetString("output")
	config.Output.Format = v.GetString("format")
	config.Output.PlotPath = v.GetString("plot")
	config.Log.Level = v.GetString("loglevel")
	config.Log.File = v.GetString("logfile")
	config.Log.Zap = v.GetBool("zap")
	config.Server.Port = v.GetString("port")
	config.Server.Env = v.GetString("environment")
	config.Server.AllowedOrigins = splitList(v.GetString("allowed_origins"))
	config.Database.URL = v.GetString("database_url")
	config.AWS.Region = v.GetString("aws_region")
	config.AWS.AccessKeyID = v.GetString("aws_access_key_id")
	config.AWS.SecretAccessKey = v.GetString("aws_secret_access_key")
	config.AWS.S3Bucket = v.GetString("s3_bucket")
	config.AWS.S3Endpoint = v.GetString("s3_endpoint")

	log.Debug().
		Str("config_file", v.ConfigFileUsed()).
		Strs("allowed_origins", config.Server.AllowedOrigins).
		Msg("Configuration loaded")

	return &config, nil
}

// Input converts the loaded configuration into an analysis input
func (c *Config) Input() models.AnalysisInput {
	return models.AnalysisInput{
		Room:    c.Room,
		Speaker: c.Speaker,
		Ambient: c.Ambient,
		Parameters: models.AnalysisParameters{
			Harmonics: c.Analysis.Harmonics,
			CutoffHz:  c.Analysis.CutoffHz,
		},
		IncludeRoomModes: c.Analysis.IncludeRoomModes,
		MaxOrder:         c.Analysis.MaxOrder,
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
