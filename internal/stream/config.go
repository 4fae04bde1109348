package stream

import (
	"os"

	"go.yaml.in/yaml/v3"
)

// Settings configure the stream worker. Read from configs/stream.yaml
// when present; anything unset falls back to environment variables and
// built-in defaults, so a bare container still starts.
type Settings struct {
	Provider string `yaml:"provider"`
	Redis    struct {
		Addr          string `yaml:"addr"`
		Password      string `yaml:"password"`
		RequestStream string `yaml:"request_stream"`
		ResultStream  string `yaml:"result_stream"`
		Group         string `yaml:"group"`
		Consumer      string `yaml:"consumer"`
	} `yaml:"redis"`
}

func LoadSettings() (*Settings, error) {
	path := os.Getenv("STREAM_CONFIG_PATH")
	if path == "" {
		path = "configs/stream.yaml"
	}

	var settings Settings

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		// No file: defaults and env only.
	} else if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, err
	}

	applyDefaults(&settings)

	return &settings, nil
}

func applyDefaults(settings *Settings) {
	if settings.Provider == "" {
		settings.Provider = "redis"
	}
	if settings.Redis.Addr == "" {
		settings.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	}
	if settings.Redis.Password == "" {
		settings.Redis.Password = os.Getenv("REDIS_PASSWORD")
	}
	if settings.Redis.RequestStream == "" {
		settings.Redis.RequestStream = "guard-requests"
	}
	if settings.Redis.ResultStream == "" {
		settings.Redis.ResultStream = "guard-verdicts"
	}
	if settings.Redis.Group == "" {
		settings.Redis.Group = "guard-group"
	}
	if settings.Redis.Consumer == "" {
		settings.Redis.Consumer = getEnv("HOSTNAME", "guard-agent")
	}
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}

	return value
}
