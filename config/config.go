package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port           int      `yaml:"port"`
		AllowedOrigins []string `yaml:"allowedOrigins"`
	} `yaml:"server"`

	LLM struct {
		Provider string `yaml:"provider"` // gemini or openai
	} `yaml:"llm"`

	Gemini struct {
		ApiKey string `yaml:"apiKey"`
		Model  string `yaml:"model"`
	} `yaml:"gemini"`

	Openai struct {
		GptApiKey string `yaml:"gptApiKey"`
		Model     string `yaml:"model"`
		BaseURL   string `yaml:"baseUrl"`
	} `yaml:"openai"`

	Database struct {
		URI string `yaml:"uri"`
	} `yaml:"database"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	RabbitMQ struct {
		URL   string `yaml:"url"`
		Queue string `yaml:"queue"`
	} `yaml:"rabbitmq"`

	Events struct {
		Backend string `yaml:"backend"` // redis, rabbitmq or none
		Stream  string `yaml:"stream"`
	} `yaml:"events"`

	Voice struct {
		WorkflowID string `yaml:"workflowId"`
		PublicKey  string `yaml:"publicKey"`
	} `yaml:"voice"`

	Interview struct {
		DraftTTL        time.Duration `yaml:"draftTtl"`
		GenerationLimit int           `yaml:"generationLimit"`
		GenerationEvery time.Duration `yaml:"generationWindow"`
		MaxUploadBytes  int64         `yaml:"maxUploadBytes"`
	} `yaml:"interview"`
}

// LoadConfig reads the YAML file at path, then applies .env and process
// environment overrides. A missing file is not an error when the environment
// supplies what is needed.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	c.Server.Port = getEnvAsInt("PORT", c.Server.Port)
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		c.Server.AllowedOrigins = strings.Split(origins, ",")
	}
	c.LLM.Provider = getEnv("LLM_PROVIDER", c.LLM.Provider)
	c.Gemini.ApiKey = getEnv("GEMINI_API_KEY", c.Gemini.ApiKey)
	c.Gemini.Model = getEnv("GEMINI_MODEL", c.Gemini.Model)
	c.Openai.GptApiKey = getEnv("OPENAI_API_KEY", c.Openai.GptApiKey)
	c.Openai.Model = getEnv("OPENAI_MODEL", c.Openai.Model)
	c.Database.URI = getEnv("MONGODB_URI", c.Database.URI)
	c.Redis.Addr = getEnv("REDIS_ADDR", c.Redis.Addr)
	c.Redis.Password = getEnv("REDIS_PASSWORD", c.Redis.Password)
	c.Redis.DB = getEnvAsInt("REDIS_DB", c.Redis.DB)
	c.RabbitMQ.URL = getEnv("RABBITMQ_URL", c.RabbitMQ.URL)
	c.Events.Backend = getEnv("EVENTS_BACKEND", c.Events.Backend)
	c.Voice.WorkflowID = getEnv("VAPI_WORKFLOW_ID", c.Voice.WorkflowID)
	c.Voice.PublicKey = getEnv("VAPI_WEB_TOKEN", c.Voice.PublicKey)
	c.Interview.DraftTTL = getEnvAsDuration("DRAFT_TTL", c.Interview.DraftTTL)
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 1313
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"http://localhost:3000"}
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = "gemini"
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.0-flash-001"
	}
	if c.Openai.Model == "" {
		c.Openai.Model = "gpt-4o-mini"
	}
	if c.RabbitMQ.Queue == "" {
		c.RabbitMQ.Queue = "prepwise.events"
	}
	if c.Events.Stream == "" {
		c.Events.Stream = "prepwise:events"
	}
	if c.Interview.DraftTTL == 0 {
		c.Interview.DraftTTL = 24 * time.Hour
	}
	if c.Interview.GenerationLimit == 0 {
		c.Interview.GenerationLimit = 10
	}
	if c.Interview.GenerationEvery == 0 {
		c.Interview.GenerationEvery = time.Hour
	}
	if c.Interview.MaxUploadBytes == 0 {
		c.Interview.MaxUploadBytes = 10 << 20
	}
}

// Validate checks the settings every code path needs. The voice workflow id is
// not checked here since only generation-mode calls require it.
func (c *Config) Validate() error {
	if c.Database.URI == "" {
		return errors.New("database uri is required (database.uri or MONGODB_URI)")
	}
	switch c.LLM.Provider {
	case "gemini":
		if c.Gemini.ApiKey == "" {
			return errors.New("gemini api key is required (gemini.apiKey or GEMINI_API_KEY)")
		}
	case "openai":
		if c.Openai.GptApiKey == "" {
			return errors.New("openai api key is required (openai.gptApiKey or OPENAI_API_KEY)")
		}
	default:
		return fmt.Errorf("unknown llm provider %q", c.LLM.Provider)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
