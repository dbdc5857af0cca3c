package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	DBConnectionString string

	EmailAddress  string
	EmailPassword string
	SMTPHost      string
	SMTPPort      string
	TemplatesDir  string

	// AMQPURL empty means expense creation evaluates limits in-process.
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	EvaluationTimeout time.Duration
}

func Load() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, continuing with system environment variables")
	}

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		DBConnectionString: os.Getenv("DB_CONNECTION_STRING"),
		EmailAddress:       os.Getenv("EMAIL_ADDRESS"),
		EmailPassword:      os.Getenv("EMAIL_PASSWORD"),
		SMTPHost:           getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:           getEnv("SMTP_PORT", "587"),
		TemplatesDir:       getEnv("TEMPLATES_DIR", "templates"),
		AMQPURL:            os.Getenv("AMQP_URL"),
		AMQPExchange:       getEnv("AMQP_EXCHANGE", "expense_tracker"),
		AMQPQueue:          getEnv("AMQP_QUEUE", "limit_evaluations"),
		EvaluationTimeout:  getEnvDuration("EVALUATION_TIMEOUT", 10*time.Second),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.DBConnectionString == "" {
		return fmt.Errorf("missing DB_CONNECTION_STRING in environment variables")
	}
	if c.EmailAddress == "" {
		return fmt.Errorf("missing EMAIL_ADDRESS in environment variables")
	}
	if c.EmailPassword == "" {
		return fmt.Errorf("missing EMAIL_PASSWORD in environment variables")
	}

	if port, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("invalid port '%s': must be a number", c.Port)
	} else if port < 1 || port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 1 and 65535", port)
	}

	if c.AMQPURL != "" {
		parsedURL, err := url.Parse(c.AMQPURL)
		if err != nil {
			return fmt.Errorf("invalid AMQP URL '%s': %v", c.AMQPURL, err)
		}
		if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			return fmt.Errorf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme)
		}
		if c.AMQPExchange == "" {
			return fmt.Errorf("AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			return fmt.Errorf("AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.EvaluationTimeout < time.Second {
		return fmt.Errorf("invalid evaluation timeout %v: must be at least 1 second", c.EvaluationTimeout)
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
