package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	// Canal do LISTEN/NOTIFY que os triggers do banco alimentam.
	ListenChannel string `envconfig:"LISTEN_CHANNEL" default:"crm_changes"`

	RabbitUser string `envconfig:"RABBITMQ_USER" default:"guest"`
	RabbitPass string `envconfig:"RABBITMQ_PASS" default:"guest"`
	RabbitHost string `envconfig:"RABBITMQ_HOST" default:"localhost"`
	RabbitPort string `envconfig:"RABBITMQ_PORT" default:"5672"`

	MailHost    string `envconfig:"MAIL_HOST"`
	MailPort    int    `envconfig:"MAIL_PORT" default:"587"`
	MailUser    string `envconfig:"MAIL_USER"`
	MailPass    string `envconfig:"MAIL_PASS"`
	MailFrom    string `envconfig:"MAIL_FROM"`
	MailAlertTo string `envconfig:"MAIL_ALERT_TO"`

	Timezone    string   `envconfig:"TIMEZONE" default:"America/Sao_Paulo"`
	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:5173"`
}

// Load lê .env (se existir) e depois o ambiente.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Arquivo .env não encontrado, usando variáveis do sistema")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("configuração inválida: %w", err)
	}
	return &cfg, nil
}

func (c *Config) RabbitURL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/", c.RabbitUser, c.RabbitPass, c.RabbitHost, c.RabbitPort)
}

// Location resolve o fuso configurado; inválido cai para UTC com aviso.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("⚠️ Fuso %q inválido, usando UTC", c.Timezone)
		return time.UTC
	}
	return loc
}
