package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Config stores service settings.
type Config struct {
	Port      int
	DB        DB
	Kafka     Kafka
	Dispatch  Dispatch
	RateLimit RateLimit
	Pprof     Pprof
}

// DB stores PostgreSQL connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN builds a pgx connection string.
func (d DB) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		d.User, d.Pass, d.Host, d.Port, d.Name)
}

// Kafka stores broker settings. Empty brokers disable Kafka entirely.
type Kafka struct {
	Brokers  []string
	Topic    string
	GroupID  string
	OutTopic string
}

// Dispatch stores order routing settings.
type Dispatch struct {
	EscalationTimeout time.Duration
	MainOperatorID    int64
}

// RateLimit stores message tunnel rate limit settings.
type RateLimit struct {
	Enabled    bool
	Rate       float64
	Burst      int
	TTL        time.Duration
	MaxBuckets int
}

// Pprof stores debug server settings. Empty user disables it.
type Pprof struct {
	Port int
	User string
	Pass string
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	port := DefaultPort()
	if v := os.Getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %w", err)
		}
		port = p
	}

	db := DefaultDB()
	if v := os.Getenv("POSTGRES_HOST"); v != "" {
		db.Host = v
	}
	if v := os.Getenv("POSTGRES_PORT"); v != "" {
		if _, err := strconv.Atoi(v); err != nil {
			return nil, fmt.Errorf("invalid POSTGRES_PORT: %w", err)
		}
		db.Port = v
	}
	if v := os.Getenv("POSTGRES_USER"); v != "" {
		db.User = v
	}
	if v := os.Getenv("POSTGRES_PASSWORD"); v != "" {
		db.Pass = v
	}
	if v := os.Getenv("POSTGRES_DB"); v != "" {
		db.Name = v
	}

	var kafka Kafka
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		for _, b := range strings.Split(v, ",") {
			if b = strings.TrimSpace(b); b != "" {
				kafka.Brokers = append(kafka.Brokers, b)
			}
		}
	}
	kafka.Topic = os.Getenv("KAFKA_INTAKE_TOPIC")
	kafka.GroupID = os.Getenv("KAFKA_GROUP_ID")
	kafka.OutTopic = os.Getenv("KAFKA_DELIVERY_TOPIC")

	dispatch := DefaultDispatch()
	if v := os.Getenv("DISPATCH_ESCALATION_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid DISPATCH_ESCALATION_TIMEOUT: %w", err)
		}
		dispatch.EscalationTimeout = d
	}
	if v := os.Getenv("MAIN_OPERATOR_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid MAIN_OPERATOR_ID: %w", err)
		}
		dispatch.MainOperatorID = id
	}

	rl := DefaultRateLimit()
	if v := os.Getenv("RATE_LIMIT_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT_ENABLED: %w", err)
		}
		rl.Enabled = b
	}
	if v := os.Getenv("RATE_LIMIT_RATE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT_RATE: %w", err)
		}
		rl.Rate = f
	}
	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT_BURST: %w", err)
		}
		rl.Burst = n
	}
	if v := os.Getenv("RATE_LIMIT_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT_TTL: %w", err)
		}
		rl.TTL = d
	}

	var pprof Pprof
	if v := os.Getenv("PPROF_PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PPROF_PORT: %w", err)
		}
		pprof.Port = p
	}
	pprof.User = os.Getenv("PPROF_USER")
	pprof.Pass = os.Getenv("PPROF_PASSWORD")

	pflag.IntVarP(&port, "port", "p", port, "port to listen on")
	pflag.Int64Var(&dispatch.MainOperatorID, "main-operator", dispatch.MainOperatorID, "main operator id")
	pflag.DurationVar(&dispatch.EscalationTimeout, "escalation-timeout", dispatch.EscalationTimeout, "time before an unanswered order moves to the next operator")
	if err := pflag.CommandLine.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("invalid port: %d", port)
	}
	if dispatch.EscalationTimeout <= 0 {
		return nil, fmt.Errorf("invalid escalation timeout: %s", dispatch.EscalationTimeout)
	}
	if dispatch.MainOperatorID <= 0 {
		return nil, fmt.Errorf("invalid main operator id: %d", dispatch.MainOperatorID)
	}

	return &Config{
		Port:      port,
		DB:        db,
		Kafka:     kafka,
		Dispatch:  dispatch,
		RateLimit: rl,
		Pprof:     pprof,
	}, nil
}
