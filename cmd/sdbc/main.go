package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ValerySidorin/sdbc/client"
	"github.com/ValerySidorin/sdbc/config"
	"github.com/ValerySidorin/sdbc/internal/observability"
	"github.com/bytedance/sonic"
	"gopkg.in/yaml.v3"
)

var (
	Commit string
)

func main() {
	if len(os.Args) < 2 || len(os.Args) > 3 {
		log.Fatal("usage: sdbc <query> [config path]")
	}
	query := os.Args[1]
	confPath := ""
	if len(os.Args) == 3 {
		confPath = os.Args[2]
	}

	var conf config.Config
	if err := loadConfig(confPath, &conf); err != nil {
		log.Fatal(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	logLevel := parseLogLevel(conf.Log.Level)
	var logger *slog.Logger
	switch conf.Log.Type {
	case "json":
		logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		}))
	default:
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		}))
	}

	logger.Debug("sdbc", "commit", Commit)

	shutdown, err := observability.Init(ctx, conf.Observability, logger)
	if err != nil {
		logger.Error(fmt.Errorf("init observability: %w", err).Error())
		os.Exit(1)
	}
	defer shutdown(context.Background())

	conn, err := client.Connect(conf.Endpoint,
		client.WithLogger(logger),
		client.WithTimeout(conf.Timeout),
	)
	if err != nil {
		logger.Error(fmt.Errorf("connect: %w", err).Error())
		os.Exit(1)
	}
	defer conn.Close()

	if conf.Auth.Token != "" {
		conn.SetToken(conf.Auth.Token)
	} else if conf.Auth.Username != "" {
		if _, err := conn.SignIn(ctx, client.Credentials{
			Username:  conf.Auth.Username,
			Password:  conf.Auth.Password,
			Access:    conf.Auth.Access,
			Namespace: conf.Namespace,
			Database:  conf.Database,
		}); err != nil {
			logger.Error(fmt.Errorf("signin: %w", err).Error())
			os.Exit(1)
		}
	}

	if conf.Namespace != "" && conf.Database != "" {
		if err := conn.Use(ctx, conf.Namespace, conf.Database); err != nil {
			logger.Error(fmt.Errorf("use: %w", err).Error())
			os.Exit(1)
		}
	}

	result, err := conn.Query(ctx, query, nil)
	if err != nil {
		logger.Error(fmt.Errorf("query: %w", err).Error())
		os.Exit(1)
	}

	out, err := sonic.MarshalString(result)
	if err != nil {
		logger.Error(fmt.Errorf("marshal result: %w", err).Error())
		os.Exit(1)
	}
	fmt.Println(out)
}

func parseLogLevel(name string) slog.Level {
	switch strings.ToUpper(name) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func loadConfig(filePath string, cfg *config.Config) error {
	paths := []string{}

	if filePath == "" {
		paths = append(paths, "./config.yaml", "conf/config.yaml", "config/config.yaml")
	} else {
		paths = append(paths, filePath)
	}

	for _, p := range paths {
		f, err := os.Open(p)
		if err == nil {
			defer f.Close()
			data, err := io.ReadAll(f)
			if err != nil {
				return fmt.Errorf("read config: %w", err)
			}

			if err := yaml.Unmarshal(data, cfg); err != nil {
				return fmt.Errorf("unmarshal config: %w", err)
			}

			cfg.SetDefaults()
			return cfg.Validate()
		}
	}

	// No config found anywhere: run against the defaults.
	if filePath == "" {
		cfg.SetDefaults()
		return cfg.Validate()
	}

	return fmt.Errorf("failed to find config in: %v", paths)
}
