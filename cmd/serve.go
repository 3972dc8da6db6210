package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"quill/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Start the Quill API server.

The AI endpoints are always mounted and fall back to local heuristics when no
API key is configured. Posts, auth and admin routes need MongoDB.`,
	RunE: runServe,
}

// flagBindings 命令行参数与配置键的对应关系
var flagBindings = map[string]string{
	"host":              "server.host",
	"port":              "server.port",
	"mode":              "server.mode",
	"cors-origin":       "server.cors_origins",
	"ai-provider":       "ai.provider",
	"ai-model":          "ai.model",
	"ai-api-key":        "ai.api_key",
	"ai-max-concurrent": "ai.max_concurrent",
	"ai-rate-limit":     "ai.rate_limit",
	"mongo-uri":         "mongo.uri",
	"mongo-database":    "mongo.database",
	"redis-addr":        "redis.addr",
	"metrics":           "metrics.enabled",
	"log-level":         "log.level",
	"log-format":        "log.format",
}

func init() {
	rootCmd.AddCommand(serveCmd)

	flags := serveCmd.Flags()

	flags.StringP("host", "H", "0.0.0.0", "server host")
	flags.IntP("port", "p", 8080, "server port")
	flags.String("mode", "release", "server mode (debug/release/test)")
	flags.StringSlice("cors-origin", nil, "allowed CORS origins, empty allows any")

	flags.String("ai-provider", "gemini", "AI provider (gemini/openai/azure/ark)")
	flags.String("ai-model", "", "AI model name, empty uses the provider default")
	flags.String("ai-api-key", "", "AI API key (recommend using env: QUILL_AI_API_KEY or GEMINI_API_KEY)")
	flags.Int64("ai-max-concurrent", 8, "max in-flight remote AI calls, 0 disables the limit")
	flags.Float64("ai-rate-limit", 0, "remote AI calls per second, 0 disables the limit")

	flags.String("mongo-uri", "mongodb://localhost:27017", "MongoDB connection URI")
	flags.String("mongo-database", "quill", "MongoDB database name")
	flags.String("redis-addr", "", "Redis address for the post cache, empty disables caching")
	flags.Bool("metrics", true, "expose Prometheus metrics")

	flags.String("log-level", "info", "log level (trace/debug/info/warn/error/fatal)")
	flags.String("log-format", "console", "log format (json/console)")

	for name, key := range flagBindings {
		_ = viper.BindPFlag(key, flags.Lookup(name))
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info().
		Str("addr", addr).
		Str("mode", cfg.Server.Mode).
		Str("ai_provider", cfg.AI.Provider).
		Bool("ai_enabled", cfg.AI.APIKey != "").
		Msg("starting server")

	return srv.Run(ctx, addr)
}
