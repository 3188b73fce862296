package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/goccy/go-json"

	"github.com/therealutkarshpriyadarshi/nexus/internal/config"
	"github.com/therealutkarshpriyadarshi/nexus/internal/discovery"
	"github.com/therealutkarshpriyadarshi/nexus/internal/generator"
	"github.com/therealutkarshpriyadarshi/nexus/internal/logging"
	"github.com/therealutkarshpriyadarshi/nexus/internal/metrics"
	"github.com/therealutkarshpriyadarshi/nexus/internal/persistence"
	"github.com/therealutkarshpriyadarshi/nexus/internal/storage"
	"github.com/therealutkarshpriyadarshi/nexus/internal/store"
	"github.com/therealutkarshpriyadarshi/nexus/internal/studio"
	"github.com/therealutkarshpriyadarshi/nexus/internal/tracing"
	"github.com/therealutkarshpriyadarshi/nexus/pkg/models"
)

const usage = `usage: nexus <command> [args]

commands:
  stats                     print admin dashboard counters
  alerts                    print the admin alert feed
  monetization <user-id>    print a creator's monetization progress
  suggest <topic> [reel]    generate draft metadata and thumbnails
`

func main() {
	os.Exit(execute())
}

// execute runs one command and returns the process exit code. Every
// deferred close runs before main exits.
func execute() int {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		return 2
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		return 1
	}

	logger, err := logging.NewLogger(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		log.Printf("Failed to initialize logger: %v", err)
		return 1
	}

	_, closer, err := tracing.InitTracer(cfg.Tracing)
	if err != nil {
		logger.WithError(err).Warn("Tracing disabled")
	} else {
		defer closer.Close()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if cfg.Metrics.Port > 0 {
		srv := metrics.NewServer(cfg.Metrics.Port, logger)
		go func() {
			if err := srv.Start(); err != nil {
				logger.WithError(err).Error("Metrics server stopped")
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}
	if cfg.Metrics.PushGateway != "" {
		defer pushMetrics(cfg.Metrics, logger)
	}

	backend, err := persistence.NewBackend(cfg)
	if err != nil {
		logger.WithError(err).Error("Failed to open persistence backend")
		return 1
	}
	persister := persistence.NewPersister(backend, logger)
	defer persister.Close()

	s, err := store.New(ctx, persister,
		store.WithLogger(logger),
		store.WithLimits(store.LimitsFromConfig(cfg.Store)),
	)
	if err != nil {
		logger.WithError(err).Error("Failed to load store")
		return 1
	}

	if err := run(ctx, cfg, logger, s, os.Args[1], os.Args[2:]); err != nil {
		logger.WithError(err).Error("Command failed")
		return 1
	}
	return 0
}

// pushMetrics hands the collectors of this run to the Pushgateway
func pushMetrics(cfg config.MetricsConfig, logger *logging.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := metrics.Push(ctx, cfg.PushGateway, cfg.Job); err != nil {
		logger.WithError(err).Warn("Failed to push metrics")
		return
	}
	logger.WithField("gateway", cfg.PushGateway).Info("Metrics pushed")
}

func run(ctx context.Context, cfg *config.Config, logger *logging.Logger, s *store.Store, command string, args []string) error {
	switch command {
	case "stats":
		snap := s.Snapshot()
		return printJSON(discovery.ComputeAdminStats(snap.Users, snap.Videos, snap.Reports, snap.Logs))

	case "alerts":
		snap := s.Snapshot()
		return printJSON(discovery.AdminAlerts(snap.Reports, snap.Logs))

	case "monetization":
		if len(args) < 1 {
			return fmt.Errorf("monetization needs a user id")
		}
		user, ok := s.User(args[0])
		if !ok {
			return store.ErrNotFound
		}
		criteria := discovery.CriteriaFromConfig(cfg.Monetization)
		return printJSON(discovery.Monetization(user, s.Snapshot().Videos, time.Now(), criteria))

	case "suggest":
		if len(args) < 1 {
			return fmt.Errorf("suggest needs a topic")
		}
		videoType := models.VideoTypeVideo
		if len(args) > 1 && strings.EqualFold(args[1], string(models.VideoTypeReel)) {
			videoType = models.VideoTypeReel
		}

		uploader, err := newUploader(ctx, cfg, logger, s)
		if err != nil {
			return err
		}
		suggestion, err := uploader.Suggest(ctx, args[0], videoType)
		if err != nil {
			return err
		}
		return printJSON(suggestion)

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func newUploader(ctx context.Context, cfg *config.Config, logger *logging.Logger, s *store.Store) (*studio.Uploader, error) {
	model, err := generator.NewTextModel(cfg.Generator)
	if err != nil {
		return nil, err
	}
	metadata := generator.NewMetadataGenerator(model, cfg.Generator, logger)

	var thumbnails studio.ThumbnailSource
	if cfg.Generator.ImageURL != "" {
		thumbnails = generator.NewThumbnailGenerator(cfg.Generator, logger)
	}

	var objects studio.ObjectStore
	if cfg.Storage.Enabled {
		stor, err := storage.New(ctx, cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
		objects = stor
	}

	return studio.NewUploader(s, metadata, thumbnails, objects, logger), nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
