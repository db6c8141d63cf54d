package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/godraft/internal/app"
	"github.com/hyperifyio/godraft/internal/mail"
	"github.com/hyperifyio/godraft/internal/server"
	"github.com/hyperifyio/godraft/internal/store"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Local .env files mirror the deployment environment; missing files are fine.
	_ = godotenv.Load()

	var (
		cfg        app.Config
		configPath string
		serve      bool
	)

	flag.StringVar(&cfg.BriefPath, "brief", "brief.md", "Path to the document brief")
	flag.StringVar(&cfg.OutputPath, "output", "document.md", "Path to write the generated document (or the prompt in dry runs)")
	flag.StringVar(&cfg.OutputDOCX, "output.docx", "", "Optional path for a DOCX rendition")
	flag.StringVar(&cfg.OutputPDF, "output.pdf", "", "Optional path for a PDF rendition")
	flag.StringVar(&cfg.MaterialsDir, "materials", "", "Directory of reference materials (style/past/competitive subdirs, or a flat pool)")
	flag.StringVar(&cfg.FormatKey, "format", "", "Document format key, e.g. blog-post or custom")
	flag.StringVar(&cfg.CustomWordCount, "format.words", "", "Word count for the custom format")
	flag.StringVar(&cfg.FormatsFile, "format.catalog", "", "Optional YAML file overriding the built-in format catalog")
	flag.BoolVar(&serve, "serve", false, "Run the HTTP server instead of a one-shot generation")
	flag.StringVar(&cfg.ListenAddr, "listen", "", "HTTP listen address for -serve")
	flag.StringVar(&cfg.UploadDir, "uploads.dir", "", "Upload storage root for -serve")
	flag.IntVar(&cfg.RetentionDays, "uploads.retentionDays", 0, "Days to keep uploaded session files")
	flag.IntVar(&cfg.MaxCharsPerCategory, "uploads.maxChars", 0, "Maximum extracted characters per reference category")
	flag.StringVar(&cfg.LLMBaseURL, "llm.base", "", "OpenAI-compatible base URL")
	flag.StringVar(&cfg.LLMModel, "llm.model", "", "Model name")
	flag.StringVar(&cfg.LLMAPIKey, "llm.key", "", "API key for OpenAI-compatible server")
	flag.IntVar(&cfg.MaxPromptTokens, "max.promptTokens", 0, "Total prompt token budget; 0 derives it from the model")
	flag.IntVar(&cfg.MaxOutputTokens, "max.outputTokens", 0, "Maximum completion tokens")
	flag.BoolVar(&cfg.DryRun, "dry-run", false, "Build and write the prompt without calling the model")
	flag.BoolVar(&cfg.Verbose, "v", false, "Verbose logging")
	flag.StringVar(&configPath, "config", "", "Optional YAML config file")
	flag.Parse()

	app.ApplyEnvToConfig(&cfg)
	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("load config")
		}
		app.MergeFileConfig(&cfg, fc)
	}
	app.ApplyDefaults(&cfg)

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	if serve {
		err = runServer(ctx, cfg)
	} else {
		err = runOnce(ctx, cfg)
	}
	if err != nil {
		log.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}
}

func runOnce(ctx context.Context, cfg app.Config) error {
	a, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	return a.Run(ctx)
}

func runServer(ctx context.Context, cfg app.Config) error {
	if cfg.DryRun {
		return errors.New("-dry-run applies to one-shot generation only")
	}
	a, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}

	st := store.New(cfg.UploadDir)
	retention := time.Duration(cfg.RetentionDays) * 24 * time.Hour
	if files, dirs, err := st.CleanupOld(retention); err != nil {
		log.Warn().Err(err).Msg("startup cleanup failed")
	} else if dirs > 0 {
		log.Info().Int("files", files).Int("sessions", dirs).Msg("startup cleanup")
	}

	mailer := mail.NewSender(mail.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPass,
		From:     cfg.SMTPFrom,
	})

	srv := server.New(st, a.Catalog, a.Generator, mailer, a.Ceiling(), cfg.MaxCharsPerCategory)
	httpSrv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Periodic retention sweep alongside the server.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, _, err := st.CleanupOld(retention); err != nil {
					log.Warn().Err(err).Msg("retention sweep failed")
				}
			}
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.ListenAddr).Msg("listening")
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	}
}
