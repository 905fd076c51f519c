package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/spec-kit/signup-flow/internal/client"
	"github.com/spec-kit/signup-flow/internal/config"
	"github.com/spec-kit/signup-flow/internal/domain"
	"github.com/spec-kit/signup-flow/internal/events"
	"github.com/spec-kit/signup-flow/internal/form"
	"github.com/spec-kit/signup-flow/internal/navigation"
	"github.com/spec-kit/signup-flow/internal/observability"
	"github.com/spec-kit/signup-flow/internal/persistence"
	"github.com/spec-kit/signup-flow/internal/repository"
	"github.com/spec-kit/signup-flow/internal/service"
	"github.com/spec-kit/signup-flow/internal/session"
	"github.com/spec-kit/signup-flow/internal/worker"
)

func main() {
	var (
		apiURL      = flag.String("api-url", "", "auth service base URL (overrides API_URL)")
		firstName   = flag.String("first-name", "", "first name")
		lastName    = flag.String("last-name", "", "last name")
		email       = flag.String("email", "", "email address")
		password    = flag.String("password", "", "password (prompted when empty)")
		interactive = flag.Bool("interactive", true, "prompt for missing fields and offer retries")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if *apiURL != "" {
		cfg.Client.APIBaseURL = *apiURL
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeStore, err := openSessionStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open session store", zap.String("store", cfg.Session.Store), zap.Error(err))
	}
	defer closeStore()

	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()
	worker.StartOutcomeRecorder(service.NewOutcomeRecorder(dispatcher, metrics, logger))

	registration := service.NewRegistrationService(*cfg, service.RegistrationDependencies{
		Submitter:  client.NewRegistrationClient(&http.Client{}, logger),
		Sessions:   session.NewSink(repo, cfg.Session.DefaultTTL(), logger),
		Navigator:  navigation.NewLogger(logger, terminalNavigator{out: os.Stdout}),
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	p := newPrompter(os.Stdin, os.Stdout)
	f := form.New(form.WithStrictValidation(cfg.Client.StrictValidation))
	preset := map[domain.Field]string{
		domain.FieldFirstName:       *firstName,
		domain.FieldLastName:        *lastName,
		domain.FieldEmail:           *email,
		domain.FieldPassword:        *password,
		domain.FieldConfirmPassword: *password,
	}

	code := run(ctx, registration, f, p, preset, *interactive)
	logger.Debug("registration metrics", zap.Any("metrics", metrics.Snapshot()))
	if code != 0 {
		logger.Sync() //nolint:errcheck
		os.Exit(code)
	}
}

func run(ctx context.Context, registration *service.RegistrationService, f *form.State, p *prompter, preset map[domain.Field]string, interactive bool) int {
	for {
		if err := p.fill(f, preset, interactive); err != nil {
			fmt.Fprintf(p.out, "input aborted: %v\n", err)
			return 1
		}

		res, err := registration.Submit(ctx, f)
		switch {
		case errors.Is(err, service.ErrSubmissionInFlight):
			fmt.Fprintln(p.out, "A registration is already in progress.")
			return 1
		case err != nil:
			fmt.Fprintln(p.out, res.Message)
			return 1
		case res.Outcome.IsSuccess():
			fmt.Fprintln(p.out, res.Message)
			return 0
		}

		fmt.Fprintf(p.out, "Error: %s\n", f.Error())
		if !interactive || !p.confirm("Try again?") {
			return 1
		}
		preset = nil
	}
}

func openSessionStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.SessionRepository, func(), error) {
	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		r, err := persistence.NewRedis(ctx, cfg.Redis, logger)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewRedisSessionRepository(r.Client, r.Prefix), r.Close, nil
	case config.SessionStorePostgres:
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, nil, err
		}
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
				pg.Close()
				return nil, nil, err
			}
		}
		return repository.NewPostgresSessionRepository(pg.PoolHandle()), pg.Close, nil
	default:
		return repository.NewMemorySessionRepository(), func() {}, nil
	}
}

type terminalNavigator struct {
	out *os.File
}

func (n terminalNavigator) GoTo(path string) {
	fmt.Fprintf(n.out, "-> %s\n", path)
}
