package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/malware-d/bercos/internal/audit"
	"github.com/malware-d/bercos/internal/authz"
	"github.com/malware-d/bercos/internal/bank"
	"github.com/malware-d/bercos/internal/identity"
	"github.com/malware-d/bercos/internal/ledger"
	"github.com/malware-d/bercos/internal/server"
	"github.com/malware-d/bercos/internal/token"
)

func cmdServe() *cobra.Command {
	var listen string

	c := &cobra.Command{
		Use:   "serve",
		Short: "Start the bercos HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cfgPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if listen != "" {
				cfg.Listen = listen
			}
			return serve(cmd.Context(), cfg)
		},
	}

	c.Flags().StringVar(&listen, "listen", "", "listen address (overrides config)")
	return c
}

func serve(parent context.Context, cfg *Config) error {
	store := bank.NewMemoryStore()
	if err := bank.Seed(store); err != nil {
		return fmt.Errorf("seed store: %w", err)
	}

	pdp, err := buildAuthorizer(cfg)
	if err != nil {
		return fmt.Errorf("authorizer: %w", err)
	}

	auditLog := audit.New(&audit.SlogSink{Logger: slog.Default()}, cfg.AuditBuffer)
	defer auditLog.Close()

	issuer := token.NewIssuer([]byte(cfg.TokenSecret), cfg.TokenTTL)
	resolver := identity.NewResolver(issuer, store)
	engine := ledger.NewEngine(store, pdp, authz.Builder{PolicyVersion: cfg.PolicyVersion}, auditLog)

	h := server.BuildRouter(server.Deps{
		Store:    store,
		Engine:   engine,
		Issuer:   issuer,
		Resolver: resolver,
	}, server.Options{EnableCORS: cfg.EnableCORS})

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var g errgroup.Group
	g.Go(func() error { return run(ctx, cfg.Listen, h) })

	if err := g.Wait(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func run(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{Addr: addr, Handler: h}
	errc := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()
	select {
	case <-ctx.Done():
		ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx2)
	case err := <-errc:
		return err
	}
}

func buildAuthorizer(cfg *Config) (authz.Authorizer, error) {
	switch cfg.PDPBackend {
	case "cerbos":
		return authz.NewCerbos(authz.CerbosConfig{
			Address:   cfg.PDPAddress,
			Timeout:   cfg.PDPTimeout,
			Plaintext: true,
		})
	case "openfga":
		return authz.NewOpenFGA(authz.OpenFGAConfig{
			APIURL:  cfg.FGAAPIURL,
			StoreID: cfg.FGAStoreID,
			ModelID: cfg.FGAModelID,
		})
	case "mock":
		slog.Warn("pdp backend is mock, every request is allowed")
		return &authz.Mock{AlwaysAllow: true}, nil
	default:
		return nil, fmt.Errorf("unknown pdp backend %q", cfg.PDPBackend)
	}
}
