// Package api boots the approval-gateway HTTP process.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	midoceanclient "github.com/ordermesh/approval-api/internal/clients/http/midocean"
	shopifyclient "github.com/ordermesh/approval-api/internal/clients/http/shopify"
	midoceanadapter "github.com/ordermesh/approval-api/internal/domains/approvals/adapters/external/midocean"
	shopifyadapter "github.com/ordermesh/approval-api/internal/domains/approvals/adapters/external/shopify"
	approvalhttp "github.com/ordermesh/approval-api/internal/domains/approvals/adapters/http"
	approvalmemory "github.com/ordermesh/approval-api/internal/domains/approvals/adapters/memory"
	approvalobs "github.com/ordermesh/approval-api/internal/domains/approvals/adapters/observability"
	"github.com/ordermesh/approval-api/internal/domains/approvals/application"
	"github.com/ordermesh/approval-api/internal/domains/approvals/capability"
	"github.com/ordermesh/approval-api/internal/domains/approvals/ports"
	platformobservability "github.com/ordermesh/approval-api/internal/platform/observability"
	"github.com/ordermesh/approval-api/internal/shared/middleware"
)

const serviceName = "approval-api"

// Run boots the HTTP API with observability, clients, and the approvals
// service wired.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	instruments, shutdown, err := platformobservability.Init(ctx, platformobservability.Config{
		ServiceName:  serviceName,
		Environment:  cfg.Environment,
		OTLPEndpoint: cfg.OTLPEndpoint,
		OTLPInsecure: cfg.OTLPInsecure,
	})
	if err != nil {
		return fmt.Errorf("initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	orderStore, err := buildOrderStore(cfg, logger)
	if err != nil {
		return err
	}
	vendorGateway, err := buildVendorGateway(cfg, logger)
	if err != nil {
		return err
	}

	tokens := capability.NewCodec(cfg.ApprovalSecret)
	coreService := application.NewService(
		orderStore,
		vendorGateway,
		tokens,
		application.WithTokenTTL(cfg.TokenTTL),
		application.WithListLimit(cfg.PendingPageLimit),
	)
	service := approvalobs.New(
		coreService,
		approvalobs.WithLogger(logger),
		approvalobs.WithTracer(instruments.Tracer("internal.domains.approvals.application")),
		approvalobs.WithMeter(instruments.Meter("internal.domains.approvals.application")),
	)

	apiOpts := []approvalhttp.Option{approvalhttp.WithLogger(logger)}
	if cfg.WebhookDevBypass {
		logger.Warn("webhook dev bypass enabled")
		apiOpts = append(apiOpts, approvalhttp.WithDevBypassSecret(cfg.ApprovalSecret))
	}
	api := approvalhttp.NewApprovalAPI(
		service,
		shopifyclient.NewWebhookVerifier(cfg.WebhookSecret),
		apiOpts...,
	)

	router := approvalhttp.NewRouter(api,
		middleware.RequestID(),
		otelgin.Middleware(serviceName),
	)
	addr := ":" + cfg.Port
	logger.Info("approval API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("approval API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func buildOrderStore(cfg Config, logger *slog.Logger) (ports.OrderStore, error) {
	if !cfg.Shopify.Configured() {
		logger.Warn("Shopify credentials not set, falling back to in-memory order store")
		return approvalmemory.NewOrderStore(), nil
	}
	client, err := shopifyclient.NewClient(cfg.Shopify.Shop, cfg.Shopify.APIVersion, cfg.Shopify.AccessToken, nil)
	if err != nil {
		return nil, fmt.Errorf("build shopify client: %w", err)
	}
	logger.Info("order store configured with shopify", slog.String("shop", cfg.Shopify.Shop))
	return shopifyadapter.NewStore(client), nil
}

func buildVendorGateway(cfg Config, logger *slog.Logger) (ports.VendorGateway, error) {
	if !cfg.Midocean.Configured() {
		logger.Warn("Midocean API key not set, falling back to in-memory vendor gateway")
		return approvalmemory.NewVendorGateway(), nil
	}
	client, err := midoceanclient.NewClient(cfg.Midocean.BaseURL, cfg.Midocean.APIKey, nil)
	if err != nil {
		return nil, fmt.Errorf("build midocean client: %w", err)
	}
	logger.Info("vendor gateway configured with midocean", slog.String("base_url", cfg.Midocean.BaseURL))
	return midoceanadapter.NewGateway(client), nil
}
