// Server runs the report portal gRPC API: per-workspace report and audit engines behind
// JWT auth, with audit and request telemetry exported to OTel and Kafka.
package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"report-portal/internal/audit"
	"report-portal/internal/config"
	"report-portal/internal/logging"
	"report-portal/internal/policy/engine"
	"report-portal/internal/portal"
	"report-portal/internal/reportapi/client"
	"report-portal/internal/security"
	"report-portal/internal/server"
	"report-portal/internal/server/interceptors"
	"report-portal/internal/session"
	"report-portal/internal/telemetry"
	"report-portal/internal/telemetry/otel"
	"report-portal/internal/telemetry/producer"
	"report-portal/internal/ticket"
)

const serviceName = "report-portal"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()
	providers, err := otel.NewProviders(ctx, cfg.OTLPEndpoint, serviceName, cfg.OTLPInsecure, log)
	if err != nil {
		log.Fatalf("otel: %v", err)
	}
	providers.SetGlobal()

	emitters := telemetry.Multi{otel.NewEventEmitter(providers.LoggerProvider)}
	kafkaProducer := producer.NewKafkaProducer(cfg.TelemetryKafkaBrokersList(), cfg.TelemetryKafkaTopic)
	if kafkaProducer != nil {
		emitters = append(emitters, kafkaProducer)
		log.WithField("topic", cfg.TelemetryKafkaTopic).Info("telemetry: kafka producer enabled")
	}

	policy, err := loadPolicy(cfg)
	if err != nil {
		log.Fatalf("policy: %v", err)
	}
	secret, err := security.NewSecretChecker(security.NewHasher(cfg.BcryptCost), cfg.PortalPassword)
	if err != nil {
		log.Fatalf("secret: %v", err)
	}
	signer, pub, ephemeral, err := security.LoadKeyPair(cfg.JWTPrivateKey, cfg.JWTPublicKey)
	if err != nil {
		log.Fatalf("jwt keys: %v", err)
	}
	if ephemeral {
		log.Warn("JWT_PRIVATE_KEY not set; using an ephemeral signing key")
	}
	tokens := security.NewTokenProvider(signer, pub, cfg.JWTIssuer, cfg.JWTAudience, cfg.AccessTTL())

	reports := client.New(cfg.ReportAPIURL, cfg.ReportAPITimeout)
	registry := portal.NewRegistry(portal.Config{
		Gate: session.Config{
			LogoutDelay: cfg.LogoutDelay,
			StepUpTTL:   cfg.StepUpTTL,
			ReturnCode:  cfg.OTPReturnToClient,
		},
		Tickets: ticket.Config{
			Quota:        cfg.TicketQuota,
			DisplayLimit: cfg.TicketDisplayLimit,
			HighlightTTL: cfg.TicketHighlightTTL,
		},
		SeedTickets: cfg.TicketSeedDemo,
		IdleTTL:     cfg.IdleTTL(),
	}, portal.Deps{
		Fetcher: reports,
		Policy:  policy,
		Secret:  secret,
		SinkFor: func(workspaceID string) audit.Sink {
			return telemetry.NewAuditSink(emitters, workspaceID, log)
		},
		IPExtractor: interceptors.ClientIP,
		Log:         log,
	})
	defer registry.Close()
	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go registry.Run(sweepCtx, time.Minute)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		log.Fatalf("listen: %v", err)
	}
	defer lis.Close()

	s := server.NewGRPCServer(server.Deps{
		Registry:            registry,
		Tokens:              tokens,
		SyncOnLogin:         cfg.SyncOnLogin,
		HealthPinger:        reports,
		HealthPolicyChecker: policy,
		Telemetry:           emitters,
		Log:                 log,
		Instrument:          cfg.OTLPEndpoint != "",
	})

	go func() {
		log.WithFields(logrus.Fields{"addr": cfg.GRPCAddr, "report_api": cfg.ReportAPIURL}).Info("gRPC server listening")
		if err := s.Serve(lis); err != nil {
			log.Fatalf("serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down gRPC server...")
	s.GracefulStop()
	stopSweep()
	// Let in-flight async telemetry finish before the exporters close.
	time.Sleep(telemetry.ShutdownDrainDuration)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := kafkaProducer.Close(); err != nil {
		log.WithError(err).Warn("kafka producer close")
	}
	if err := providers.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("otel shutdown")
	}
	log.Info("gRPC server stopped")
}

// loadPolicy builds the access evaluator, reading ACCESS_POLICY_FILE when set.
func loadPolicy(cfg *config.Config) (*engine.OPAEvaluator, error) {
	var rules string
	if cfg.AccessPolicyFile != "" {
		b, err := os.ReadFile(cfg.AccessPolicyFile)
		if err != nil {
			return nil, err
		}
		rules = string(b)
	}
	return engine.NewOPAEvaluator(cfg.AllowedUsers(), rules)
}
