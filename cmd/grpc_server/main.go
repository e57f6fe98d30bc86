package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/mitchelldurbincs/HexDominion/internal/config"
	"github.com/mitchelldurbincs/HexDominion/internal/game"
	"github.com/mitchelldurbincs/HexDominion/internal/grpc/gameserver"
	"github.com/mitchelldurbincs/HexDominion/internal/monitoring"
)

func main() {
	// Command line flags
	configPath := flag.String("config", "", "Path to config file")
	port := flag.Int("port", -1, "The server port (-1 to use config default)")
	host := flag.String("host", "", "The server host (empty to use config default)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	maxSessions := flag.Int("max-sessions", -1, "Maximum concurrent sessions (-1 to use config default)")
	tickInterval := flag.Int("tick-interval-ms", -1, "Simulation tick interval in milliseconds (-1 to use config default)")
	enableReflection := flag.Bool("enable-reflection", false, "Enable gRPC reflection for debugging")
	watchConfig := flag.Bool("watch-config", false, "Reload game settings for new sessions when the config file changes")
	flag.Parse()

	// Initialize configuration
	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}

	cfg := config.Get()
	srvCfg := cfg.Server.GRPCServer

	// Use config defaults if not overridden by flags
	if *port == -1 {
		*port = srvCfg.Port
	}
	if *host == "" {
		*host = srvCfg.Host
	}
	if *logLevel == "" {
		*logLevel = srvCfg.LogLevel
	}
	if *maxSessions == -1 {
		*maxSessions = srvCfg.MaxSessions
	}
	if *tickInterval == -1 {
		*tickInterval = srvCfg.TickIntervalMs
	}
	// For enableReflection, use config if flag not explicitly set to true
	if !*enableReflection {
		*enableReflection = srvCfg.EnableReflection
	}

	// Setup logging
	setupLogging(*logLevel)

	log.Info().
		Int("port", *port).
		Str("host", *host).
		Int("max_sessions", *maxSessions).
		Int("tick_interval_ms", *tickInterval).
		Int("session_ttl_s", srvCfg.SessionTTL).
		Msg("Starting gRPC session server")

	// Create listener
	lis, err := net.Listen("tcp", fmt.Sprintf("%s:%d", *host, *port))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to listen")
	}

	interval := time.Duration(*tickInterval) * time.Millisecond
	monitor := monitoring.NewTickMonitor(interval/2, log.Logger)
	monitor.Start()
	defer monitor.Stop()

	sessions := gameserver.NewSessionManager(gameserver.SessionManagerConfig{
		MaxSessions:  *maxSessions,
		TTL:          time.Duration(srvCfg.SessionTTL) * time.Second,
		TickInterval: interval,
		Base:         game.GameConfigFromConfig(cfg),
		Monitor:      monitor,
		Logger:       log.Logger,
	})
	defer sessions.Stop()

	if *watchConfig && config.ConfigFilePath() != "" {
		config.WatchConfig(func() {
			sessions.UpdateBaseConfig(game.GameConfigFromConfig(config.Get()))
		})
		log.Info().Str("file", config.ConfigFilePath()).Msg("Watching config file for changes")
	}

	// Create gRPC server with interceptors
	opts := []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(
			loggingInterceptor,
			recoveryInterceptor,
		),
		grpc.ChainStreamInterceptor(
			streamLoggingInterceptor,
			streamRecoveryInterceptor,
		),
	}

	grpcServer := grpc.NewServer(opts...)

	// Register session service
	gameserver.RegisterSessionServiceServer(grpcServer, gameserver.NewServer(sessions, log.Logger))

	// Register health service
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)

	// Set health status
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(gameserver.SessionServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	// Register reflection service for debugging
	if *enableReflection {
		reflection.Register(grpcServer)
		log.Info().Msg("gRPC reflection enabled")
	}

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

		// Set health status to NOT_SERVING
		healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)
		healthServer.SetServingStatus(gameserver.SessionServiceName, grpc_health_v1.HealthCheckResponse_NOT_SERVING)

		// Give ongoing requests time to complete
		time.Sleep(time.Duration(srvCfg.GracefulShutdownDelay) * time.Second)

		// Close sessions first so open event streams end and GracefulStop can return
		sessions.Stop()
		log.Info().Msg("Gracefully stopping gRPC server")
		grpcServer.GracefulStop()
		cancel()
	}()

	// Start server
	log.Info().Str("address", lis.Addr().String()).Msg("gRPC server listening")

	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			log.Fatal().Err(err).Msg("Failed to serve")
		}
	}()

	// Wait for shutdown
	<-ctx.Done()

	m := monitor.GetMetrics()
	log.Info().
		Int("goroutines", m.Goroutines).
		Int("goroutine_peak", m.GoroutinePeak).
		Msg("Server shutdown complete")
}

// setupLogging picks JSON output under APP_ENV=production and a console
// writer otherwise.
func setupLogging(level string) {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil || logLevel == zerolog.NoLevel {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	if os.Getenv("APP_ENV") == "production" {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	})
}

// sessionIDOf pulls the session id out of a request for log context.
func sessionIDOf(req interface{}) string {
	if s, ok := req.(*structpb.Struct); ok {
		return s.GetFields()["session_id"].GetStringValue()
	}
	return ""
}

// callEvent logs successful calls at debug level and failures by severity.
func callEvent(code codes.Code) *zerolog.Event {
	switch code {
	case codes.OK:
		return log.Debug()
	case codes.Internal, codes.Unknown:
		return log.Error()
	default:
		return log.Warn()
	}
}

// loggingInterceptor logs all unary RPC calls
func loggingInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	code := status.Code(err)
	callEvent(code).
		Str("method", info.FullMethod).
		Str("session_id", sessionIDOf(req)).
		Str("code", code.String()).
		Dur("duration", time.Since(start)).
		Err(err).
		Msg("gRPC call")

	return resp, err
}

// recoveryInterceptor catches panics and returns proper gRPC errors
func recoveryInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Str("method", info.FullMethod).
				Str("session_id", sessionIDOf(req)).
				Interface("panic", r).
				Msg("Recovered from panic in gRPC handler")
			err = status.Errorf(codes.Internal, "internal server error")
		}
	}()

	return handler(ctx, req)
}

// streamLoggingInterceptor logs all streaming RPC calls when they end
func streamLoggingInterceptor(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	start := time.Now()
	err := handler(srv, ss)

	code := status.Code(err)
	callEvent(code).
		Str("method", info.FullMethod).
		Str("code", code.String()).
		Dur("duration", time.Since(start)).
		Err(err).
		Msg("gRPC stream")

	return err
}

// streamRecoveryInterceptor catches panics in streaming handlers
func streamRecoveryInterceptor(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Str("method", info.FullMethod).
				Interface("panic", r).
				Msg("Recovered from panic in gRPC stream handler")
			err = status.Errorf(codes.Internal, "internal server error")
		}
	}()

	return handler(srv, ss)
}
