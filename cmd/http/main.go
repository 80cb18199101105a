package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"claimswitch-service/internal/app/config"
	"claimswitch-service/internal/app/delivery/http/controllers"
	"claimswitch-service/internal/app/delivery/http/middlewares"
	"claimswitch-service/internal/app/delivery/http/routers"
	"claimswitch-service/internal/app/drivers/database"
	"claimswitch-service/internal/app/drivers/logger"
	"claimswitch-service/internal/app/drivers/messaging"
	"claimswitch-service/internal/app/services/core/claimevents"
	"claimswitch-service/internal/app/services/core/claims"
	"claimswitch-service/internal/app/services/core/membership"
	"claimswitch-service/internal/app/services/core/providers"
	"claimswitch-service/internal/app/services/core/webhook"
	"claimswitch-service/internal/app/services/shared/callbackqueue"
	"claimswitch-service/internal/app/services/shared/gateway"
	"claimswitch-service/internal/app/services/shared/jwtmanager"
	"claimswitch-service/internal/app/services/shared/locker"
	sharedredis "claimswitch-service/internal/app/services/shared/redis"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewZapLogger(driverConfig, internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		logrus.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	postgresDB := database.NewPostgresDB(driverConfig)
	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := config.Bootstrap{
		Router:         chiRouter,
		PostgresDB:     postgresDB,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		RabbitMQ:       rabbitMQ,
		Logger:         log,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}
	bootstrapingTheApp(&bootstrap)

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	logrus.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.Fatalf("Server forced to shutdown: %v", err)
	}
	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		logrus.Fatalf("Failed to release resources cleanly: %v", err)
	}

	logrus.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) {
	internalConfig := bootstrap.InternalConfig
	log := bootstrap.Logger

	// Redis
	redisRepository := sharedredis.NewRedisRepository(bootstrap.Redis)
	lockService := locker.NewLockService(redisRepository, log)

	// Provider gateways
	liveGateway := gateway.NewHTTPGateway(
		log,
		time.Duration(internalConfig.Claims.GatewayTimeoutInSeconds)*time.Second,
		internalConfig.Claims.GatewayRequestsPerSecond,
	)
	simulatorGateway := gateway.NewSimulatorGateway(log, 1*time.Second, 3*time.Second)
	gatewaySelector := gateway.NewGatewaySelector(liveGateway, simulatorGateway)

	// Callback queue
	callbackQueue, err := callbackqueue.NewService(bootstrap.RabbitMQ, log, internalConfig.Claims.CallbackPrefetch)
	if err != nil {
		logrus.Fatalf("Failed to initialize callback queue: %v", err)
	}

	// Provider
	providerRepository := providers.NewProviderPostgresRepository(bootstrap.PostgresDB)
	providerUsecase := providers.NewProviderUsecase(providerRepository, log)
	providerController := controllers.NewProviderController(log, providerUsecase)

	// Claim events
	claimEventRepository := claimevents.NewClaimEventMongoRepository(
		bootstrap.MongoDB,
		bootstrap.DriverConfig.MongoDB.DbName,
	)

	// Claim
	claimRepository := claims.NewClaimPostgresRepository(bootstrap.PostgresDB)
	claimUsecase := claims.NewClaimUsecase(
		claimRepository,
		providerRepository,
		claimEventRepository,
		gatewaySelector,
		lockService,
		internalConfig,
		log,
	)
	claimController := controllers.NewClaimController(log, claimUsecase)

	// Membership
	membershipUsecase := membership.NewMembershipUsecase(providerRepository, gatewaySelector, internalConfig, log)
	membershipController := controllers.NewMembershipController(log, membershipUsecase)

	// Webhook
	webhookUsecase := webhook.NewWebhookUsecase(
		claimRepository,
		claimEventRepository,
		callbackQueue,
		lockService,
		internalConfig,
		log,
	)
	webhookController := controllers.NewWebhookController(log, webhookUsecase)

	callbackWorker := webhook.NewCallbackWorker(webhookUsecase, callbackQueue, lockService, internalConfig, log)
	bootstrap.WorkerStop = callbackWorker.Start(context.Background())

	// Middlewares
	webhookTokenManager := jwtmanager.NewWebhookTokenManager(
		time.Duration(internalConfig.Claims.WebhookTokenLeewayInSeconds) * time.Second,
	)
	appMiddlewares := &middlewares.Middlewares{
		Log:                 log,
		ProviderRepository:  providerRepository,
		WebhookTokenManager: webhookTokenManager,
		InternalConfig:      internalConfig,
	}

	routers.SetupRoutes(
		bootstrap.Router,
		internalConfig,
		appMiddlewares,
		claimController,
		membershipController,
		webhookController,
		providerController,
	)
}
