package di

import (
	"context"
	"fmt"
	"time"

	domrepo "SignalFuse/internal/domain/repository"
	domsvc "SignalFuse/internal/domain/service"
	"SignalFuse/internal/handler/api"
	internalrepo "SignalFuse/internal/repository"
	icache "SignalFuse/internal/service/cache"
	"SignalFuse/internal/service/volfeed"
	"SignalFuse/internal/services/execution"
	"SignalFuse/internal/services/fusion"
	"SignalFuse/internal/usecase"
	pkgch "SignalFuse/pkg/clickhouse"
	"SignalFuse/pkg/config"
	xhttp "SignalFuse/pkg/http"
	pkgkafka "SignalFuse/pkg/kafka"
	applogger "SignalFuse/pkg/logger"
	"SignalFuse/pkg/metrics"
	"SignalFuse/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	lc := &applogger.Config{
		Level:  cfg.Logger.Level,
		Format: cfg.Logger.Format,
		Output: cfg.Logger.Output,
	}
	if lc.Level == "" {
		lc.Level = "info"
	}
	if lc.Format == "" {
		lc.Format = "console"
	}
	if lc.Output == "" {
		lc.Output = "stdout"
	}
	return applogger.New(lc)
}

// ProvideClickHouseClient creates a ClickHouse client and applies the schema.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	// Initialize schema
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.InitSchema(ctx, internalrepo.Schema(cfg.ClickHouse.Database)); err != nil {
		_ = client.Close() // cannot log here (DI layer no logger); propagate error
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

// ProvideKafkaProducer creates a Kafka producer.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}

	return producer, nil
}

// ProvideKafkaConsumer creates a Kafka consumer configured from YAML.
func ProvideKafkaConsumer(cfg *config.Config) (*pkgkafka.Consumer, error) {
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
		pkgkafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() domrepo.Metrics {
	return metrics.New()
}

// ProvideConsensusResolver creates the fusion engine.
func ProvideConsensusResolver() domsvc.ConsensusResolver {
	return fusion.NewEngine()
}

// ProvideExecutionOptimizer creates the execution cost estimator.
func ProvideExecutionOptimizer() domsvc.ExecutionOptimizer {
	return execution.NewEstimator()
}

// ProvideDecisionStore creates the ClickHouse decision store.
func ProvideDecisionStore(chClient *pkgch.Client, cfg *config.Config, l *applogger.Logger) domrepo.DecisionStore {
	store := internalrepo.NewCHDecisionStore(chClient, cfg.ClickHouse.Database)
	store.SetLogger(l)
	return store
}

// ProvideDecisionPublisher creates the Kafka decision publisher.
func ProvideDecisionPublisher(producer *pkgkafka.Producer, cfg *config.Config) domrepo.Publisher {
	return internalrepo.NewKafkaDecisionPublisher(producer, cfg.Kafka.DecisionsTopic)
}

// ProvideVolumeFeed creates the exchange volume stream.
func ProvideVolumeFeed(cfg *config.Config) domrepo.VolumeFeed {
	return volfeed.New(
		cfg.VolumeFeed.WebSocketURL,
		cfg.VolumeFeed.Symbols,
		cfg.VolumeFeed.ReconnectDelay,
		cfg.VolumeFeed.PingInterval,
	)
}

// ProvideCache creates a shared Redis cache when enabled, otherwise an
// in-process TTL cache.
func ProvideCache(cfg *config.Config) icache.BytesCache {
	if cfg.Cache.Redis.Enabled {
		return icache.NewRedisCache(icache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
	}
	return icache.NewTTLCache()
}

// ProvideDecisionService creates the decision use case facade.
func ProvideDecisionService(
	resolver domsvc.ConsensusResolver,
	optimizer domsvc.ExecutionOptimizer,
	store domrepo.DecisionStore,
	publisher domrepo.Publisher,
	volume domrepo.VolumeFeed,
	cache icache.BytesCache,
	m domrepo.Metrics,
	l *applogger.Logger,
) *usecase.DecisionService {
	return usecase.NewDecisionService(resolver, optimizer, store, publisher, volume, cache, m, l)
}

// ProvideOpinionStreamHandler registers the handler for the opinions topic.
func ProvideOpinionStreamHandler(service *usecase.DecisionService, cfg *config.Config) pkgkafka.MessageHandler {
	return usecase.NewOpinionStreamHandler(cfg.Kafka.OpinionsTopic, service)
}

// ProvideHTTPHandler creates the Echo route handler.
func ProvideHTTPHandler(l *applogger.Logger, service *usecase.DecisionService) xhttp.Handler {
	return api.NewDecisionsEchoHandler(l, service)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	volFeed domrepo.VolumeFeed,
	consumer *pkgkafka.Consumer,
	kh pkgkafka.MessageHandler,
	chClient *pkgch.Client,
	publisher domrepo.Publisher,
	httpHandler xhttp.Handler,
) *server.App {
	if consumer != nil {
		consumer.WithConsumerHook(pkgkafka.NoopHook{})
	}
	return server.New(cfg, l, volFeed, consumer, kh, chClient, publisher, httpHandler)
}
