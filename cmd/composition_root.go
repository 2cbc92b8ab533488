package cmd

import (
	"errors"
	"log/slog"

	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/memory"
	"fulfillment/internal/adapters/out/notify"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	locker     *memory.OrderLocker
	clock      ports.Clock
	registry   *prometheus.Registry
	hub        *notify.Hub
	kafka      *notify.KafkaPublisher
	publisher  ports.OrderEventPublisher
	logger     *slog.Logger
}

// NewCompositionRoot wires the shared adapters. Kafka is optional: an empty
// KAFKA_HOST leaves events on the WebSocket feed and the metrics counter.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	hub := notify.NewHub(logger)
	fanout := notify.NewFanout(logger).
		Add("websocket", hub).
		Add("metrics", notify.NewMetricsPublisher(registry))

	kafka, err := notify.NewKafkaPublisher(config.KafkaHost, config.KafkaOrderChangedTopic)
	switch {
	case errors.Is(err, notify.ErrKafkaDisabled):
		logger.Info("Kafka publisher disabled", "reason", err.Error())
	case err != nil:
		return nil, err
	default:
		fanout.Add("kafka", kafka)
	}

	return &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		locker:     memory.NewOrderLocker(config.OrderLockWait),
		clock:      ports.SystemClock{},
		registry:   registry,
		hub:        hub,
		kafka:      kafka,
		publisher:  fanout,
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) fulfillmentUoWFactory() commands.FulfillmentUoWFactory {
	return FuncFulfillmentUoWFactory(func() commands.FulfillmentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) qrTokenUoWFactory() commands.QrTokenUoWFactory {
	return FuncQrTokenUoWFactory(func() commands.QrTokenUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateStockOutCommandHandler() commands.StockOutCommandHandler {
	return commands.NewStockOutCommandHandler(c.fulfillmentUoWFactory(), c.locker, c.publisher, c.clock)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.fulfillmentUoWFactory(), c.locker, c.publisher, c.clock)
}

func (c *CompositionRoot) CreateIssueQrTokenCommandHandler() commands.IssueQrTokenCommandHandler {
	return commands.NewIssueQrTokenCommandHandler(c.qrTokenUoWFactory(), c.config.QrTTLMinutes, c.clock)
}

func (c *CompositionRoot) CreateAdvanceOrderStatusCommandHandler() commands.AdvanceOrderStatusCommandHandler {
	return commands.NewAdvanceOrderStatusCommandHandler(c.qrTokenUoWFactory(), c.locker, c.publisher, c.clock)
}

func (c *CompositionRoot) CreatePurgeExpiredQrTokensCommandHandler() commands.PurgeExpiredQrTokensCommandHandler {
	return commands.NewPurgeExpiredQrTokensCommandHandler(c.qrTokenUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateGetOrderMetricsQueryHandler() queries.GetOrderMetricsQueryHandler {
	return queries.NewGetOrderMetricsQueryHandler(c.gormDB, c.clock, c.config.UrgentWindow)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB, c.clock, c.config.UrgentWindow)
}

// Read handlers use a unit of work that is never begun, so they run on the
// plain connection.
func (c *CompositionRoot) CreateGetOrderDetailsQueryHandler() queries.GetOrderDetailsQueryHandler {
	return queries.NewGetOrderDetailsQueryHandler(c.uowFactory.Create().OrderRepository())
}

func (c *CompositionRoot) CreateVerifyQrTokenQueryHandler() queries.VerifyQrTokenQueryHandler {
	uow := c.uowFactory.Create()
	return queries.NewVerifyQrTokenQueryHandler(uow.QrTokenRepository(), uow.OrderRepository(), c.clock, c.logger)
}

func (c *CompositionRoot) CreateGetQrTokenQueryHandler() queries.GetQrTokenQueryHandler {
	return queries.NewGetQrTokenQueryHandler(c.uowFactory.Create().QrTokenRepository(), c.clock)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		StockOut:           c.CreateStockOutCommandHandler(),
		CancelOrder:        c.CreateCancelOrderCommandHandler(),
		IssueQrToken:       c.CreateIssueQrTokenCommandHandler(),
		AdvanceOrderStatus: c.CreateAdvanceOrderStatusCommandHandler(),
		OrderMetrics:       c.CreateGetOrderMetricsQueryHandler(),
		ListOrders:         c.CreateListOrdersQueryHandler(),
		OrderDetails:       c.CreateGetOrderDetailsQueryHandler(),
		VerifyQrToken:      c.CreateVerifyQrTokenQueryHandler(),
		QrToken:            c.CreateGetQrTokenQueryHandler(),
	}, httpin.Options{
		Authenticator: httpin.NewAuthenticator(c.config.JWTSecret),
		PublicBaseURL: c.config.PublicBaseURL,
		Feed:          c.hub,
		Registry:      c.registry,
		Logger:        c.logger,
	})
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(jobs.NewQrTokenPurgeJob(
		c.CreatePurgeExpiredQrTokensCommandHandler(),
		c.config.QrPurgeCron,
		c.config.QrRetention,
		c.logger,
	))
}

// Close releases the event publishers.
func (c *CompositionRoot) Close() error {
	c.hub.Close()
	if c.kafka != nil {
		return c.kafka.Close()
	}
	return nil
}

type FuncFulfillmentUoWFactory func() commands.FulfillmentUoW

func (f FuncFulfillmentUoWFactory) Create() commands.FulfillmentUoW {
	return f()
}

type FuncQrTokenUoWFactory func() commands.QrTokenUoW

func (f FuncQrTokenUoWFactory) Create() commands.QrTokenUoW {
	return f()
}
