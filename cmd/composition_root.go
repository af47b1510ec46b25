package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"orderlifecycle/internal/adapters/in/auth"
	grpcserver "orderlifecycle/internal/adapters/in/grpc"
	httpadapter "orderlifecycle/internal/adapters/in/http"
	"orderlifecycle/internal/adapters/out/notify"
	"orderlifecycle/internal/adapters/out/postgres"
	"orderlifecycle/internal/core/application/usecases/commands"
	"orderlifecycle/internal/core/application/usecases/queries"
	"orderlifecycle/internal/core/ports"
	"orderlifecycle/internal/jobs"
	"orderlifecycle/internal/platform/observability"

	"gorm.io/gorm"
)

const ServiceName = "orderlifecycle"

type CompositionRoot struct {
	configs     Config
	gormDB      *gorm.DB
	uowFactory  *postgres.GormUnitOfWorkFactory
	instruments *observability.Instruments
	logger      *slog.Logger
	verifier    *auth.Verifier

	notifier *notify.Multi
	email    *notify.EmailNotifier
	closers  []func() error
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, instruments *observability.Instruments) (*CompositionRoot, error) {
	logger := slog.Default()
	if instruments != nil && instruments.Logger != nil {
		logger = instruments.Logger
	}

	verifier, err := auth.NewVerifier(configs.JWTSecret)
	if err != nil {
		return nil, err
	}

	c := &CompositionRoot{
		configs:     configs,
		gormDB:      gormDB,
		uowFactory:  postgres.NewGormUnitOfWorkFactory(gormDB),
		instruments: instruments,
		logger:      logger,
		verifier:    verifier,
	}
	if err = c.buildNotifier(); err != nil {
		return nil, errors.Join(err, c.Close())
	}
	return c, nil
}

// buildNotifier assembles the fan-out of every configured sink. The log sink
// is always present.
func (c *CompositionRoot) buildNotifier() error {
	sinks := []notify.Sink{c.observed("log", notify.NewLogNotifier(c.logger))}

	if c.configs.SMTPHost != "" {
		sender := notify.NewSMTPSender(c.configs.SMTPHost, c.configs.SMTPPort, c.configs.SMTPUsername, c.configs.SMTPPassword)
		c.email = notify.NewEmailNotifier(c.configs.SMTPFrom, sender, c.configs.NotifyQueueSize, c.logger)
		sinks = append(sinks, c.observed("email", c.email))
	}

	if len(c.configs.KafkaBrokers) > 0 {
		client, err := notify.NewKafkaClient(c.configs.KafkaBrokers, c.configs.KafkaOrderChangedTopic)
		if err != nil {
			return fmt.Errorf("kafka notifier: %w", err)
		}
		kafka := notify.NewKafkaNotifier(client, c.configs.KafkaOrderChangedTopic)
		c.closers = append(c.closers, func() error { kafka.Close(); return nil })
		sinks = append(sinks, c.observed("kafka", kafka))
	}

	if c.configs.RabbitMQURL != "" {
		conn, err := notify.DialRabbitMQ(c.configs.RabbitMQURL, c.configs.RabbitMQExchange)
		if err != nil {
			return fmt.Errorf("rabbitmq notifier: %w", err)
		}
		c.closers = append(c.closers, conn.Close)
		sinks = append(sinks, c.observed("rabbitmq", notify.NewRabbitMQNotifier(conn.Channel, c.configs.RabbitMQExchange)))
	}

	c.notifier = notify.NewMulti(c.logger, sinks...)
	return nil
}

func (c *CompositionRoot) observed(name string, n ports.Notifier) notify.Sink {
	return notify.Sink{
		Name: name,
		Notifier: notify.NewObserved(name, n,
			notify.WithLogger(c.logger),
			notify.WithTracer(c.instruments.Tracer("orderlifecycle/notify")),
			notify.WithMeter(c.instruments.Meter("orderlifecycle/notify")),
		),
	}
}

func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

func (c *CompositionRoot) Verifier() *auth.Verifier {
	return c.verifier
}

// NotifierSinks names the configured notification sinks in call order.
func (c *CompositionRoot) NotifierSinks() []string {
	return c.notifier.Sinks()
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderReader() ports.OrderReader {
	return c.uowFactory.Create().OrderRepository()
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.notifier, c.logger)
}

func (c *CompositionRoot) CreateApplyTransitionCommandHandler() commands.ApplyTransitionCommandHandler {
	return commands.NewApplyTransitionCommandHandler(c.orderUoWFactory(), c.notifier, c.logger)
}

func (c *CompositionRoot) CreateClaimOrderCommandHandler() commands.ClaimOrderCommandHandler {
	return commands.NewClaimOrderCommandHandler(c.orderUoWFactory(), c.notifier, c.logger)
}

func (c *CompositionRoot) CreateUnassignOrderCommandHandler() commands.UnassignOrderCommandHandler {
	return commands.NewUnassignOrderCommandHandler(c.orderUoWFactory(), c.notifier, c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.orderReader())
}

func (c *CompositionRoot) CreateGetAvailableOrdersQueryHandler() queries.GetAvailableOrdersQueryHandler {
	return queries.NewGetAvailableOrdersQueryHandler(c.orderReader())
}

func (c *CompositionRoot) CreateGetAssignedOrdersQueryHandler() queries.GetAssignedOrdersQueryHandler {
	return queries.NewGetAssignedOrdersQueryHandler(c.orderReader())
}

func (c *CompositionRoot) CreateGetCompletedOrdersQueryHandler() queries.GetCompletedOrdersQueryHandler {
	return queries.NewGetCompletedOrdersQueryHandler(c.orderReader())
}

func (c *CompositionRoot) NewHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateApplyTransitionCommandHandler(),
		c.CreateClaimOrderCommandHandler(),
		c.CreateUnassignOrderCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateGetAvailableOrdersQueryHandler(),
		c.CreateGetAssignedOrdersQueryHandler(),
		c.CreateGetCompletedOrdersQueryHandler(),
	)
}

func (c *CompositionRoot) NewGRPCServer() *grpcserver.Server {
	return grpcserver.NewServer(
		c.CreateApplyTransitionCommandHandler(),
		c.CreateClaimOrderCommandHandler(),
		c.CreateGetAvailableOrdersQueryHandler(),
		c.CreateGetAssignedOrdersQueryHandler(),
		c.CreateGetCompletedOrdersQueryHandler(),
	)
}

// Jobs returns the background jobs for the configured sinks.
func (c *CompositionRoot) Jobs() []jobs.Job {
	var out []jobs.Job
	if c.email != nil {
		out = append(out, jobs.NewNotificationFlushJob(c.email, c.configs.NotifyFlushSpec, c.logger))
	}
	return out
}

// Close releases broker connections. The database is owned by the caller.
func (c *CompositionRoot) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errs = append(errs, c.closers[i]())
	}
	c.closers = nil
	return errors.Join(errs...)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
