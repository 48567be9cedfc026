package bootstrap

import (
	"weaponforge-be/internal/config"
	"weaponforge-be/internal/controller"
	"weaponforge-be/internal/pkg/logger"
	"weaponforge-be/internal/repository/implementation"
	"weaponforge-be/internal/service"
	pktNats "weaponforge-be/pkg/nats"
	"weaponforge-be/pkg/tripo"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	Logger logger.ILogger

	// Controllers
	HealthController controller.IHealthController
	WeaponController controller.IWeaponController
	TripoController  controller.ITripoController

	// Background Services (Exposed for main.go to run)
	EventConsumer service.IEventConsumerService

	closers []func() error
}

func NewContainer(db *gorm.DB, cfg *config.Config, sysLogger logger.ILogger) *Container {
	c := &Container{Logger: sysLogger}

	// 1. Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, pubSub.Close)

	auditLogger := logger.NewIsolatedLogger(cfg.Events.AuditLogPath)
	c.closers = append(c.closers, auditLogger.Sync)

	// NATS fan-out is optional; without it events stop at the audit log.
	var forwarder service.EventForwarder
	if cfg.Events.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.Events.NatsURL)
		if err != nil {
			sysLogger.Warn("BOOTSTRAP", "NATS publisher unavailable, events will not be forwarded", map[string]interface{}{"error": err.Error()})
		} else {
			forwarder = natsPub
			c.closers = append(c.closers, func() error { natsPub.Close(); return nil })
		}
	}

	eventPublisher := service.NewEventPublisherService(pubSub, cfg.Events.Topic, sysLogger)
	c.EventConsumer = service.NewEventConsumerService(pubSub, cfg.Events.Topic, auditLogger, forwarder)

	// 2. Repositories
	weaponRepo := implementation.NewWeaponRepository(db)

	// 3. Services
	tripoClient := tripo.NewClient(cfg.Tripo.BaseURL, cfg.Tripo.APIKey, cfg.Tripo.Timeout)

	weaponService := service.NewWeaponService(weaponRepo, eventPublisher, sysLogger)
	tripoService := service.NewTripoService(tripoClient, sysLogger)

	// 4. Controllers
	c.HealthController = controller.NewHealthController()
	c.WeaponController = controller.NewWeaponController(weaponService)
	c.TripoController = controller.NewTripoController(tripoService)

	return c
}

// Close releases the event bus and its sinks in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			c.Logger.Warn("BOOTSTRAP", "Failed to release resource", map[string]interface{}{"error": err.Error()})
		}
	}
}
