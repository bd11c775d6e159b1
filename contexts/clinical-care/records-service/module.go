package recordsservice

import (
	"log/slog"
	"time"

	httpadapter "clinicalh/contexts/clinical-care/records-service/adapters/http"
	"clinicalh/contexts/clinical-care/records-service/adapters/memory"
	"clinicalh/contexts/clinical-care/records-service/application"
	"clinicalh/contexts/clinical-care/records-service/application/workers"
	"clinicalh/contexts/clinical-care/records-service/domain/services"
	"clinicalh/contexts/clinical-care/records-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Relay   workers.OutboxRelay
	Store   *memory.Store
}

type Dependencies struct {
	Repository            ports.Repository
	Outbox                ports.OutboxRepository
	Publisher             ports.EventPublisher
	Clock                 ports.Clock
	IDGenerator           ports.IDGenerator
	AdministratorIdentity string
	ReadOnlyIdentity      string
	ClinicZone            *time.Location
	RelayBatchSize        int
	Logger                *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:        deps.Repository,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Roles: services.RoleResolver{
			AdministratorIdentity: deps.AdministratorIdentity,
			ReadOnlyIdentity:      deps.ReadOnlyIdentity,
		},
		ClinicZone: deps.ClinicZone,
		Logger:     deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
		Service: service,
		Relay: workers.OutboxRelay{
			Outbox:    deps.Outbox,
			Publisher: deps.Publisher,
			Clock:     deps.Clock,
			BatchSize: deps.RelayBatchSize,
			Logger:    deps.Logger,
		},
	}
}

func NewInMemoryModule(publisher ports.EventPublisher, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository:            store,
		Outbox:                store,
		Publisher:             publisher,
		Clock:                 store,
		IDGenerator:           store,
		AdministratorIdentity: "superuser",
		ReadOnlyIdentity:      "readonly",
		ClinicZone:            time.UTC,
		Logger:                logger,
	})
	module.Store = store
	return module
}
