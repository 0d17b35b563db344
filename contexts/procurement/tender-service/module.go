package tenderservice

import (
	"log/slog"

	httpadapter "agora/contexts/procurement/tender-service/adapters/http"
	"agora/contexts/procurement/tender-service/adapters/memory"
	"agora/contexts/procurement/tender-service/application/commands"
	"agora/contexts/procurement/tender-service/application/queries"
	"agora/contexts/procurement/tender-service/domain/entities"
	"agora/contexts/procurement/tender-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Tenders   ports.TenderRepository
	Directory ports.CompanyDirectory
	Projects  ports.ProjectFactory
	Ledger    ports.FundingLedger
	Outbox    ports.OutboxWriter
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

func NewModule(deps Dependencies) Module {
	tenderUseCase := commands.TenderUseCase{
		Tenders:   deps.Tenders,
		Directory: deps.Directory,
		Projects:  deps.Projects,
		Ledger:    deps.Ledger,
		Outbox:    deps.Outbox,
		Clock:     deps.Clock,
		IDGen:     deps.IDGen,
		Locks:     commands.NewLockRegistry(),
		Logger:    deps.Logger,
	}
	statusUseCase := queries.StatusUseCase{
		Tenders: deps.Tenders,
	}
	return Module{
		Handler: httpadapter.Handler{
			Tenders: tenderUseCase,
			Status:  statusUseCase,
			Logger:  deps.Logger,
		},
	}
}

func NewInMemoryModule(seed []entities.Tender, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Tenders:   store,
		Directory: store,
		Projects:  store,
		Ledger:    store,
		Outbox:    store,
		Clock:     store,
		IDGen:     store,
		Logger:    logger,
	})
	module.Store = store
	return module
}
