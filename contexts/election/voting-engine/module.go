package votingengine

import (
	"log/slog"

	httpadapter "ballotbox/contexts/election/voting-engine/adapters/http"
	"ballotbox/contexts/election/voting-engine/adapters/memory"
	"ballotbox/contexts/election/voting-engine/application/commands"
	"ballotbox/contexts/election/voting-engine/application/queries"
	"ballotbox/contexts/election/voting-engine/application/workers"
	"ballotbox/contexts/election/voting-engine/ports"
)

type Module struct {
	Handler    httpadapter.Handler
	Reconciler workers.TallyReconciler

	// Store and DemoStore are populated by the in-memory constructor for
	// test seeding.
	Store     *memory.Store
	DemoStore *memory.Store
}

type Dependencies struct {
	Ledger     ports.VoteLedger
	Demo       ports.VoteLedger
	Candidates ports.CandidateRegistry
	Publisher  ports.EventPublisher
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	notifier := commands.TallyNotifier{
		Publisher:  deps.Publisher,
		Candidates: deps.Candidates,
		Ledger:     deps.Ledger,
		Demo:       deps.Demo,
		Clock:      deps.Clock,
		IDGen:      deps.IDGen,
		Logger:     deps.Logger,
	}
	ballots := commands.BallotUseCase{
		Ledger:     deps.Ledger,
		Demo:       deps.Demo,
		Candidates: deps.Candidates,
		Notifier:   notifier,
		Clock:      deps.Clock,
		IDGen:      deps.IDGen,
		Logger:     deps.Logger,
	}
	resets := commands.ResetUseCase{
		Ledger:     deps.Ledger,
		Demo:       deps.Demo,
		Candidates: deps.Candidates,
		Notifier:   notifier,
		Logger:     deps.Logger,
	}
	tallies := queries.TallyQueryUseCase{
		Ledger:     deps.Ledger,
		Demo:       deps.Demo,
		Candidates: deps.Candidates,
	}
	reconciler := workers.TallyReconciler{
		Ledger:     deps.Ledger,
		Candidates: deps.Candidates,
		Logger:     deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Ballots:    ballots,
			Resets:     resets,
			Tallies:    tallies,
			Reconciler: reconciler,
			Logger:     deps.Logger,
		},
		Reconciler: reconciler,
	}
}

// NewInMemoryModule wires the engine entirely on memory stores: one acting as
// the durable ledger stand-in and candidate registry, one as the demo ledger.
func NewInMemoryModule(publisher ports.EventPublisher, logger *slog.Logger) Module {
	store := memory.NewStore()
	demo := memory.NewStore()
	module := NewModule(Dependencies{
		Ledger:     store,
		Demo:       demo,
		Candidates: store,
		Publisher:  publisher,
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	module.DemoStore = demo
	return module
}
