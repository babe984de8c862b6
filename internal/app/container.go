// Package app wires application services to their infrastructure adapters.
package app

import (
	"context"

	"github.com/nlshell/nlsh/internal/application/query"
	"github.com/nlshell/nlsh/internal/infrastructure/ai"
	"github.com/nlshell/nlsh/internal/infrastructure/config"
	"github.com/nlshell/nlsh/internal/infrastructure/executor"
	"github.com/nlshell/nlsh/internal/infrastructure/history"
	"github.com/nlshell/nlsh/internal/infrastructure/security"
	"github.com/nlshell/nlsh/internal/infrastructure/shellparse"
	"github.com/nlshell/nlsh/internal/pkg/logger"
	"github.com/nlshell/nlsh/internal/ports"
)

// Container holds the wired dependency graph.
type Container struct {
	QueryService   *query.Service
	ConfigProvider ports.ConfigProvider
	HistoryStore   ports.HistoryStore
}

// BuildContainer constructs the dependency graph. The prompter is attached
// by the CLI layer, which owns the terminal.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.NewStd(verbose)
	historyStore := history.NewSQLiteStore()

	policy, err := security.NewPolicy(cfg.Security.RulesFile)
	if err != nil {
		// A broken user rules file must not disable the safety layer;
		// fall back to the embedded catalog.
		log.Warn("rules file unusable, using embedded defaults", map[string]interface{}{"error": err.Error()})
		policy, err = security.NewPolicy("")
		if err != nil {
			return nil, err
		}
	}

	queryService := &query.Service{
		ConfigProvider: cfgLoader,
		Translators:    ai.NewFactory(),
		Segmenter:      shellparse.New(),
		Policy:         policy,
		Executor:       executor.NewLocal(cfg.Execution.Shell),
		History:        historyStore,
		Logger:         log,
	}

	return &Container{
		QueryService:   queryService,
		ConfigProvider: cfgLoader,
		HistoryStore:   historyStore,
	}, nil
}
