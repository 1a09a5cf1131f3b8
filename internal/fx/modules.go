package fx

import (
	"lol-insight/internal/api"
	"lol-insight/internal/cache"
	"lol-insight/internal/config"
	"lol-insight/internal/database"
	"lol-insight/internal/logger"
	"lol-insight/internal/repository"
	"lol-insight/internal/server"
	"lol-insight/internal/service"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// The base logger exists only to load config; everything else receives the
// leveled logger.
func applyLogLevel(base zerolog.Logger, cfg *config.Config) zerolog.Logger {
	return logger.WithLevel(base, cfg.LogLevel)
}

var Module = fx.Options(
	fx.Provide(fx.Annotate(logger.New, fx.ResultTags(`name:"base"`))),
	fx.Provide(fx.Annotate(config.Load, fx.ParamTags(`name:"base"`))),
	fx.Provide(fx.Annotate(applyLogLevel, fx.ParamTags(`name:"base"`, ``))),
	fx.Provide(database.New),
	// storage
	fx.Provide(
		fx.Annotate(repository.NewSearchRepository,
			fx.As(fx.Self()),
			fx.As(new(service.SearchRecorder)),
			fx.As(new(server.SearchHistory)),
		),
	),
	fx.Provide(
		fx.Annotate(cache.NewAccountCache,
			fx.As(fx.Self()),
			fx.As(new(service.AccountCache)),
		),
	),
	// api clients
	fx.Provide(fx.Annotate(api.NewRiotClient, fx.As(new(service.RiotAPI)))),
	fx.Provide(fx.Annotate(api.NewCompletionClient, fx.As(new(service.Completer)))),
	// svc
	fx.Provide(service.NewIdentityResolver),
	fx.Provide(service.NewSummonerService),
	fx.Provide(service.NewMatchHistoryService),
	fx.Provide(service.NewPredictor),
	fx.Provide(
		fx.Annotate(service.NewProfileService, fx.As(new(server.ProfileLookup))),
		fx.Annotate(service.NewLiveGameService, fx.As(new(server.LiveGameLookup))),
		fx.Annotate(service.NewNarrator, fx.As(new(server.PerformanceNarrator))),
		fx.Annotate(service.NewTextAnalyzer, fx.As(new(server.TextAnalyzer))),
	),
	// server
	fx.Provide(server.NewInsightServer),
)
