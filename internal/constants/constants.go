package constants

import "time"

const (
	ExternalAPITimeout   = 10 * time.Second
	CompletionAPITimeout = 60 * time.Second
	DatabaseTimeout      = 5 * time.Second
	RequestTimeout       = 90 * time.Second
)

// SQLite has a single writer; the open-connection cap comes from DB_MAX_OPEN_CONNS.
const (
	DBMaxIdleConns    = 2
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	ShutdownTimeout = 5 * time.Second
)

// match history policy
const (
	MatchIDCount       = 10
	MatchDetailLimit   = 5
	SoloQueueType      = "RANKED_SOLO_5x5"
	BlueTeamID         = 100
	RedTeamID          = 200
	DefaultWinChance   = 50.0
	MaxRequestBodySize = 1 << 20
)

const (
	RecentSearchLimit     = 5
	SearchSuggestionLimit = 10
)

const (
	PredictionMaxTokens   = 500
	PredictionTemperature = 0.3
	NarrationMaxTokens    = 1000
	NarrationTemperature  = 0.7
	AnalysisMaxTokens     = 1000
	AnalysisTemperature   = 0.7
)
