package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"lol-insight/internal/constants"
	"lol-insight/internal/domain"

	"github.com/rs/zerolog"
)

type ProfileLookup interface {
	Lookup(ctx context.Context, riotID string) (*domain.Profile, error)
}

type LiveGameLookup interface {
	Lookup(ctx context.Context, riotID string) (domain.LiveGame, error)
}

type PerformanceNarrator interface {
	Narrate(ctx context.Context, summonerName string, matches []domain.MatchSummary) string
}

type TextAnalyzer interface {
	Analyze(ctx context.Context, text string) string
}

type SearchHistory interface {
	Recent(ctx context.Context, limit int) ([]domain.RecentSearch, error)
	Search(ctx context.Context, query string, limit int) ([]domain.RecentSearch, error)
}

type InsightServer struct {
	profiles ProfileLookup
	live     LiveGameLookup
	narrator PerformanceNarrator
	analyzer TextAnalyzer
	history  SearchHistory
	logger   zerolog.Logger
}

func NewInsightServer(profiles ProfileLookup, live LiveGameLookup, narrator PerformanceNarrator, analyzer TextAnalyzer, history SearchHistory, logger zerolog.Logger) *InsightServer {
	return &InsightServer{
		profiles: profiles,
		live:     live,
		narrator: narrator,
		analyzer: analyzer,
		history:  history,
		logger:   logger,
	}
}

// Routes answers every request with JSON, including the ones ServeMux itself
// would reject.
func (s *InsightServer) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.Health)
	mux.HandleFunc("GET /api/summoner/{$}", s.MissingRiotID)
	mux.HandleFunc("GET /api/summoner/{riotId}", s.GetSummoner)
	mux.HandleFunc("POST /api/analyze-performance", s.AnalyzePerformance)
	mux.HandleFunc("GET /api/live-game/{$}", s.MissingRiotID)
	mux.HandleFunc("GET /api/live-game/{riotId}", s.GetLiveGame)
	mux.HandleFunc("GET /api/recent-searches", s.RecentSearches)
	mux.HandleFunc("GET /api/search", s.SearchSuggestions)
	mux.HandleFunc("POST /analyze", s.AnalyzeText)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, pattern := mux.Handler(r)
		if pattern != "" {
			mux.ServeHTTP(w, r)
			return
		}

		// No route: run ServeMux's own fallback only to learn 404 vs 405.
		rec := &discardWriter{header: http.Header{}, status: http.StatusOK}
		h.ServeHTTP(rec, r)
		if rec.status == http.StatusMethodNotAllowed {
			if allow := rec.header.Get("Allow"); allow != "" {
				w.Header().Set("Allow", allow)
			}
			writeJSON(w, http.StatusMethodNotAllowed, errorBody("Method not allowed"))
			return
		}
		writeJSON(w, http.StatusNotFound, errorBody("Not found"))
	})
}

type discardWriter struct {
	header http.Header
	status int
}

func (d *discardWriter) Header() http.Header         { return d.header }
func (d *discardWriter) Write(b []byte) (int, error) { return len(b), nil }
func (d *discardWriter) WriteHeader(code int)        { d.status = code }

func (s *InsightServer) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

type summonerJSON struct {
	RiotID        string `json:"riotId"`
	GameName      string `json:"gameName"`
	TagLine       string `json:"tagLine"`
	Puuid         string `json:"puuid"`
	SummonerID    string `json:"summonerId,omitempty"`
	Level         int    `json:"level"`
	ProfileIconID int    `json:"profileIconId"`
}

type profileResponse struct {
	Summoner      summonerJSON          `json:"summoner"`
	Ranked        domain.RankedEntry    `json:"ranked"`
	RecentMatches []domain.MatchSummary `json:"recentMatches"`
}

// MissingRiotID handles the lookup routes called without an identifier.
func (s *InsightServer) MissingRiotID(w http.ResponseWriter, r *http.Request) {
	s.writeError(w, r, domain.ErrMalformedIdentifier)
}

func (s *InsightServer) GetSummoner(w http.ResponseWriter, r *http.Request) {
	profile, err := s.profiles.Lookup(r.Context(), r.PathValue("riotId"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	matches := profile.RecentMatches
	if matches == nil {
		matches = []domain.MatchSummary{}
	}

	writeJSON(w, http.StatusOK, profileResponse{
		Summoner: summonerJSON{
			RiotID:        profile.Account.RiotID(),
			GameName:      profile.Account.GameName,
			TagLine:       profile.Account.TagLine,
			Puuid:         profile.Account.Puuid,
			SummonerID:    profile.Summoner.SummonerID,
			Level:         profile.Summoner.SummonerLevel,
			ProfileIconID: profile.Summoner.ProfileIconID,
		},
		Ranked:        profile.Ranked,
		RecentMatches: matches,
	})
}

// analyzePerformanceRequest accepts camelCase keys and the snake_case keys
// sent by the bundled web client; camelCase wins when both are present.
type analyzePerformanceRequest struct {
	SummonerName      string                `json:"summonerName"`
	MatchHistory      []domain.MatchSummary `json:"matchHistory"`
	SummonerNameSnake string                `json:"summoner_name"`
	MatchHistorySnake []domain.MatchSummary `json:"match_history"`
}

func (r analyzePerformanceRequest) name() string {
	if strings.TrimSpace(r.SummonerName) != "" {
		return r.SummonerName
	}
	return r.SummonerNameSnake
}

func (r analyzePerformanceRequest) matches() []domain.MatchSummary {
	if r.MatchHistory != nil {
		return r.MatchHistory
	}
	return r.MatchHistorySnake
}

func (s *InsightServer) AnalyzePerformance(w http.ResponseWriter, r *http.Request) {
	var req analyzePerformanceRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("Invalid JSON body"))
		return
	}
	name := req.name()
	if strings.TrimSpace(name) == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("Summoner name is required"))
		return
	}

	analysis := s.narrator.Narrate(r.Context(), name, req.matches())
	writeJSON(w, http.StatusOK, map[string]string{"analysis": analysis})
}

func (s *InsightServer) GetLiveGame(w http.ResponseWriter, r *http.Request) {
	game, err := s.live.Lookup(r.Context(), r.PathValue("riotId"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, game)
}

func (s *InsightServer) RecentSearches(w http.ResponseWriter, r *http.Request) {
	searches, err := s.history.Recent(r.Context(), constants.RecentSearchLimit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"searches": searches})
}

func (s *InsightServer) SearchSuggestions(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeJSON(w, http.StatusOK, map[string]any{"suggestions": []domain.RecentSearch{}})
		return
	}

	suggestions, err := s.history.Search(r.Context(), query, constants.SearchSuggestionLimit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"suggestions": suggestions})
}

type analyzeTextRequest struct {
	Text string `json:"text"`
}

func (s *InsightServer) AnalyzeText(w http.ResponseWriter, r *http.Request) {
	var req analyzeTextRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("Invalid JSON body"))
		return
	}
	if req.Text == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("No text provided"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"original_text": req.Text,
		"analysis":      s.analyzer.Analyze(r.Context(), req.Text),
		"status":        "success",
	})
}

// statusFor maps the error taxonomy onto HTTP statuses.
func statusFor(err error) (int, string) {
	var upstream *domain.UpstreamError
	switch {
	case errors.Is(err, domain.ErrMalformedIdentifier):
		return http.StatusBadRequest, "Invalid Riot ID format, expected name#tag"
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound, "Account not found"
	case errors.Is(err, domain.ErrSummonerNotFound):
		return http.StatusNotFound, "Summoner not found"
	case errors.Is(err, domain.ErrNotConfigured):
		return http.StatusServiceUnavailable, "Riot API is not configured"
	case errors.Is(err, domain.ErrUpstreamTimeout), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "Upstream API timed out"
	case errors.As(err, &upstream):
		return http.StatusBadGateway, "Upstream API error"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func (s *InsightServer) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := statusFor(err)
	log := zerolog.Ctx(r.Context())
	if log.GetLevel() == zerolog.Disabled {
		log = &s.logger
	}
	ev := log.Warn()
	if status >= http.StatusInternalServerError {
		ev = log.Error()
	}
	ev.Err(err).Int("status", status).Str("path", r.URL.Path).Msg("request failed")
	writeJSON(w, status, errorBody(msg))
}

func errorBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxRequestBodySize)
	return json.NewDecoder(r.Body).Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
