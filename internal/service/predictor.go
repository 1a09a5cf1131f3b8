package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"lol-insight/internal/api"
	"lol-insight/internal/constants"
	"lol-insight/internal/domain"

	"github.com/rs/zerolog"
)

// Predictor asks the completion service which live team is favoured. It
// always returns a Prediction.
type Predictor struct {
	completer Completer
	logger    zerolog.Logger
}

func NewPredictor(completer Completer, logger zerolog.Logger) *Predictor {
	return &Predictor{completer: completer, logger: logger}
}

func (p *Predictor) Predict(ctx context.Context, team1, team2 []domain.LiveParticipant) domain.Prediction {
	messages := []api.ChatMessage{
		{Role: "system", Content: predictionSystemPrompt},
		{Role: "user", Content: fmt.Sprintf(predictionUserPrompt, DescribeTeam(team1), DescribeTeam(team2))},
	}

	text, err := p.completer.Complete(ctx, messages, constants.PredictionMaxTokens, constants.PredictionTemperature)
	if err != nil {
		logFor(ctx, &p.logger).Warn().Err(err).Msg("prediction request failed, using even odds")
		return evenOdds(predictionAPIErrorReasoning)
	}

	parsed := ParsePrediction(text)
	if !parsed.Parsed {
		logFor(ctx, &p.logger).Debug().Str("raw", text).Msg("prediction response was not json")
	}
	return parsed.Value()
}

// DescribeTeam renders one line per player for the prompt.
func DescribeTeam(team []domain.LiveParticipant) string {
	if len(team) == 0 {
		return "- (no players)"
	}
	var sb strings.Builder
	for i, pl := range team {
		if i > 0 {
			sb.WriteByte('\n')
		}
		name := pl.SummonerName
		if pl.IsBot {
			name += " [bot]"
		}
		fmt.Fprintf(&sb, "- %s playing %s, rank %s, %dW/%dL",
			name, pl.ChampionName, pl.Rank.Label(), pl.Rank.Wins, pl.Rank.Losses)
	}
	return sb.String()
}

// PredictionParse is either a parsed Prediction or the raw text that could
// not be parsed.
type PredictionParse struct {
	Parsed     bool
	Prediction domain.Prediction
	Raw        string
}

// Value returns the parsed prediction, or even odds with the raw text as reasoning.
func (r PredictionParse) Value() domain.Prediction {
	if r.Parsed {
		return r.Prediction
	}
	return evenOdds(r.Raw)
}

type predictionJSON struct {
	Team1WinChance *float64 `json:"team1_win_chance"`
	Team2WinChance *float64 `json:"team2_win_chance"`
	Reasoning      string   `json:"reasoning"`
}

// ParsePrediction scrapes the span from the first '{' to the last '}' out of
// free text and decodes it. Both win chances must be present.
func ParsePrediction(text string) PredictionParse {
	unparsed := PredictionParse{Raw: text}

	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end <= start {
		return unparsed
	}

	var pj predictionJSON
	if err := json.Unmarshal([]byte(text[start:end+1]), &pj); err != nil {
		return unparsed
	}
	if pj.Team1WinChance == nil || pj.Team2WinChance == nil {
		return unparsed
	}

	return PredictionParse{
		Parsed: true,
		Prediction: domain.Prediction{
			Team1WinChance: *pj.Team1WinChance,
			Team2WinChance: *pj.Team2WinChance,
			Reasoning:      pj.Reasoning,
		},
		Raw: text,
	}
}

func evenOdds(reasoning string) domain.Prediction {
	return domain.Prediction{
		Team1WinChance: constants.DefaultWinChance,
		Team2WinChance: constants.DefaultWinChance,
		Reasoning:      reasoning,
	}
}
