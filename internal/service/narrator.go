package service

import (
	"context"
	"fmt"
	"strings"

	"lol-insight/internal/api"
	"lol-insight/internal/constants"
	"lol-insight/internal/domain"

	"github.com/rs/zerolog"
)

// Narrator writes coaching commentary for a list of recent matches. On any
// completion failure it answers with FallbackNarration.
type Narrator struct {
	completer Completer
	logger    zerolog.Logger
}

func NewNarrator(completer Completer, logger zerolog.Logger) *Narrator {
	return &Narrator{completer: completer, logger: logger}
}

func (n *Narrator) Narrate(ctx context.Context, summonerName string, matches []domain.MatchSummary) string {
	messages := []api.ChatMessage{
		{Role: "system", Content: narrationSystemPrompt},
		{Role: "user", Content: fmt.Sprintf(narrationUserPrompt, summonerName, DescribeMatches(matches))},
	}

	text, err := n.completer.Complete(ctx, messages, constants.NarrationMaxTokens, constants.NarrationTemperature)
	if err != nil || strings.TrimSpace(text) == "" {
		logFor(ctx, &n.logger).Warn().Err(err).Str("summoner", summonerName).Msg("narration unavailable, using fallback")
		return FallbackNarration
	}
	return text
}

func DescribeMatches(matches []domain.MatchSummary) string {
	if len(matches) == 0 {
		return "No recent matches available."
	}
	var sb strings.Builder
	for i, m := range matches {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%d. %s - %s - KDA %s - %s - %s", i+1, m.Champion, m.Result, m.KDA, m.Duration, m.GameMode)
	}
	return sb.String()
}

// TextAnalyzer runs an arbitrary text through the completion service.
type TextAnalyzer struct {
	completer Completer
	logger    zerolog.Logger
}

func NewTextAnalyzer(completer Completer, logger zerolog.Logger) *TextAnalyzer {
	return &TextAnalyzer{completer: completer, logger: logger}
}

func (a *TextAnalyzer) Analyze(ctx context.Context, text string) string {
	messages := []api.ChatMessage{
		{Role: "user", Content: "Analyze this text: " + text},
	}
	out, err := a.completer.Complete(ctx, messages, constants.AnalysisMaxTokens, constants.AnalysisTemperature)
	if err != nil {
		logFor(ctx, &a.logger).Warn().Err(err).Msg("text analysis failed")
		return analysisErrorPrefix + err.Error()
	}
	return out
}
