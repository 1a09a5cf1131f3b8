package service

const predictionSystemPrompt = `You are a League of Legends analyst. Given two teams with each player's champion and solo queue rank, estimate each team's chance of winning.
Answer with a single JSON object and nothing else:
{"team1_win_chance": <number 0-100>, "team2_win_chance": <number 0-100>, "reasoning": "<two or three sentences>"}
The two chances must add up to 100.`

const predictionUserPrompt = `Team 1 (blue side):
%s

Team 2 (red side):
%s

Which team is more likely to win? Respond in the JSON format described.`

const narrationSystemPrompt = `You are an experienced League of Legends coach. You review a player's recent games and give honest, encouraging, concrete advice.
Keep the answer under 200 words. Mention patterns across games (champion pool, deaths, win streaks) and finish with two or three actionable tips.`

const narrationUserPrompt = `Player: %s

Recent matches:
%s

Analyze this player's recent performance.`

// FallbackNarration is served whenever the completion service cannot answer.
const FallbackNarration = `Analysis is temporarily unavailable, so here are some general tips:
1. Focus on farming: aim for 7+ CS per minute in lane.
2. Ward key objectives and river entrances before dragon and baron spawn.
3. Review your deaths: most come from overextending without vision.
4. Keep a small champion pool and master two or three picks per role.
5. Track summoner spell cooldowns on your lane opponent to find kill windows.`

const (
	predictionAPIErrorReasoning = "Unable to predict: completion API error"
	analysisErrorPrefix         = "Analysis error: "
)
