package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// PlayerIdentifier is a Riot ID split into its two halves.
type PlayerIdentifier struct {
	GameName string
	TagLine  string
}

// ParseIdentifier splits "gameName#tagLine" on the first '#'.
func ParseIdentifier(raw string) (PlayerIdentifier, error) {
	gameName, tagLine, ok := strings.Cut(strings.TrimSpace(raw), "#")
	if !ok {
		return PlayerIdentifier{}, fmt.Errorf("%w: %q has no '#'", ErrMalformedIdentifier, raw)
	}
	if gameName == "" || tagLine == "" {
		return PlayerIdentifier{}, fmt.Errorf("%w: %q has an empty name or tag", ErrMalformedIdentifier, raw)
	}
	// "." and ".." survive path escaping and would be resolved as dot segments upstream.
	if isDotSegment(gameName) || isDotSegment(tagLine) {
		return PlayerIdentifier{}, fmt.Errorf("%w: %q has a dot-only name or tag", ErrMalformedIdentifier, raw)
	}
	return PlayerIdentifier{GameName: gameName, TagLine: tagLine}, nil
}

func isDotSegment(s string) bool {
	return s == "." || s == ".."
}

func (p PlayerIdentifier) String() string {
	return p.GameName + "#" + p.TagLine
}

type Account struct {
	Puuid    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

func (a Account) RiotID() string {
	return a.GameName + "#" + a.TagLine
}

type SummonerProfile struct {
	Puuid         string
	SummonerLevel int
	ProfileIconID int
	SummonerID    string // empty when upstream omits it
}

type RankedEntry struct {
	Tier         string `json:"tier"`
	Rank         string `json:"rank"`
	LeaguePoints int    `json:"leaguePoints"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
	QueueType    string `json:"queueType,omitempty"`
}

const UnrankedTier = "UNRANKED"

func UnrankedEntry() RankedEntry {
	return RankedEntry{Tier: UnrankedTier}
}

func (r RankedEntry) Label() string {
	if r.Rank == "" {
		return r.Tier
	}
	return fmt.Sprintf("%s %s (%d LP)", r.Tier, r.Rank, r.LeaguePoints)
}

const (
	ResultVictory = "Victory"
	ResultDefeat  = "Defeat"
)

type MatchSummary struct {
	Champion string `json:"champion"`
	Result   string `json:"result"`
	KDA      string `json:"kda"`
	Duration string `json:"duration"`
	GameMode string `json:"gameMode"`
}

type LiveParticipant struct {
	SummonerName  string      `json:"summonerName"`
	ChampionID    int         `json:"championId"`
	ChampionName  string      `json:"championName"`
	TeamID        int         `json:"teamId"`
	Spells        []int       `json:"spells"`
	IsBot         bool        `json:"isBot"`
	Puuid         string      `json:"puuid"`
	ProfileIconID int         `json:"profileIconId"`
	SummonerLevel int         `json:"summonerLevel"`
	Rank          RankedEntry `json:"rank"`
}

type LiveGame struct {
	InGame            bool              `json:"inGame"`
	GameMode          string            `json:"gameMode"`
	GameLength        int64             `json:"gameLength"`
	GameQueueConfigID int               `json:"gameQueueConfigId"`
	Team1             []LiveParticipant `json:"team1"`
	Team2             []LiveParticipant `json:"team2"`
	Prediction        Prediction        `json:"prediction"`
}

// MarshalJSON renders a game that is not in progress as {"inGame":false}.
func (g LiveGame) MarshalJSON() ([]byte, error) {
	if !g.InGame {
		return []byte(`{"inGame":false}`), nil
	}
	type alias LiveGame
	a := alias(g)
	if a.Team1 == nil {
		a.Team1 = []LiveParticipant{}
	}
	if a.Team2 == nil {
		a.Team2 = []LiveParticipant{}
	}
	return json.Marshal(a)
}

type Prediction struct {
	Team1WinChance float64 `json:"team1_win_chance"`
	Team2WinChance float64 `json:"team2_win_chance"`
	Reasoning      string  `json:"reasoning"`
}

// Profile is the merged payload served for a Riot ID lookup.
type Profile struct {
	Account       Account
	Summoner      SummonerProfile
	Ranked        RankedEntry
	RecentMatches []MatchSummary
}

type RecentSearch struct {
	ID         string    `json:"id"`
	GameName   string    `json:"gameName"`
	TagLine    string    `json:"tagLine"`
	Puuid      string    `json:"puuid"`
	SearchedAt time.Time `json:"searchedAt"`
}
