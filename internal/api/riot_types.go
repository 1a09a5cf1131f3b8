package api

type AccountDTO struct {
	Puuid    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

type SummonerDTO struct {
	ID            string `json:"id"`
	Puuid         string `json:"puuid"`
	ProfileIconID int    `json:"profileIconId"`
	SummonerLevel int    `json:"summonerLevel"`
}

type LeagueEntryDTO struct {
	QueueType    string `json:"queueType"`
	Tier         string `json:"tier"`
	Rank         string `json:"rank"`
	LeaguePoints int    `json:"leaguePoints"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
}

type MatchDTO struct {
	Metadata struct {
		MatchID string `json:"matchId"`
	} `json:"metadata"`
	Info MatchInfoDTO `json:"info"`
}

type MatchInfoDTO struct {
	GameDuration int64                 `json:"gameDuration"`
	GameMode     string                `json:"gameMode"`
	Participants []MatchParticipantDTO `json:"participants"`
}

type MatchParticipantDTO struct {
	Puuid        string `json:"puuid"`
	ChampionName string `json:"championName"`
	TeamID       int    `json:"teamId"`
	Win          bool   `json:"win"`
	Kills        int    `json:"kills"`
	Deaths       int    `json:"deaths"`
	Assists      int    `json:"assists"`
}

type ActiveGameDTO struct {
	GameID            int64                  `json:"gameId"`
	GameMode          string                 `json:"gameMode"`
	GameLength        int64                  `json:"gameLength"`
	GameQueueConfigID int                    `json:"gameQueueConfigId"`
	Participants      []ActiveParticipantDTO `json:"participants"`
}

type ActiveParticipantDTO struct {
	Puuid         string `json:"puuid"`
	SummonerID    string `json:"summonerId"`
	SummonerName  string `json:"summonerName"`
	RiotID        string `json:"riotId"`
	ChampionID    int    `json:"championId"`
	TeamID        int    `json:"teamId"`
	Spell1ID      int    `json:"spell1Id"`
	Spell2ID      int    `json:"spell2Id"`
	ProfileIconID int    `json:"profileIconId"`
	Bot           bool   `json:"bot"`
}

// DisplayName prefers the Riot ID, which replaced summonerName upstream.
func (p ActiveParticipantDTO) DisplayName() string {
	if p.RiotID != "" {
		return p.RiotID
	}
	return p.SummonerName
}
