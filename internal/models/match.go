package models

// MatchStatusNotStarted marks a fixture that has not kicked off yet; only
// these accept bets.
const MatchStatusNotStarted = "NS"

// Match is the subset of a fixture document needed to validate bets. Matches
// are keyed by the provider's numeric fixture ID.
type Match struct {
	ID         int    `bson:"_id" json:"id"`
	HomeTeam   string `bson:"homeTeam" json:"homeTeam"`
	AwayTeam   string `bson:"awayTeam" json:"awayTeam"`
	League     string `bson:"league" json:"league"`
	Status     string `bson:"status" json:"status"`
	Timestamp  int64  `bson:"timestamp" json:"timestamp"`
	IsFinished bool   `bson:"isFinished" json:"isFinished"`
}
