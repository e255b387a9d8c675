package domain

import "time"

// Level is the tier label derived from a fan's point total. It is never set
// independently of Points; every points mutation recomputes it.
type Level string

const (
	LevelBeginner  Level = "Beginner"
	LevelVeteran   Level = "Veteran"
	LevelLegendary Level = "Legendary"
)

// FavoriteMode is the fan's preferred competitive scene.
type FavoriteMode string

const (
	ModeGames    FavoriteMode = "games"
	ModeFootball FavoriteMode = "football"
)

// FanProfile is a value snapshot of a fan's progression state. The engine
// operates on snapshots and returns updated copies; the store owns persistence.
type FanProfile struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Email           string       `json:"email"`
	FavoriteMode    FavoriteMode `json:"favoriteMode"`
	Points          int          `json:"points"`
	Level           Level        `json:"level"`
	InSweepstakes   bool         `json:"inSweepstakes"`
	LastQuizAttempt *time.Time   `json:"lastQuizAttempt,omitempty"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}

// AnswerSubmission models one answered question from a completed quiz run.
type AnswerSubmission struct {
	QuestionID string `json:"questionId"`
	OptionID   string `json:"optionId"`
}

// AnswerResult reports how a single question was scored.
type AnswerResult struct {
	QuestionID string `json:"questionId"`
	Correct    bool   `json:"correct"`
	Awarded    int    `json:"awarded"`
}

// QuizOutcome is the structured result handed to the presentation layer after
// an accepted quiz completion. The service returns data, never formatted text.
type QuizOutcome struct {
	QuizID             string         `json:"quizId"`
	Correct            int            `json:"correct"`
	Total              int            `json:"total"`
	PointsAwarded      int            `json:"pointsAwarded"`
	TotalPoints        int            `json:"totalPoints"`
	PreviousLevel      Level          `json:"previousLevel"`
	Level              Level          `json:"level"`
	LeveledUp          bool           `json:"leveledUp"`
	EnteredSweepstakes bool           `json:"enteredSweepstakes"`
	AttemptDate        time.Time      `json:"attemptDate"`
	Results            []AnswerResult `json:"results"`
}

// Option represents a possible answer for a question.
type Option struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

// Question models an MCQ question with exactly one correct option.
type Question struct {
	ID      string   `json:"id"`
	Prompt  string   `json:"prompt"`
	Options []Option `json:"options"`
	Points  int      `json:"points"` // zero means "use the service default"
}

// Quiz is a collection of questions.
type Quiz struct {
	ID        string     `json:"id"`
	Questions []Question `json:"questions"`
}

// RankingEntry is one row of the points leaderboard.
type RankingEntry struct {
	Rank   int    `json:"rank"`
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Points int    `json:"points"`
	Level  Level  `json:"level"`
}

// Leaderboard captures the ordered points ranking across all fans.
type Leaderboard struct {
	Entries   []RankingEntry `json:"entries"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// Prize is a redeemable reward from the catalog.
type Prize struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	RequiredPoints int    `json:"requiredPoints"`
}

// PrizeEligibility pairs a prize with whether the fan's balance covers it.
type PrizeEligibility struct {
	Prize         Prize `json:"prize"`
	Redeemable    bool  `json:"redeemable"`
	PointsMissing int   `json:"pointsMissing"`
}

// Rarity grades collectible cards.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityLegendary Rarity = "legendary"
)

// Card is a collectible unlocked by reaching a point total.
type Card struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Rarity         Rarity `json:"rarity"`
	PointsToUnlock int    `json:"pointsToUnlock"`
}

// CardAccess pairs a card with whether the fan has unlocked it.
type CardAccess struct {
	Card     Card `json:"card"`
	Unlocked bool `json:"unlocked"`
}
