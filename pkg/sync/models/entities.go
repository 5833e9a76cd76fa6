package models

import "time"

// AllModels returns all GORM models for auto-migration, following the
// teacher's models.AllModels convention.
func AllModels() []any {
	return []any{
		&User{},
		&Card{},
		&CardContent{},
		&CardDeleted{},
		&CardBookmarked{},
		&CardSuspended{},
		&Deck{},
		&ReviewLog{},
		&ReviewLogDeleted{},
		&CardDeck{},
	}
}

// User holds the per-user sequence counter the allocator reserves ranges
// from. Rows are provisioned by the (out-of-scope) identity system; the
// core never creates one.
type User struct {
	ID        string `gorm:"primaryKey;size:64" json:"id"`
	NextSeqNo int64  `gorm:"not null;default:1" json:"next_seq_no"`
}

func (User) TableName() string { return "users" }

// metadata holds the three merge-metadata columns common to every entity
// table: the winning write's timestamp, its writer, and the seqNo it was
// stamped with. Embedded by value so gorm.Model-style tagging stays local
// to each table.
type metadata struct {
	LastModified       time.Time `gorm:"not null" json:"lastModified"`
	LastModifiedClient string    `gorm:"not null;size:255" json:"lastModifiedClient"`
	SeqNo              int64     `gorm:"not null" json:"seqNo"`
}

// Card is the LWW register table for scheduler-owned card fields.
// Keyed (user_id, card_id): every write is scoped to its owning user, and
// per-user client-chosen ids are the only uniqueness guarantee offered
// (see DESIGN.md, "composite key" decision).
type Card struct {
	UserID        string  `gorm:"primaryKey;size:64" json:"userId"`
	CardID        string  `gorm:"primaryKey;size:64" json:"id"`
	Due           int64   `json:"due"`
	Stability     float64 `json:"stability"`
	Difficulty    float64 `json:"difficulty"`
	ElapsedDays   int64   `json:"elapsed_days"`
	ScheduledDays int64   `json:"scheduled_days"`
	Reps          int64   `json:"reps"`
	Lapses        int64   `json:"lapses"`
	State         int     `json:"state"`
	LastReview    int64   `json:"last_review"`
	metadata
}

func (Card) TableName() string { return "cards" }

// CardContent is the LWW register table for user-editable front/back text.
type CardContent struct {
	UserID string `gorm:"primaryKey;size:64" json:"userId"`
	CardID string `gorm:"primaryKey;size:64" json:"cardId"`
	Front  string `json:"front"`
	Back   string `json:"back"`
	metadata
}

func (CardContent) TableName() string { return "card_contents" }

// CardDeleted is the LWW register tombstone table for cards.
type CardDeleted struct {
	UserID  string `gorm:"primaryKey;size:64" json:"userId"`
	CardID  string `gorm:"primaryKey;size:64" json:"cardId"`
	Deleted bool   `json:"deleted"`
	metadata
}

func (CardDeleted) TableName() string { return "card_deleted" }

// CardBookmarked is the LWW register table for the bookmark flag.
type CardBookmarked struct {
	UserID     string `gorm:"primaryKey;size:64" json:"userId"`
	CardID     string `gorm:"primaryKey;size:64" json:"cardId"`
	Bookmarked bool   `json:"bookmarked"`
	metadata
}

func (CardBookmarked) TableName() string { return "card_bookmarked" }

// CardSuspended is the LWW register table for the suspend flag.
type CardSuspended struct {
	UserID    string `gorm:"primaryKey;size:64" json:"userId"`
	CardID    string `gorm:"primaryKey;size:64" json:"cardId"`
	Suspended bool   `json:"suspended"`
	metadata
}

func (CardSuspended) TableName() string { return "card_suspended" }

// Deck is the LWW register table for deck metadata, including its own
// logical-deletion flag.
type Deck struct {
	UserID      string `gorm:"primaryKey;size:64" json:"userId"`
	DeckID      string `gorm:"primaryKey;size:64" json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Deleted     bool   `json:"deleted"`
	metadata
}

func (Deck) TableName() string { return "decks" }

// ReviewLog is the grow-only set table: rows are inserted once and never
// updated, modeling immutable historical review events.
type ReviewLog struct {
	UserID          string  `gorm:"primaryKey;size:64" json:"userId"`
	ReviewLogID     string  `gorm:"primaryKey;size:64" json:"id"`
	CardID          string  `gorm:"index;size:64" json:"cardId"`
	Grade           int     `json:"grade"`
	State           int     `json:"state"`
	Due             int64   `json:"due"`
	Stability       float64 `json:"stability"`
	Difficulty      float64 `json:"difficulty"`
	ElapsedDays     int64   `json:"elapsed_days"`
	LastElapsedDays int64   `json:"last_elapsed_days"`
	ScheduledDays   int64   `json:"scheduled_days"`
	Review          int64   `json:"review"`
	Duration        int64   `json:"duration"`
	metadata
}

func (ReviewLog) TableName() string { return "review_logs" }

// ReviewLogDeleted is the LWW register tombstone table for review logs. It
// is a separate table from ReviewLog itself because review logs are
// grow-only.
type ReviewLogDeleted struct {
	UserID      string `gorm:"primaryKey;size:64" json:"userId"`
	ReviewLogID string `gorm:"primaryKey;size:64" json:"reviewLogId"`
	Deleted     bool   `json:"deleted"`
	metadata
}

func (ReviewLogDeleted) TableName() string { return "review_log_deleted" }

// CardDeck is the counter-backed set table for card-in-deck membership.
// Membership is derived (card ∈ deck iff ClCount is even); the core never
// computes or stores the derived boolean.
type CardDeck struct {
	UserID  string `gorm:"primaryKey;size:64" json:"userId"`
	CardID  string `gorm:"primaryKey;size:64" json:"cardId"`
	DeckID  string `gorm:"primaryKey;size:64" json:"deckId"`
	ClCount int64  `gorm:"not null;default:0" json:"clCount"`
	metadata
}

func (CardDeck) TableName() string { return "card_decks" }

// InDeck reports the read-side derivation of membership from the counter.
func (cd CardDeck) InDeck() bool { return cd.ClCount%2 == 0 }
