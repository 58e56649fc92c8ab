package models

import "time"

// User represents a registered account. PartnerID and CoupleID are either
// both nil or both set, and the referenced partner points back at this
// user; only the couple service touches these fields.
type User struct {
	ID                    string     `json:"id"`
	Name                  string     `json:"name"`
	Email                 string     `json:"email"`
	AvatarURL             *string    `json:"avatar_url,omitempty"`
	RelationshipStart     *time.Time `json:"relationship_start,omitempty"`
	InviteCode            *string    `json:"invite_code,omitempty"`
	InviteCodeGeneratedAt *time.Time `json:"invite_code_generated_at,omitempty"`
	PartnerID             *string    `json:"partner_id,omitempty"`
	CoupleID              *string    `json:"couple_id,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
}

// PublicProfile is the subset of a user visible to anyone with the link.
type PublicProfile struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// Couple links two users. The ID is the lexicographic sort of the two
// member IDs joined with "_", so both members derive the same value.
type Couple struct {
	ID        string    `json:"id"`
	User1ID   string    `json:"user1_id"`
	User2ID   string    `json:"user2_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Answer is one user's answer to a daily question, scoped to a couple.
type Answer struct {
	ID       string    `json:"id"`
	CoupleID string    `json:"couple_id"`
	UserID   string    `json:"user_id"`
	Question string    `json:"question"`
	Answer   string    `json:"answer"`
	Date     time.Time `json:"date"`
}

// Wish belongs to its author; shared wishes additionally carry the couple ID.
type Wish struct {
	ID          string     `json:"id"`
	AuthorID    string     `json:"author_id"`
	CoupleID    *string    `json:"couple_id,omitempty"`
	Text        string     `json:"text"`
	IsPersonal  bool       `json:"is_personal"`
	IsCompleted bool       `json:"is_completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Event is a shared calendar entry.
type Event struct {
	ID          string    `json:"id"`
	CoupleID    string    `json:"couple_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
}

// Memory is a photo in the couple's shared album.
type Memory struct {
	ID          string    `json:"id"`
	CoupleID    string    `json:"couple_id"`
	AuthorID    string    `json:"author_id"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
}

// DailyPhoto is the couple's photo of the day.
type DailyPhoto struct {
	ID        string    `json:"id"`
	CoupleID  string    `json:"couple_id"`
	UserID    string    `json:"user_id"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// CoupleStatusActive is the only status a couple row ever carries today.
// Disconnect leaves the row untouched so a re-paired couple gets its
// history back.
const CoupleStatusActive = "active"
