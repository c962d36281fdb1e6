package models

import "time"

const (
	VoteTypeUp   = "upvote"
	VoteTypeDown = "downvote"
)

// Vote model - one permanent row per (policy, user) pair, enforced by the
// composite unique index so concurrent double-votes cannot both commit.
type Vote struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	PolicyID  int       `gorm:"uniqueIndex:idx_votes_policy_user" json:"policy_id"`
	UserID    int       `gorm:"uniqueIndex:idx_votes_policy_user" json:"user_id"`
	VoteType  string    `gorm:"not null" json:"vote_type"`
	CreatedAt time.Time `json:"created_at"`
}
