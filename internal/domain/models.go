// Package domain defines the persistence models for misinformation entries,
// contributor profiles, identities and sessions. These types are mapped with
// GORM and form the core data layer of the application.
package domain

import "time"

// Entry is a user-submitted report about a piece of misinformation.
// Entries are hard-deleted; there is no soft deletion.
//
// Fields:
//   - ID: UUID primary key (char(36)), assigned on insert, never changes.
//   - UserID: identity of the submitter; only this user may mutate the row.
//   - TopicOrPerson: who or what the report is about.
//   - ShortDescription: one-line summary shown in lists.
//   - URL: link to the original source.
//   - Details: free-form Markdown body.
//   - CreatedAt: insertion time; lists are ordered by it, newest first.
//   - UpdatedAt: refreshed by GORM on every update.
type Entry struct {
	ID               string    `json:"id"                gorm:"type:char(36);primaryKey"`
	UserID           string    `json:"user_id"           gorm:"type:varchar(64);not null;index:idx_entries_user"`
	TopicOrPerson    string    `json:"topic_or_person"   gorm:"type:varchar(255);not null;check:chk_entries_topic,topic_or_person <> ''"`
	ShortDescription string    `json:"short_description" gorm:"type:text;not null;check:chk_entries_desc,short_description <> ''"`
	URL              string    `json:"url"               gorm:"type:text;not null;check:chk_entries_url,url <> ''"`
	Details          string    `json:"details"           gorm:"type:text;not null;check:chk_entries_details,details <> ''"`
	CreatedAt        time.Time `json:"created_at"        gorm:"index:idx_entries_created"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TableName returns the database table name for Entry.
func (Entry) TableName() string { return "fake_news_entries" }

// Profile holds the public alias of an identity. There is at most one
// profile per user, created lazily after the first sign-in.
//
// AliasKey is the value uniqueness is enforced on: the alias itself, or its
// case fold when aliases are compared case-insensitively.
type Profile struct {
	UserID    string    `json:"user_id"    gorm:"type:varchar(64);primaryKey"`
	Alias     string    `json:"alias"      gorm:"type:varchar(128);not null"`
	AliasKey  string    `json:"-"          gorm:"type:varchar(128);not null;uniqueIndex:ux_profiles_alias_key"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for Profile.
func (Profile) TableName() string { return "profiles" }

// User is a local identity bound to an external OAuth account.
type User struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	Provider  string    `json:"provider"   gorm:"type:varchar(32);not null;uniqueIndex:ux_users_provider_subject,priority:1"`
	Subject   string    `json:"-"          gorm:"type:varchar(255);not null;uniqueIndex:ux_users_provider_subject,priority:2"`
	Email     string    `json:"email"      gorm:"type:varchar(255)"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Session is the server-side record behind a signed session token. The
// token's jti is the primary key, so revoking the row invalidates the token.
type Session struct {
	ID        string     `gorm:"type:char(36);primaryKey"`
	UserID    string     `gorm:"type:char(36);not null;index"`
	ExpiresAt time.Time  `gorm:"not null;index"`
	RevokedAt *time.Time `gorm:"index"`
	CreatedAt time.Time
}

// TableName returns the database table name for Session.
func (Session) TableName() string { return "sessions" }

// Active reports whether the session is usable at time now.
func (s Session) Active(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}

// Contributor is one leaderboard row.
type Contributor struct {
	Alias      string `json:"alias"`
	EntryCount int64  `json:"entry_count"`
}
