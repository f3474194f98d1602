package database

import (
	"time"

	"github.com/uptrace/bun"
)

// User is the database model for a registered account.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           int64     `bun:"id,pk,autoincrement"`
	Email        string    `bun:"email,notnull,unique"`
	Phone        string    `bun:"phone,notnull,unique"`
	Name         string    `bun:"name,notnull"`
	PasswordHash string    `bun:"password_hash,notnull"`
	RegisteredOn time.Time `bun:"registered_on,notnull,nullzero,default:current_timestamp"`
}

// RevokedToken is an append-only record of a token invalidated before its
// natural expiry. The unique index on the token string makes concurrent
// revocations race-safe: at most one insert wins.
type RevokedToken struct {
	bun.BaseModel `bun:"table:revoked_tokens,alias:rt"`

	ID        int64     `bun:"id,pk,autoincrement"`
	Token     string    `bun:"token,notnull,unique"`
	RevokedAt time.Time `bun:"revoked_at,notnull,nullzero,default:current_timestamp"`
}

// Cafeteria is the database model for a user-owned cafeteria.
// Opening hours are minutes from midnight (0..1440).
type Cafeteria struct {
	bun.BaseModel `bun:"table:cafeterias,alias:c"`

	ID           int64     `bun:"id,pk,autoincrement"`
	OwnerID      int64     `bun:"owner_id,notnull"`
	Name         string    `bun:"name,notnull"`
	City         string    `bun:"city,notnull"`
	Address      string    `bun:"address,notnull"`
	Pincode      int       `bun:"pincode,notnull"`
	StartTime    int       `bun:"start_time,notnull"`
	CloseTime    int       `bun:"close_time,notnull"`
	RegisteredOn time.Time `bun:"registered_on,notnull,nullzero,default:current_timestamp"`
}

// AvailabilityWindow is one day's serving window for an item.
// Day follows time.Weekday numbering (0 = Sunday), times are minutes from
// midnight.
type AvailabilityWindow struct {
	Day      int `json:"day"`
	OpensAt  int `json:"opens_at"`
	ClosesAt int `json:"closes_at"`
}

// Item is the database model for a menu item served by a cafeteria.
// AvailableHours holds exactly one window per weekday, stored as jsonb.
type Item struct {
	bun.BaseModel `bun:"table:items,alias:i"`

	ID             int64                `bun:"id,pk,autoincrement"`
	CafeteriaID    int64                `bun:"cafeteria_id,notnull"`
	Name           string               `bun:"name,notnull"`
	AvailableHours []AvailabilityWindow `bun:"available_hours,type:jsonb"`
}
