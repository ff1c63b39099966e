package sessions

import (
	"time"

	"github.com/balaiwarga/dashboard/internal/models"
)

// Session is one staff member's authenticated dashboard session. It carries
// the staff profile and, crucially, the opaque upstream session cookie the
// upstream API set on login — the dashboard replays that cookie on every
// upstream call made on the member's behalf.
type Session struct {
	Token          string      `bson:"_id" json:"token"`
	User           models.User `bson:"user" json:"user"`
	UpstreamCookie string      `bson:"upstreamCookie" json:"upstream_cookie"`
	ExpiresAt      time.Time   `bson:"expiresAt" json:"expires_at"`
	CreatedAt      time.Time   `bson:"createdAt" json:"created_at"`
}
