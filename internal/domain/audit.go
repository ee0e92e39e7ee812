package domain

import "time"

type ActivityType string

const (
	ActivityTypeRequest  ActivityType = "REQUEST"
	ActivityTypePayment  ActivityType = "PAYMENT"
	ActivityTypeSchedule ActivityType = "SCHEDULE"
	ActivityTypeRelease  ActivityType = "RELEASE"
	ActivityTypeClaim    ActivityType = "CLAIM"
	ActivityTypeReject   ActivityType = "REJECT"
	ActivityTypeCatalog  ActivityType = "CATALOG"
	ActivityTypeAuth     ActivityType = "AUTH"
)

// AuditLogEntry is one row in the append-only activity log. All roles share
// a single table; ActorRole is the discriminator.
type AuditLogEntry struct {
	ID           int64        `json:"id"`
	ActorID      int32        `json:"actor_id"`
	ActorRole    ActorRole    `json:"actor_role"`
	Activity     string       `json:"activity"`
	ActivityType ActivityType `json:"activity_type"`
	CreatedAt    time.Time    `json:"created_at"`
}
