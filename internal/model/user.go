// Package model contain the records persisted by both storage backends.
// Every type carries json tags for the API, bson tags for mongo documents
// and gorm tags for postgres tables.
package model

import (
	"time"

	"github.com/lib/pq"
)

// User is a reviewer/recruiter account. Identity is issued outside of
// LynxATS, so ID is the external identity provider's id.
type User struct {
	ID        string `gorm:"primaryKey;type:text" bson:"_id" json:"_id"`
	Username  string `gorm:"type:text;uniqueIndex" bson:"username" json:"username" binding:"required"`
	Name      string `gorm:"type:text" bson:"name" json:"name"`
	Image     string `gorm:"type:text" bson:"image,omitempty" json:"image,omitempty"`
	Bio       string `gorm:"type:text" bson:"bio,omitempty" json:"bio,omitempty"`
	Onboarded bool   `gorm:"default:false" bson:"onboarded" json:"onboarded"`

	// PostedJobs holds ids of jobs authored by this user, in creation order.
	PostedJobs pq.StringArray `gorm:"column:posted_jobs;type:text[]" bson:"postedJobs" json:"postedJobs"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
