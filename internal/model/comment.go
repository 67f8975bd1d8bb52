package model

import "time"

// Comment is reviewer feedback on an application.
// Sender is a user id, Receiver an application id; both are required.
type Comment struct {
	ID       string `gorm:"primaryKey;type:text" bson:"_id" json:"_id"`
	Content  string `gorm:"type:text;not null" bson:"content" json:"content" binding:"required"`
	Sender   string `gorm:"type:text;not null;index" bson:"sender" json:"sender"`
	Receiver string `gorm:"type:text;not null;index" bson:"receiver" json:"receiver"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
