package model

import (
	"time"

	"github.com/lib/pq"
)

// Application is a candidate's submission to a job posting.
// Document links (resume, passport, ...) are URLs to externally hosted files.
type Application struct {
	ID                  string `gorm:"primaryKey;type:text" bson:"_id" json:"_id"`
	Name                string `gorm:"type:text" bson:"name" json:"name" binding:"required"`
	Email               string `gorm:"type:text" bson:"email" json:"email" binding:"required,email"`
	Mobile              string `gorm:"type:text" bson:"mobile,omitempty" json:"mobile,omitempty"`
	Linkedin            string `gorm:"type:text" bson:"linkedin,omitempty" json:"linkedin,omitempty"`
	Resume              string `gorm:"type:text" bson:"resume,omitempty" json:"resume,omitempty"`
	Passport            string `gorm:"type:text" bson:"passport,omitempty" json:"passport,omitempty"`
	YearsOfExperience   string `gorm:"type:text" bson:"yearsofexperience,omitempty" json:"yearsofexperience,omitempty"`
	PortfolioWorkSample string `gorm:"type:text" bson:"portfolioworksample,omitempty" json:"portfolioworksample,omitempty"`
	CoverLetter         string `gorm:"type:text" bson:"coverletter,omitempty" json:"coverletter,omitempty"`
	Attachments         string `gorm:"type:text" bson:"attachments,omitempty" json:"attachments,omitempty"`
	Video               string `gorm:"type:text" bson:"video,omitempty" json:"video,omitempty"`

	// NoteAndFeedBack holds ids of comments left by reviewers.
	NoteAndFeedBack pq.StringArray `gorm:"column:note_and_feed_back;type:text[]" bson:"noteAndFeedBack" json:"noteAndFeedBack"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
