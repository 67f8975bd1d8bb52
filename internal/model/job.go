package model

import (
	"time"

	"github.com/lib/pq"
	"github.com/samber/lo"
)

// EmploymentStatus of a job posting
type EmploymentStatus string

// WorkplaceType of a job posting
type WorkplaceType string

const (
	// EmploymentPartTime is a part-time position
	EmploymentPartTime EmploymentStatus = "PART_TIME"
	// EmploymentFullTime is a full-time position
	EmploymentFullTime EmploymentStatus = "FULL_TIME"

	WorkplaceHybrid WorkplaceType = "hybrid"
	WorkplaceRemote WorkplaceType = "remote"
	WorkplaceOnSite WorkplaceType = "On-site"

	// DefaultOperationType is used when a posting does not say otherwise
	DefaultOperationType = "CREATE"
)

// ApplicationRequirement lists the fields a candidate must fill in.
type ApplicationRequirement struct {
	Name                bool `bson:"name" json:"name"`
	Email               bool `bson:"email" json:"email"`
	Mobile              bool `bson:"mobile" json:"mobile"`
	Linkedin            bool `bson:"linkedin" json:"linkedin"`
	PortfolioWorkSample bool `bson:"portfolioworksample" json:"portfolioworksample"`
}

// EditableJobInfo is the part of a job posting supplied by its author.
type EditableJobInfo struct {
	JobTitle               string                 `gorm:"type:text" bson:"jobTitle" json:"jobTitle" binding:"required"`
	JobDescription         string                 `gorm:"type:text" bson:"jobDescription" json:"jobDescription"`
	TeamDept               string                 `gorm:"type:text" bson:"teamDept" json:"teamDept"`
	Location               string                 `gorm:"type:text" bson:"location" json:"location"`
	JobType                string                 `gorm:"type:text" bson:"jobType" json:"jobType"`
	YrsOfExp               string                 `gorm:"type:text" bson:"yrsOfExp" json:"yrsOfExp"`
	CompanyOverview        string                 `gorm:"type:text" bson:"companyOverview" json:"companyOverview"`
	Qualifications         string                 `gorm:"type:text" bson:"qualifications" json:"qualifications"`
	Deadline               string                 `gorm:"type:text" bson:"deadline" json:"deadline"`
	CoverPhoto             string                 `gorm:"type:text" bson:"coverPhoto,omitempty" json:"coverPhoto,omitempty"`
	ApplicationRequirement ApplicationRequirement `gorm:"embedded;embeddedPrefix:requirement_" bson:"applicationRequirement" json:"applicationRequirement"`
	EmploymentStatus       EmploymentStatus       `gorm:"type:text" bson:"employmentStatus,omitempty" json:"employmentStatus,omitempty" binding:"omitempty,oneof=PART_TIME FULL_TIME"`
	WorkplaceTypes         WorkplaceType          `gorm:"type:text" bson:"workplaceTypes,omitempty" json:"workplaceTypes,omitempty" binding:"omitempty,oneof=hybrid remote On-site"`
	IntegrationContext     string                 `gorm:"type:text" bson:"integrationContext,omitempty" json:"integrationContext,omitempty"`
	CompanyApplyURL        string                 `gorm:"type:text" bson:"companyApplyUrl,omitempty" json:"companyApplyUrl,omitempty"`
	ExternalJobPostingID   string                 `gorm:"type:text" bson:"externalJobPostingId,omitempty" json:"externalJobPostingId,omitempty"`
}

// Job is a job posting owned by one user.
type Job struct {
	ID     string `gorm:"primaryKey;type:text" bson:"_id" json:"_id"`
	Author string `gorm:"type:text;not null;index" bson:"author" json:"author"`

	EditableJobInfo `bson:",inline"`

	ListedAt                int64  `bson:"listedAt" json:"listedAt"`
	JobPostingOperationType string `gorm:"type:text;default:'CREATE'" bson:"jobPostingOperationType" json:"jobPostingOperationType"`

	// ApplicationIDs only grows: applications are pushed, never removed.
	ApplicationIDs pq.StringArray `gorm:"column:applications;type:text[]" bson:"applications" json:"applications"`

	// Applications is filled by populated reads, ordered as ApplicationIDs.
	Applications []Application `gorm:"-" bson:"populatedApplications,omitempty" json:"populatedApplications,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// AttachApplications sets j.Applications from apps in the order of
// j.ApplicationIDs. Ids with no matching application are skipped.
func (j *Job) AttachApplications(apps []Application) {
	byID := lo.KeyBy(apps, func(a Application) string { return a.ID })
	ordered := make([]Application, 0, len(j.ApplicationIDs))
	for _, id := range j.ApplicationIDs {
		if app, ok := byID[id]; ok {
			ordered = append(ordered, app)
		}
	}
	j.Applications = ordered
}
