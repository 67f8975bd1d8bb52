package model

import "github.com/google/uuid"

// MigrateAble is array of model instance, use for migrating database
var MigrateAble []interface{}

// Collections names the five top-level collections, in dependency order.
var Collections = []string{"users", "jobs", "applications", "comments", "interviews"}

func init() {
	MigrateAble = append(
		MigrateAble,
		&User{},
		&Job{},
		&Application{},
		&Comment{},
		&Interview{},
	)
}

// NewID returns a fresh record id.
func NewID() string {
	return uuid.NewString()
}
