package auth

import (
	log "github.com/sirupsen/logrus"
)

// Attempt outcomes
const (
	StatusSuccess = "Success"
	StatusFail    = "Fail"
)

// LogAttempt records an authentication attempt. identifier is a user id
// or client address; message is optional.
func LogAttempt(status, identifier, message string) {
	entry := log.WithFields(log.Fields{
		"auth":       "bearer",
		"status":     status,
		"identifier": identifier,
	})
	if status == StatusSuccess {
		entry.Debug(message)
		return
	}
	entry.Warn(message)
}
