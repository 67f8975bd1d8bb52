// Package controller holds what the resource controllers share.
package controller

// BoardInvalidator drops a viewer's cached dashboard after a write that
// changes what the viewer would see.
type BoardInvalidator interface {
	Forget(viewerID string)
}
