package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemory_Conformance(t *testing.T) {
	Run(t, NewMemory())
}

func TestMemory_Fault(t *testing.T) {
	m := NewMemory()
	boom := errors.New("boom")
	m.Fault = func(op string) error {
		if op == "CountComments" {
			return boom
		}
		return nil
	}

	_, err := m.CountComments(context.Background(), "")
	assert.ErrorIs(t, err, boom)
	_, err = m.ListPostedJobs(context.Background(), "")
	assert.NoError(t, err)
}
