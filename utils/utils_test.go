package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUTCNow(t *testing.T) {
	now := UTCNow()
	assert.Equal(t, time.UTC, now.Location())
	assert.WithinDuration(t, time.Now(), now, time.Second)
}

func TestToPtr(t *testing.T) {
	v := 0
	p := ToPtr(v)
	*p = 5
	assert.Equal(t, 0, v)
	assert.False(t, *ToPtr(false))
}
