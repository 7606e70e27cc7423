package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoginToken_UsedAndExpired(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	tok := &LoginToken{Expires: now.Add(time.Minute)}
	assert.False(t, tok.Used())
	assert.False(t, tok.Expired(now))
	assert.True(t, tok.Expired(now.Add(time.Minute)))

	tok.UsedAt = &now
	assert.True(t, tok.Used())
}
