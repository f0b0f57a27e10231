package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConversationKeyIsDirectionless(t *testing.T) {
	assert.Equal(t, ConversationKey("admin", "u42"), ConversationKey("u42", "admin"))
	assert.Equal(t, "admin_u42", ConversationKey("u42", "admin"))
}
