package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNextProjectID(t *testing.T) {
	require.Equal(t, 1, NextProjectID(nil))
	require.Equal(t, 1, NextProjectID([]Project{}))
	require.Equal(t, 8, NextProjectID([]Project{{ID: 3}, {ID: 7}, {ID: 1}}))
}

func TestNextTeamMemberID(t *testing.T) {
	require.Equal(t, 1, NextTeamMemberID(nil))
	require.Equal(t, 5, NextTeamMemberID([]TeamMember{{ID: 4}, {ID: 2}}))
}

func TestNewMessage(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	msg := NewMessage("Ana", "+351 900 000 000", "Hello", now)

	require.Equal(t, now.UnixMilli(), msg.ID)
	require.Equal(t, "Ana", msg.Name)
	require.Equal(t, "+351 900 000 000", msg.Phone)
	require.Equal(t, "Hello", msg.Message)
	require.Equal(t, "2025-06-01T12:30:00Z", msg.CreatedAt)
}
