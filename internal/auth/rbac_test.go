package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk/internal/domain"
)

func TestEnforcerMatrix(t *testing.T) {
	e, err := NewEnforcer()
	require.NoError(t, err)

	tests := []struct {
		role  domain.Role
		obj   string
		act   string
		allow bool
	}{
		{domain.RoleUser, ResourceTickets, ActionRead, true},
		{domain.RoleUser, ResourceTickets, ActionWrite, true},
		{domain.RoleUser, ResourceTickets, ActionDelete, false},
		{domain.RoleUser, ResourceComments, ActionWrite, true},
		{domain.RoleUser, ResourceReports, ActionRead, true},
		{domain.RoleUser, ResourceInventory, ActionRead, true},
		{domain.RoleUser, ResourceInventory, ActionWrite, false},
		{domain.RoleUser, ResourceUsers, ActionRead, false},
		{domain.RoleTechnician, ResourceTickets, ActionDelete, false},
		{domain.RoleTechnician, ResourceInventory, ActionDelete, true},
		{domain.RoleTechnician, ResourceUsers, ActionWrite, false},
		{domain.RoleAdmin, ResourceTickets, ActionDelete, true},
		{domain.RoleAdmin, ResourceUsers, ActionDelete, true},
		{domain.RoleAdmin, ResourceInventory, ActionWrite, true},
		{domain.RoleAdmin, ResourceReports, ActionRead, true},
	}

	for _, tc := range tests {
		allowed, err := e.Allowed(tc.role, tc.obj, tc.act)
		require.NoError(t, err)
		assert.Equal(t, tc.allow, allowed, "%s %s %s", tc.role, tc.act, tc.obj)
	}
}

func TestLoginThrottleFailsOpenWithoutRedis(t *testing.T) {
	throttle := NewLoginThrottle(nil, 3, time.Minute, nil)

	for i := 0; i < 10; i++ {
		throttle.RecordFailure(context.Background(), "a@example.com")
	}
	assert.NoError(t, throttle.Check(context.Background(), "a@example.com"))
	throttle.Reset(context.Background(), "a@example.com")
}
