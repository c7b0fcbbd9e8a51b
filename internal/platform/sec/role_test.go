// Copyright (c) 2026 Revio. All rights reserved.
// Author: quang.dm.vn@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quangdm/revio/internal/platform/sec"
)

/*
TestUserRole_AtLeast verifies that the role hierarchy is cumulative: every
role carries the powers of the roles below it.
*/
func TestUserRole_AtLeast(t *testing.T) {
	tests := []struct {
		name   string
		role   sec.UserRole
		target sec.UserRole
		want   bool
	}{
		{"admin_is_admin", sec.RoleAdmin, sec.RoleAdmin, true},
		{"admin_is_moderator", sec.RoleAdmin, sec.RoleModerator, true},
		{"admin_is_user", sec.RoleAdmin, sec.RoleUser, true},
		{"moderator_is_moderator", sec.RoleModerator, sec.RoleModerator, true},
		{"moderator_is_user", sec.RoleModerator, sec.RoleUser, true},
		{"moderator_is_not_admin", sec.RoleModerator, sec.RoleAdmin, false},
		{"user_is_user", sec.RoleUser, sec.RoleUser, true},
		{"user_is_not_moderator", sec.RoleUser, sec.RoleModerator, false},
		{"unknown_role_has_no_rank", sec.UserRole("wizard"), sec.RoleUser, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.AtLeast(tt.target))
		})
	}
}

/*
TestUserRole_Checks exercises the named role predicates.
*/
func TestUserRole_Checks(t *testing.T) {
	assert.True(t, sec.RoleAdmin.IsAdmin())
	assert.True(t, sec.RoleAdmin.IsModerator())
	assert.True(t, sec.RoleModerator.IsModerator())

	assert.False(t, sec.RoleModerator.IsAdmin())
	assert.False(t, sec.RoleUser.IsModerator())
	assert.False(t, sec.RoleUser.IsAdmin())
}

/*
TestUserRole_Valid verifies role validation for admin-supplied values.
*/
func TestUserRole_Valid(t *testing.T) {
	assert.True(t, sec.RoleUser.Valid())
	assert.True(t, sec.RoleModerator.Valid())
	assert.True(t, sec.RoleAdmin.Valid())

	assert.False(t, sec.UserRole("").Valid())
	assert.False(t, sec.UserRole("superuser").Valid())
}
