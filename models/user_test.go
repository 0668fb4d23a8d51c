package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	u := &User{Password: "hunter22"}
	require.NoError(t, u.HashPassword())

	assert.NotEqual(t, "hunter22", u.Password)
	assert.True(t, u.ComparePassword("hunter22"))
	assert.False(t, u.ComparePassword("hunter23"))
}

func TestIsAuthority(t *testing.T) {
	assert.True(t, (&User{Role: RoleAuthority}).IsAuthority())
	assert.False(t, (&User{Role: RoleCitizen}).IsAuthority())
	assert.False(t, (&User{Role: RoleAdmin}).IsAuthority())
}
