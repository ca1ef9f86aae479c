package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSession_Lifecycle(t *testing.T) {
	s := NewSession()
	assert.Equal(t, Identity{State: StateLoading}, s.Current())
	assert.False(t, s.Current().SignedIn())

	assert.True(t, s.SignIn("u1"))
	assert.True(t, s.Current().SignedIn())
	assert.Equal(t, "u1", s.Current().UserID)

	// same identity again is not a change
	assert.False(t, s.SignIn("u1"))
	assert.True(t, s.SignIn("u2"))

	assert.True(t, s.SignOut())
	assert.Equal(t, Identity{State: StateSignedOut}, s.Current())
	assert.False(t, s.SignOut())
}

func TestSession_EmptyUserSignsOut(t *testing.T) {
	s := NewSession()
	assert.True(t, s.SignIn(""))
	assert.Equal(t, StateSignedOut, s.Current().State)
}
