package permissions_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"villa/permissions"
)

func TestGet(t *testing.T) {
	data := permissions.Get()
	assert.NotNil(t, data)
	assert.NotEmpty(t, data.Endpoints)
}

func TestFindPermissions(t *testing.T) {
	data := permissions.Get()

	t.Run("public reads are skipped", func(t *testing.T) {
		for _, path := range []string{"/v1/rooms", "/v1/halls", "/v1/menu-items", "/v1/reviews"} {
			perm := data.FindPermissions(path, http.MethodGet)
			assert.True(t, perm.Skip, path)
		}

		perm := data.FindPermissions("/v1/auth/login", http.MethodPost)
		assert.True(t, perm.Skip)
	})

	t.Run("lifecycle transitions are admin only", func(t *testing.T) {
		for _, path := range []string{
			"/v1/bookings/{id}/approve",
			"/v1/bookings/{id}/reject",
			"/v1/bookings/{id}/checkout",
			"/v1/hall-bookings/{id}/approve",
			"/v1/hall-bookings/{id}/reject",
			"/v1/hall-bookings/{id}/complete",
		} {
			perm := data.FindPermissions(path, http.MethodPost)
			assert.Equal(t, []string{"admin"}, perm.Permissions, path)
		}
	})

	t.Run("staff see their own tasks", func(t *testing.T) {
		perm := data.FindPermissions("/v1/tasks/my", http.MethodGet)
		assert.Equal(t, []string{"staff"}, perm.Permissions)
	})

	t.Run("unknown endpoint yields no permissions", func(t *testing.T) {
		perm := data.FindPermissions("/v1/nope", http.MethodGet)
		assert.Empty(t, perm.Permissions)
		assert.False(t, perm.Skip)
	})
}
