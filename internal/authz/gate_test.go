package authz

import (
	"testing"

	"github.com/learnsphere/marketplace-companion/internal/models"
	"github.com/stretchr/testify/assert"
)

func identityWith(role models.Role) *models.Identity {
	return &models.Identity{
		Email: "user@example.com",
		Name:  "Test User",
		Role:  role,
		Token: "some-token",
	}
}

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name     string
		identity *models.Identity
		required []models.Role
		want     Decision
	}{
		{
			name:     "public view allows anonymous",
			identity: nil,
			required: nil,
			want:     Allow,
		},
		{
			name:     "public view allows any role",
			identity: identityWith(models.RoleAdmin),
			required: []models.Role{},
			want:     Allow,
		},
		{
			name:     "anonymous denied on protected view",
			identity: nil,
			required: []models.Role{models.RoleStudent},
			want:     DenyAnonymous,
		},
		{
			name:     "identity without credential counts as anonymous",
			identity: &models.Identity{Email: "user@example.com", Role: models.RoleStudent},
			required: []models.Role{models.RoleStudent},
			want:     DenyAnonymous,
		},
		{
			name:     "matching role allowed",
			identity: identityWith(models.RoleStudent),
			required: []models.Role{models.RoleStudent},
			want:     Allow,
		},
		{
			name:     "wrong role denied",
			identity: identityWith(models.RoleInstructor),
			required: []models.Role{models.RoleAdmin},
			want:     DenyWrongRole,
		},
		{
			name:     "any of several roles allowed",
			identity: identityWith(models.RoleInstructor),
			required: []models.Role{models.RoleAdmin, models.RoleInstructor},
			want:     Allow,
		},
		{
			name:     "admin gets no shortcut onto student views",
			identity: identityWith(models.RoleAdmin),
			required: []models.Role{models.RoleStudent},
			want:     DenyWrongRole,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Authorize(tt.identity, tt.required))
		})
	}
}

func TestRedirectFor(t *testing.T) {
	assert.Equal(t, LoginPath, RedirectFor(DenyAnonymous))
	assert.Equal(t, LandingPath, RedirectFor(DenyWrongRole))
	assert.Equal(t, "", RedirectFor(Allow))
}
