package view

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"portal/internal/auth/models"
	"portal/internal/auth/service"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		state     service.State
		role      models.Role
		requested View
		want      View
	}{
		{"unauthenticated always sees login", service.StateUnauthenticated, models.RoleAdmin, Admin, Login},
		{"pending profile always sees first login", service.StatePendingProfile, models.RoleAdmin, Dashboard, FirstLogin},
		{"active user gets requested view", service.StateActive, models.RoleUser, Profile, Profile},
		{"active admin opens admin screens", service.StateActive, models.RoleAdmin, Departments, Departments},
		{"user cannot open admin screens", service.StateActive, models.RoleUser, Ministries, Dashboard},
		{"unknown view falls back", service.StateActive, models.RoleAdmin, View("reports"), Dashboard},
		{"empty request falls back", service.StateActive, models.RoleUser, "", Dashboard},
		{"gate views are not requestable", service.StateActive, models.RoleUser, FirstLogin, Dashboard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.state, tt.role, tt.requested))
		})
	}
}

func TestNavigation(t *testing.T) {
	var userViews []View
	for _, item := range Navigation(models.RoleUser) {
		userViews = append(userViews, item.View)
	}
	assert.Equal(t, []View{Dashboard, Profile}, userViews)

	admin := Navigation(models.RoleAdmin)
	assert.Len(t, admin, 8)
	assert.Equal(t, Resources, admin[len(admin)-1].View)
	assert.Equal(t, "Министерства", Title(Ministries))
	assert.Equal(t, "first-login", Title(FirstLogin))
}
