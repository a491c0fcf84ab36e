package authz

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/session-gate/internal/models"
)

func anonymous() Visitor {
	return NewVisitor(nil)
}

func unapproved() Visitor {
	return NewVisitor(&models.User{UID: "u1", IsApproved: false})
}

func approved() Visitor {
	return NewVisitor(&models.User{UID: "u1", IsApproved: true})
}

func admin() Visitor {
	return NewVisitor(&models.User{UID: "u1", IsApproved: true, IsAdmin: true})
}

func TestNewVisitor(t *testing.T) {
	tests := []struct {
		name      string
		user      *models.User
		wantState VisitorState
	}{
		{
			name:      "nil user is anonymous",
			user:      nil,
			wantState: StateAnonymous,
		},
		{
			name:      "unapproved user",
			user:      &models.User{UID: "u1"},
			wantState: StateUnapproved,
		},
		{
			name:      "approved user",
			user:      &models.User{UID: "u1", IsApproved: true},
			wantState: StateApproved,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewVisitor(tt.user)
			assert.Equal(t, tt.wantState, v.State)
			if tt.wantState == StateAnonymous {
				assert.Nil(t, v.User)
			} else {
				assert.NotNil(t, v.User)
			}
		})
	}
}

func TestPolicy_Classify(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		path string
		want Tier
	}{
		{"/", TierPublic},
		{"/auth/login/", TierPublic},
		{"/auth/register/", TierPublic},
		{"/auth/logout/", TierAuth},
		{"/auth/waiting-room/", TierAuth},
		{"/admin/", TierAdmin},
		{"/admin/users/", TierAdmin},
		{"/notes/", TierProtected},
		{"/anything/else/", TierProtected},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Classify(tt.path))
		})
	}
}

func TestDecide(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		name    string
		visitor Visitor
		path    string
		want    Decision
	}{
		{
			name:    "anonymous on public page proceeds",
			visitor: anonymous(),
			path:    "/",
			want:    Proceed(),
		},
		{
			name:    "anonymous on login page proceeds",
			visitor: anonymous(),
			path:    "/auth/login/",
			want:    Proceed(),
		},
		{
			name:    "anonymous logout proceeds",
			visitor: anonymous(),
			path:    "/auth/logout/",
			want:    Proceed(),
		},
		{
			name:    "anonymous on protected page redirects to login",
			visitor: anonymous(),
			path:    "/notes/",
			want:    RedirectTo("/auth/login/"),
		},
		{
			name:    "anonymous on admin page redirects to login",
			visitor: anonymous(),
			path:    "/admin/",
			want:    RedirectTo("/auth/login/"),
		},
		{
			name:    "unapproved on waiting room proceeds",
			visitor: unapproved(),
			path:    "/auth/waiting-room/",
			want:    Proceed(),
		},
		{
			name:    "unapproved on protected page redirects to waiting room",
			visitor: unapproved(),
			path:    "/notes/",
			want:    RedirectTo("/auth/waiting-room/"),
		},
		{
			name:    "unapproved on admin page redirects, approval gate wins",
			visitor: unapproved(),
			path:    "/admin/",
			want:    RedirectTo("/auth/waiting-room/"),
		},
		{
			name:    "approved on protected page proceeds",
			visitor: approved(),
			path:    "/notes/",
			want:    Proceed(),
		},
		{
			name:    "approved non-admin on admin page rejected",
			visitor: approved(),
			path:    "/admin/",
			want:    Reject(http.StatusForbidden),
		},
		{
			name:    "admin on admin page proceeds",
			visitor: admin(),
			path:    "/admin/",
			want:    Proceed(),
		},
		{
			name:    "admin on protected page proceeds",
			visitor: admin(),
			path:    "/notes/",
			want:    Proceed(),
		},
		{
			name:    "approved user on public page proceeds",
			visitor: approved(),
			path:    "/",
			want:    Proceed(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(p, tt.visitor, tt.path))
		})
	}
}
