package handlers

import (
	"testing"

	"github.com/go-telegram/bot/models"
)

func TestDisplayName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		from *models.User
		want string
	}{
		{
			name: "Username wins over real name",
			from: &models.User{ID: 1, Username: "anna_p", FirstName: "Anna", LastName: "Petrova"},
			want: "anna_p",
		},
		{
			name: "Full name when no username",
			from: &models.User{ID: 2, FirstName: "Anna", LastName: "Petrova"},
			want: "Anna Petrova",
		},
		{
			name: "First name only",
			from: &models.User{ID: 3, FirstName: "Anna"},
			want: "Anna",
		},
		{
			name: "Nameless sender gets per-ID placeholder",
			from: &models.User{ID: 7},
			want: "user_7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := displayName(tt.from); got != tt.want {
				t.Errorf("displayName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDisplayNameKeepsNamelessSendersApart(t *testing.T) {
	t.Parallel()

	a := displayName(&models.User{ID: 1})
	b := displayName(&models.User{ID: 2})
	if a == b {
		t.Errorf("distinct nameless senders must not share a name, both got %q", a)
	}
}
