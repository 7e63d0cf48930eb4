package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	booking := &Booking{ID: "b1", ClientID: "client-1", TherapistID: "therapist-1"}

	tests := []struct {
		name  string
		actor Actor
		want  Decision
	}{
		{"client of booking", Actor{ID: "client-1", Role: RoleClient}, Allow},
		{"therapist of booking", Actor{ID: "therapist-1", Role: RoleTherapist}, Allow},
		{"admin", Actor{ID: "admin-1", Role: RoleAdmin}, Allow},
		{"other client", Actor{ID: "client-2", Role: RoleClient}, Deny},
		{"other therapist", Actor{ID: "therapist-2", Role: RoleTherapist}, Deny},
		{"participant id with foreign role", Actor{ID: "client-1", Role: RoleTherapist}, Allow},
		{"empty actor id", Actor{Role: RoleClient}, Deny},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Authorize(tt.actor, booking))
		})
	}
}

func TestAuthorize_NilBooking(t *testing.T) {
	assert.Equal(t, Deny, Authorize(Actor{ID: "admin", Role: RoleAdmin}, nil))
}

func TestParseActorRole(t *testing.T) {
	role, ok := ParseActorRole("THERAPIST")
	assert.True(t, ok)
	assert.Equal(t, RoleTherapist, role)

	_, ok = ParseActorRole("therapist")
	assert.False(t, ok)

	_, ok = ParseActorRole("ROOT")
	assert.False(t, ok)
}
