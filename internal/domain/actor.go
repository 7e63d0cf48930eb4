package domain

// ActorRole is the role of the authenticated caller
type ActorRole string

const (
	RoleClient    ActorRole = "CLIENT"
	RoleTherapist ActorRole = "THERAPIST"
	RoleAdmin     ActorRole = "ADMIN"
)

// ParseActorRole converts a string into a known ActorRole
func ParseActorRole(role string) (ActorRole, bool) {
	switch r := ActorRole(role); r {
	case RoleClient, RoleTherapist, RoleAdmin:
		return r, true
	default:
		return "", false
	}
}

// Actor identifies who performs an operation
type Actor struct {
	ID   string
	Role ActorRole
}

// IsAdmin returns true if the actor holds the administrative role
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Decision is the result of an authorization check
type Decision bool

const (
	Allow Decision = true
	Deny  Decision = false
)

// Authorize decides whether the actor may mutate or read the booking.
// Participants of the booking and administrators are allowed, everybody else is denied.
func Authorize(actor Actor, booking *Booking) Decision {
	if booking == nil || actor.ID == "" {
		return Deny
	}
	if actor.IsAdmin() {
		return Allow
	}
	if actor.ID == booking.ClientID || actor.ID == booking.TherapistID {
		return Allow
	}
	return Deny
}
