package models

// Role is the role of a resolved actor
type Role string

const (
	RoleSubmitter Role = "Submitter"
	RoleAdmin     Role = "Admin"
)

// SystemActorName is recorded for engine-produced records
const SystemActorName = "System"

// Actor is the identity resolved by the external identity provider
type Actor struct {
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// SystemActor returns the actor used for automatic actions
func SystemActor() Actor {
	return Actor{Name: SystemActorName, Role: RoleAdmin}
}

// IsAdmin reports whether the actor may review ideas
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// DisplayName returns the name to record for the actor
func (a Actor) DisplayName() string {
	if a.Name == "" {
		return SystemActorName
	}
	return a.Name
}
