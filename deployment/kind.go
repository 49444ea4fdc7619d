// Package deployment models the two control planes this tool can address and
// decides, per invocation, which one a command targets.
package deployment

import "fmt"

// Kind identifies one of the two backends. The set is closed: routing and
// polling code is written against Kind, never against a concrete client.
type Kind int

const (
	// Cloud is the hosted control plane.
	Cloud Kind = iota
	// Enterprise is the self-managed cluster control plane.
	Enterprise
)

func (k Kind) String() string {
	switch k {
	case Cloud:
		return "cloud"
	case Enterprise:
		return "enterprise"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind parses the user-facing name of a backend, as given to
// --deployment or stored in a profile.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "cloud":
		return Cloud, nil
	case "enterprise":
		return Enterprise, nil
	default:
		return 0, fmt.Errorf("unknown deployment %q, expected cloud or enterprise", s)
	}
}
