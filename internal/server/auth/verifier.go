// Package auth verifies the opaque credentials carried by inbound board
// events and resolves them into stable user identities.
package auth

import "context"

// Identity is the verified profile behind a credential. A user may hold many
// simultaneous connections under the same UID.
type Identity struct {
	UID   string
	Name  string
	Email string
}

// Verifier turns an opaque credential into a verified Identity.
//
// Implementations must be safe for concurrent use; the session protocol calls
// Verify before entering any board-scoped critical section.
type Verifier interface {
	Verify(ctx context.Context, credential string) (*Identity, error)
}
