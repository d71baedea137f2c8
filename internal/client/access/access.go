// Package access decides, ahead of any server round-trip, whether a paste's
// content may be rendered and which mutations the current session may
// attempt. It is pure decision logic: no I/O, no errors, deterministic over
// well-formed inputs. The server remains authoritative: a refusal from it
// is equally valid even when these functions said "allowed", and content the
// client does not actually possess is never rendered.
package access

import (
	"github.com/pasteflow/pasteflow/internal/client/models"
	"github.com/pasteflow/pasteflow/internal/client/session"
)

// Actions is the set of mutations the current session is permitted to
// attempt on a paste. Denial is an expected outcome, not a fault.
type Actions struct {
	CanClaim  bool
	CanEdit   bool
	CanDelete bool
}

// CanView reports whether the paste's content may be rendered for the given
// session. Public pastes are viewable by anyone; private pastes require an
// authenticated session (any authenticated user, not just the owner; the
// service applies the same rule). A zero-valued visibility counts as
// private.
func CanView(p models.Paste, s session.Session) bool {
	if p.Visibility.IsPublic() {
		return true
	}
	return s.Authenticated()
}

// PermittedActions computes the mutations the session may attempt.
//
//   - Claim: only while the paste has no owner. Once an owner is known the
//     action is disabled to avoid confusion, though the server would refuse
//     a stale attempt anyway.
//   - Edit/Delete: only the authenticated owner. An anonymous creator who
//     never claimed the paste has no standing here; the edit secret is the
//     claim flow's concern, not this model's.
func PermittedActions(p models.Paste, s session.Session) Actions {
	owner := s.Authenticated() && p.Claimed() && p.OwnerIdentity == s.Identity
	return Actions{
		CanClaim:  !p.Claimed(),
		CanEdit:   owner,
		CanDelete: owner,
	}
}
