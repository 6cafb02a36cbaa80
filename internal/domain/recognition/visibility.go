package recognition

import "kudos/internal/domain/directory"

// CanView is the single source of truth for read visibility. It is applied to
// point queries and live subscription events alike; the rules are evaluated in
// priority order and the first match wins.
func CanView(rec Recognition, viewer directory.Employee) bool {
	// ADMIN and HR see everything.
	if viewer.Role == directory.RoleAdmin || viewer.Role == directory.RoleHR {
		return true
	}

	switch rec.Visibility {
	case VisibilityPublic:
		return true
	case VisibilityPrivate:
		return viewer.ID == rec.SenderID || viewer.ID == rec.RecipientID
	}

	// Unknown visibility: deny.
	return false
}

// SenderVisible decides whether the sender identity may be disclosed to a
// viewer. It is distinct from CanView and only meaningful once CanView has
// already passed: an anonymous recognition hides its sender from everyone but
// ADMIN and HR.
func SenderVisible(rec Recognition, viewer directory.Employee) bool {
	if viewer.Role == directory.RoleAdmin || viewer.Role == directory.RoleHR {
		return true
	}
	return !rec.IsAnonymous
}

// FilterVisible returns the recognitions the viewer may see, preserving order.
func FilterVisible(recs []Recognition, viewer directory.Employee) []Recognition {
	out := make([]Recognition, 0, len(recs))
	for _, rec := range recs {
		if CanView(rec, viewer) {
			out = append(out, rec)
		}
	}
	return out
}
