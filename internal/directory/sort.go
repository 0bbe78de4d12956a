package directory

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/admindesk/directory-system/internal/core/domain"
)

// sortUsers stable-sorts users in place by the given field key, descending
// when desc is set. Unknown keys leave the order untouched.
//
// String fields use locale-aware ordering; timestamps are compared
// relationally. Collators carry mutable iterator state, so each call builds
// its own instead of sharing one across concurrent List calls.
func sortUsers(users []domain.User, sortBy string, desc bool) {
	cmp := comparator(sortBy, collate.New(language.English))
	if cmp == nil {
		return
	}
	sort.SliceStable(users, func(i, j int) bool {
		if desc {
			return cmp(users[j], users[i])
		}
		return cmp(users[i], users[j])
	})
}

func comparator(sortBy string, col *collate.Collator) func(a, b domain.User) bool {
	byString := func(key func(domain.User) string) func(a, b domain.User) bool {
		return func(a, b domain.User) bool {
			return col.CompareString(key(a), key(b)) < 0
		}
	}

	switch sortBy {
	case "id":
		return byString(func(u domain.User) string { return u.ID })
	case "firstName":
		return byString(func(u domain.User) string { return u.FirstName })
	case "lastName":
		return byString(func(u domain.User) string { return u.LastName })
	case "email":
		return byString(func(u domain.User) string { return u.Email })
	case "role":
		return byString(func(u domain.User) string { return u.Role })
	case "status":
		return byString(func(u domain.User) string { return u.Status })
	case "dateJoined":
		return func(a, b domain.User) bool { return a.DateJoined.Before(b.DateJoined) }
	case "lastLogin":
		return func(a, b domain.User) bool { return a.LastLogin.Before(b.LastLogin) }
	default:
		return nil
	}
}
