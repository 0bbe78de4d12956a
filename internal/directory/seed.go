package directory

import (
	"strconv"
	"time"

	"github.com/admindesk/directory-system/internal/core/domain"
)

// seedSize is the number of users generated when no snapshot exists.
const seedSize = 75

// seedUsers builds the deterministic fallback collection: three fixed records
// followed by generated ones with round-robin role and status assignment.
func seedUsers() []domain.User {
	users := []domain.User{
		{
			ID:         "1",
			FirstName:  "Ahmed",
			LastName:   "Tarek",
			Email:      "test.user@example.com",
			Role:       domain.RoleAdmin,
			Status:     domain.StatusActive,
			DateJoined: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
			LastLogin:  time.Date(2023, 10, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:         "2",
			FirstName:  "Mohammed",
			LastName:   "Othman",
			Email:      "mohammed.othman@example.com",
			Role:       domain.RoleManager,
			Status:     domain.StatusActive,
			DateJoined: time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC),
			LastLogin:  time.Date(2023, 10, 2, 12, 0, 0, 0, time.UTC),
		},
		{
			ID:         "3",
			FirstName:  "Khaled",
			LastName:   "Ali",
			Email:      "khaled.ali@example.com",
			Role:       domain.RoleViewer,
			Status:     domain.StatusInactive,
			DateJoined: time.Date(2023, 1, 3, 0, 0, 0, 0, time.UTC),
			LastLogin:  time.Date(2023, 9, 15, 9, 0, 0, 0, time.UTC),
		},
	}

	for i := len(users) + 1; i <= seedSize; i++ {
		users = append(users, generatedUser(i))
	}
	return users
}

func generatedUser(i int) domain.User {
	month := time.Month((i-1)/31 + 1)
	day := (i-1)%31 + 1
	return domain.User{
		ID:         strconv.Itoa(i),
		FirstName:  "User" + strconv.Itoa(i),
		LastName:   "Last" + strconv.Itoa(i),
		Email:      "user" + strconv.Itoa(i) + "@example.com",
		Role:       domain.RoleSet[(i-1)%len(domain.RoleSet)].Name,
		Status:     domain.Statuses[(i-1)%len(domain.Statuses)],
		DateJoined: time.Date(2023, month, day, 0, 0, 0, 0, time.UTC),
		LastLogin:  time.Date(2023, 10, day, 10, 0, 0, 0, time.UTC),
	}
}
