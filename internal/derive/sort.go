package derive

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"marketplace-admin-backend/internal/domain"
)

type SortOrder string

const (
	SortNewest SortOrder = "newest"
	SortOldest SortOrder = "oldest"
	SortName   SortOrder = "name"
)

func ParseSortOrder(raw string) (SortOrder, error) {
	switch o := SortOrder(strings.ToLower(raw)); o {
	case "", SortNewest:
		return SortNewest, nil
	case SortOldest, SortName:
		return o, nil
	}
	return SortNewest, fmt.Errorf("unknown sort order %q", raw)
}

// SortUsers returns a sorted copy. Equal keys keep their input order.
func SortUsers(users []domain.User, order SortOrder) []domain.User {
	out := slices.Clone(users)
	switch order {
	case SortOldest:
		slices.SortStableFunc(out, func(a, b domain.User) int { return a.CreatedAt.Compare(b.CreatedAt) })
	case SortName:
		// A collator keeps internal buffers, so each sort gets its own.
		c := collate.New(language.English, collate.IgnoreCase)
		slices.SortStableFunc(out, func(a, b domain.User) int { return c.CompareString(a.DisplayName(), b.DisplayName()) })
	default:
		slices.SortStableFunc(out, func(a, b domain.User) int { return b.CreatedAt.Compare(a.CreatedAt) })
	}
	return out
}

// SortJobsNewest returns a copy ordered by creation time, newest first.
func SortJobsNewest(jobs []domain.Job) []domain.Job {
	out := slices.Clone(jobs)
	slices.SortStableFunc(out, func(a, b domain.Job) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return out
}

func SortBookingsNewest(bookings []domain.Booking) []domain.Booking {
	out := slices.Clone(bookings)
	slices.SortStableFunc(out, func(a, b domain.Booking) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return out
}
