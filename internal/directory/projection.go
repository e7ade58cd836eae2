// Package directory derives the public member directory from applications.
// Nothing here is stored: the directory is recomputed from the current
// application set on every read.
package directory

import (
	"sort"
	"time"

	"github.com/sharath018/hotel-association-backend/internal/hotel"
)

// Members returns the approved applications, most recent first with ties
// broken by ID. The input is not modified.
func Members(apps []hotel.Application) []hotel.Application {
	out := make([]hotel.Application, 0, len(apps))
	for _, a := range apps {
		if a.Status == hotel.StatusApproved {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Listing is the public view of a member hotel.
type Listing struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	City         string    `json:"city"`
	District     string    `json:"district,omitempty"`
	Address      string    `json:"address,omitempty"`
	StarRating   int       `json:"star_rating"`
	RoomCount    int       `json:"room_count,omitempty"`
	ContactEmail string    `json:"contact_email"`
	ContactPhone string    `json:"contact_phone,omitempty"`
	Website      string    `json:"website,omitempty"`
	RoomTypes    []string  `json:"room_types"`
	Facilities   []string  `json:"facilities"`
	Images       []string  `json:"images"`
	MemberSince  time.Time `json:"member_since"`
}

func ToListing(a hotel.Application) Listing {
	since := a.CreatedAt
	if a.ReviewedAt != nil {
		since = *a.ReviewedAt
	}
	return Listing{
		ID:           a.ID,
		Name:         a.Name,
		City:         a.City,
		District:     a.District,
		Address:      a.Address,
		StarRating:   a.StarRating,
		RoomCount:    a.RoomCount,
		ContactEmail: a.ContactEmail,
		ContactPhone: a.ContactPhone,
		Website:      a.Website,
		RoomTypes:    nonNil(a.RoomTypes),
		Facilities:   nonNil(a.Facilities),
		Images:       nonNil(a.Images),
		MemberSince:  since,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
