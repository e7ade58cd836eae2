package hotel

import (
	"io"
	"net/mail"
	"strings"
	"time"

	"github.com/sharath018/hotel-association-backend/internal/apperror"
)

// ProfileInput is the editable part of a registration, shared by submission
// and owner edits.
type ProfileInput struct {
	Name               string     `json:"name" binding:"required" example:"Seaside Inn"`
	Address            string     `json:"address" example:"12 Beach Road"`
	City               string     `json:"city" binding:"required" example:"Dumaguete"`
	District           string     `json:"district" example:"Negros Oriental"`
	ContactEmail       string     `json:"contact_email" binding:"required,email" example:"frontdesk@seaside-inn.com"`
	ContactPhone       string     `json:"contact_phone" example:"+63 35 422 1234"`
	Website            string     `json:"website" example:"https://seaside-inn.com"`
	OwnerName          string     `json:"owner_name"`
	ManagerName        string     `json:"manager_name"`
	RegistrationNumber string     `json:"registration_number"`
	YearEstablished    int        `json:"year_established" example:"1998"`
	EmployeeCount      int        `json:"employee_count"`
	RoomCount          int        `json:"room_count"`
	StarRating         int        `json:"star_rating" binding:"required" example:"4"`
	RoomTypes          []string   `json:"room_types"`
	Facilities         []string   `json:"facilities"`
	Amenities          string     `json:"amenities"`
	TaxID              string     `json:"tax_id"`
	TourismLicenseNo   string     `json:"tourism_license_no"`
	ComplianceRemarks  string     `json:"compliance_remarks"`
	SigneeName         string     `json:"signee_name"`
	SigneePosition     string     `json:"signee_position"`
	SignedOn           *time.Time `json:"signed_on"`
}

// AccountInput optionally provisions a member account with the submission.
type AccountInput struct {
	DisplayName string `json:"display_name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
}

type SubmitInput struct {
	ProfileInput
	Account *AccountInput `json:"account,omitempty"`
}

// Upload is a file received from the console.
type Upload struct {
	Filename string
	Size     int64
	Body     io.Reader
}

// Validate checks the registration rules that gin binding cannot express.
func (in ProfileInput) Validate(now time.Time) error {
	if strings.TrimSpace(in.Name) == "" {
		return apperror.Validation("hotel name is required")
	}
	if _, err := mail.ParseAddress(in.ContactEmail); err != nil {
		return apperror.Validation("contact email %q is not valid", in.ContactEmail)
	}
	if in.StarRating < 1 || in.StarRating > 5 {
		return apperror.Validation("star rating must be between 1 and 5")
	}
	if in.YearEstablished != 0 && (in.YearEstablished < 1800 || in.YearEstablished > now.Year()) {
		return apperror.Validation("year established must be between 1800 and %d", now.Year())
	}
	if in.EmployeeCount < 0 || in.RoomCount < 0 {
		return apperror.Validation("counts cannot be negative")
	}
	if in.SignedOn != nil && in.SignedOn.After(now) {
		return apperror.Validation("commitment date cannot be in the future")
	}
	return nil
}

func (in ProfileInput) apply(app *Application) {
	app.Name = strings.TrimSpace(in.Name)
	app.Address = in.Address
	app.City = strings.TrimSpace(in.City)
	app.District = in.District
	app.ContactEmail = strings.TrimSpace(in.ContactEmail)
	app.ContactPhone = in.ContactPhone
	app.Website = in.Website
	app.OwnerName = in.OwnerName
	app.ManagerName = in.ManagerName
	app.RegistrationNumber = in.RegistrationNumber
	app.YearEstablished = in.YearEstablished
	app.EmployeeCount = in.EmployeeCount
	app.RoomCount = in.RoomCount
	app.StarRating = in.StarRating
	app.RoomTypes = dedupe(in.RoomTypes)
	app.Facilities = dedupe(in.Facilities)
	app.Amenities = in.Amenities
	app.TaxID = in.TaxID
	app.TourismLicenseNo = in.TourismLicenseNo
	app.ComplianceRemarks = in.ComplianceRemarks
	app.SigneeName = in.SigneeName
	app.SigneePosition = in.SigneePosition
	app.SignedOn = in.SignedOn
}

// dedupe keeps the first occurrence of each non-empty value; room types and
// facilities are sets.
func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
