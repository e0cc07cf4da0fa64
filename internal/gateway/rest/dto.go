package rest

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"marketplace-admin-backend/internal/domain"
	"marketplace-admin-backend/internal/logger"
)

var wireTimeLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// wireTime tolerates the handful of date encodings the backend emits. An
// unparsable value decodes to the zero time instead of failing the list.
type wireTime struct {
	time.Time
}

func (t *wireTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil || s == "" {
		return nil
	}
	for _, layout := range wireTimeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	logger.Warn("Ignoring unparsable timestamp from backend", "value", s)
	return nil
}

// wireDecimal accepts numbers and numeric strings; anything else is zero.
type wireDecimal struct {
	decimal.Decimal
}

func (d *wireDecimal) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		return nil
	}
	if err := d.Decimal.UnmarshalJSON(b); err != nil {
		logger.Warn("Ignoring non-numeric amount from backend", "value", string(b))
		d.Decimal = decimal.Zero
	}
	return nil
}

// wireRef is either a bare id string or a populated object.
type wireRef struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Title string `json:"title"`
}

func (r *wireRef) UnmarshalJSON(b []byte) error {
	var id string
	if err := json.Unmarshal(b, &id); err == nil {
		r.ID = id
		return nil
	}
	type plain wireRef
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return nil
	}
	*r = wireRef(p)
	return nil
}

// wireCount is a number or an array whose length is the count.
type wireCount int

func (c *wireCount) UnmarshalJSON(b []byte) error {
	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		*c = wireCount(n)
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(b, &items); err == nil {
		*c = wireCount(len(items))
	}
	return nil
}

type userDTO struct {
	ID              string    `json:"_id"`
	Name            string    `json:"name"`
	FullName        string    `json:"fullName"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Type            string    `json:"type"`
	Status          string    `json:"status"`
	Rating          float64   `json:"rating"`
	CreatedAt       wireTime  `json:"createdAt"`
	Skills          []string  `json:"skills"`
	Company         string    `json:"company"`
	Location        string    `json:"location"`
	City            string    `json:"city"`
	District        string    `json:"district"`
	Address         string    `json:"address"`
	Availability    string    `json:"availability"`
	ProfilePhoto    string    `json:"profilePhoto"`
	CompletedJobs   wireCount `json:"completedJobs"`
	TotalJobsPosted wireCount `json:"totalJobsPosted"`
	NIDNumber       string    `json:"nidNumber"`
	NIDFront        string    `json:"nidFront"`
	NIDBack         string    `json:"nidBack"`
}

func (d userDTO) toDomain() domain.User {
	name := d.Name
	if name == "" {
		name = d.FullName
	}
	location := d.Location
	if location == "" {
		location = joinNonEmpty(", ", d.City, d.District)
	}
	return domain.User{
		ID:              d.ID,
		Role:            domain.NormalizeUserRole(d.Type, d.ID),
		Status:          domain.NormalizeUserStatus(d.Status, d.ID),
		Name:            name,
		Email:           d.Email,
		Phone:           d.Phone,
		Rating:          max(d.Rating, 0),
		CreatedAt:       d.CreatedAt.Time,
		Skills:          d.Skills,
		Company:         d.Company,
		Location:        location,
		Address:         d.Address,
		Availability:    d.Availability,
		ProfilePhoto:    d.ProfilePhoto,
		CompletedJobs:   int(d.CompletedJobs),
		TotalJobsPosted: int(d.TotalJobsPosted),
		Documents: domain.Documents{
			NIDNumber: d.NIDNumber,
			NIDFront:  d.NIDFront,
			NIDBack:   d.NIDBack,
		},
	}
}

type jobDTO struct {
	ID             string      `json:"_id"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	Type           string      `json:"type"`
	IsApproved     bool        `json:"isApproved"`
	Status         string      `json:"status"`
	Collection     string      `json:"collection"`
	PostedBy       wireRef     `json:"postedBy"`
	Budget         wireDecimal `json:"budget"`
	ExpectedSalary wireDecimal `json:"expectedSalary"`
	Skills         []string    `json:"skills"`
	Requirements   []string    `json:"requirements"`
	Urgent         bool        `json:"urgent"`
	Location       string      `json:"location"`
	Experience     string      `json:"experience"`
	Availability   string      `json:"availability"`
	PaymentType    string      `json:"paymentType"`
	RateType       string      `json:"rateType"`
	Duration       string      `json:"duration"`
	Applicants     wireCount   `json:"applicants"`
	CreatedAt      wireTime    `json:"createdAt"`
	CompletedAt    wireTime    `json:"completedAt"`
	UpdatedAt      wireTime    `json:"updatedAt"`
}

// toDomain takes approval from the list the record came from and falls back
// to that list's logical tag when the record carries no collection.
func (d jobDTO) toDomain(approved bool) domain.Job {
	jobType := domain.NormalizeJobType(d.Type, d.ID)
	collection := d.Collection
	if collection == "" {
		collection = domain.CollectionPending
		if approved {
			collection = domain.CollectionApproved
		}
	}

	j := domain.Job{
		ID:          d.ID,
		Collection:  collection,
		Type:        jobType,
		Title:       d.Title,
		Description: d.Description,
		Location:    d.Location,
		Urgent:      d.Urgent,
		IsApproved:  approved,
		Status:      domain.NormalizeJobStatus(d.Status, d.ID),
		PostedBy:    domain.UserRef{ID: d.PostedBy.ID, Name: d.PostedBy.Name},
		CreatedAt:   d.CreatedAt.Time,
	}

	if j.Status == domain.JobStatusCompleted {
		done := d.CompletedAt.Time
		if done.IsZero() {
			done = d.UpdatedAt.Time
		}
		if !done.IsZero() {
			j.CompletedAt = &done
		}
	}

	if jobType == domain.JobTypeWorkerSeeking {
		salary := d.ExpectedSalary.Decimal
		if salary.IsZero() {
			salary = d.Budget.Decimal
		}
		j.Details = domain.SeekerDetails{
			ExpectedSalary: salary,
			Skills:         d.Skills,
			Experience:     d.Experience,
			Availability:   d.Availability,
		}
	} else {
		required := d.Requirements
		if len(required) == 0 {
			required = d.Skills
		}
		j.Details = domain.OfferDetails{
			Budget:         d.Budget.Decimal,
			RequiredSkills: required,
			PaymentType:    d.PaymentType,
			RateType:       d.RateType,
			Duration:       d.Duration,
			Applicants:     int(d.Applicants),
		}
	}
	return j
}

type bookingDTO struct {
	ID              string      `json:"_id"`
	Worker          wireRef     `json:"workerId"`
	WorkerName      string      `json:"workerName"`
	WorkerPhone     string      `json:"workerPhone"`
	Employer        wireRef     `json:"employerId"`
	EmployerName    string      `json:"employerName"`
	EmployerPhone   string      `json:"employerPhone"`
	Job             wireRef     `json:"jobId"`
	JobTitle        string      `json:"jobTitle"`
	JobDescription  string      `json:"jobDescription"`
	BookingStatus   string      `json:"bookingStatus"`
	Status          string      `json:"status"`
	AdminApproval   bool        `json:"adminApproval"`
	WorkerApproval  bool        `json:"workerApproval"`
	PaymentStatus   string      `json:"paymentStatus"`
	AdminNotes      string      `json:"adminNotes"`
	RejectionReason string      `json:"rejectionReason"`
	TotalAmount     wireDecimal `json:"totalAmount"`
	AgreedRate      wireDecimal `json:"agreedRate"`
	Budget          wireDecimal `json:"budget"`
	Duration        string      `json:"duration"`
	WorkDuration    string      `json:"workDuration"`
	Location        string      `json:"location"`
	District        string      `json:"district"`
	Area            string      `json:"area"`
	CreatedAt       wireTime    `json:"createdAt"`
}

func (d bookingDTO) toDomain() domain.Booking {
	total := d.TotalAmount.Decimal
	if total.IsZero() {
		total = d.Budget.Decimal
	}
	duration := d.Duration
	if duration == "" {
		duration = d.WorkDuration
	}
	location := d.Location
	if location == "" {
		location = joinNonEmpty(", ", d.Area, d.District)
	}
	return domain.Booking{
		ID:              d.ID,
		Worker:          domain.UserRef{ID: d.Worker.ID, Name: firstNonEmpty(d.WorkerName, d.Worker.Name)},
		WorkerPhone:     d.WorkerPhone,
		Employer:        domain.UserRef{ID: d.Employer.ID, Name: firstNonEmpty(d.EmployerName, d.Employer.Name)},
		EmployerPhone:   d.EmployerPhone,
		Job:             domain.JobRef{ID: d.Job.ID, Title: firstNonEmpty(d.JobTitle, d.Job.Title), Description: d.JobDescription},
		Status:          domain.NormalizeBookingStatus(d.BookingStatus, d.Status, d.ID),
		AdminApproval:   d.AdminApproval,
		WorkerApproval:  d.WorkerApproval,
		PaymentStatus:   domain.NormalizePaymentStatus(d.PaymentStatus, d.ID),
		AdminNotes:      d.AdminNotes,
		RejectionReason: d.RejectionReason,
		TotalAmount:     total,
		AgreedRate:      d.AgreedRate.Decimal,
		Duration:        duration,
		Location:        location,
		CreatedAt:       d.CreatedAt.Time,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
