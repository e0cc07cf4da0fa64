package mongo

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"marketplace-admin-backend/internal/domain"
	"marketplace-admin-backend/internal/logger"
)

// Loosely typed fields are decoded into any and coerced here: the marketplace
// writes the same field with different BSON types across releases.

func idString(v any) string {
	switch id := v.(type) {
	case nil:
		return ""
	case primitive.ObjectID:
		return id.Hex()
	case string:
		return id
	case bson.D:
		return idString(id.Map()["_id"])
	case bson.M:
		return idString(id["_id"])
	default:
		return fmt.Sprint(id)
	}
}

// refOf resolves a reference that is either a bare id or an embedded document.
func refOf(v any) (id, name string) {
	var m bson.M
	switch r := v.(type) {
	case bson.D:
		m = r.Map()
	case bson.M:
		m = r
	default:
		return idString(v), ""
	}
	id = idString(m["_id"])
	if n, ok := m["name"].(string); ok {
		name = n
	} else if n, ok := m["title"].(string); ok {
		name = n
	}
	return id, name
}

var timeLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

func timeOf(v any) time.Time {
	switch t := v.(type) {
	case primitive.DateTime:
		return t.Time().UTC()
	case time.Time:
		return t.UTC()
	case string:
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed.UTC()
			}
		}
		if t != "" {
			logger.Warn("Ignoring unparsable timestamp in document", "value", t)
		}
	}
	return time.Time{}
}

func decimalOf(v any) decimal.Decimal {
	switch n := v.(type) {
	case int32:
		return decimal.NewFromInt32(n)
	case int64:
		return decimal.NewFromInt(n)
	case float64:
		return decimal.NewFromFloat(n)
	case primitive.Decimal128:
		if d, err := decimal.NewFromString(n.String()); err == nil {
			return d
		}
	case string:
		if d, err := decimal.NewFromString(strings.TrimSpace(n)); err == nil {
			return d
		}
		if n != "" {
			logger.Warn("Ignoring non-numeric amount in document", "value", n)
		}
	}
	return decimal.Zero
}

func floatOf(v any) float64 {
	f, _ := decimalOf(v).Float64()
	return f
}

// countOf is a number or the length of an array.
func countOf(v any) int {
	switch n := v.(type) {
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float64:
		return int(n)
	case bson.A:
		return len(n)
	}
	return 0
}

func stringsOf(v any) []string {
	switch s := v.(type) {
	case bson.A:
		out := make([]string, 0, len(s))
		for _, item := range s {
			if str, ok := item.(string); ok && str != "" {
				out = append(out, str)
			}
		}
		return out
	case string:
		var out []string
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	}
	return nil
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
	var kept []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

type userDoc struct {
	ID              any    `bson:"_id"`
	Name            string `bson:"name"`
	FullName        string `bson:"fullName"`
	Email           string `bson:"email"`
	Phone           string `bson:"phone"`
	Type            string `bson:"type"`
	Status          string `bson:"status"`
	Password        string `bson:"password"`
	Rating          any    `bson:"rating"`
	CreatedAt       any    `bson:"createdAt"`
	Skills          any    `bson:"skills"`
	Company         string `bson:"company"`
	Location        string `bson:"location"`
	City            string `bson:"city"`
	District        string `bson:"district"`
	Address         string `bson:"address"`
	Availability    string `bson:"availability"`
	ProfilePhoto    string `bson:"profilePhoto"`
	CompletedJobs   any    `bson:"completedJobs"`
	TotalJobsPosted any    `bson:"totalJobsPosted"`
	NIDNumber       string `bson:"nidNumber"`
	NIDFront        string `bson:"nidFront"`
	NIDBack         string `bson:"nidBack"`
}

func (d userDoc) toDomain() domain.User {
	id := idString(d.ID)
	return domain.User{
		ID:              id,
		Role:            domain.NormalizeUserRole(d.Type, id),
		Status:          domain.NormalizeUserStatus(d.Status, id),
		Name:            firstNonEmpty(d.Name, d.FullName),
		Email:           d.Email,
		Phone:           d.Phone,
		Rating:          max(floatOf(d.Rating), 0),
		CreatedAt:       timeOf(d.CreatedAt),
		Skills:          stringsOf(d.Skills),
		Company:         d.Company,
		Location:        firstNonEmpty(d.Location, joinNonEmpty(", ", d.City, d.District)),
		Address:         d.Address,
		Availability:    d.Availability,
		ProfilePhoto:    d.ProfilePhoto,
		CompletedJobs:   countOf(d.CompletedJobs),
		TotalJobsPosted: countOf(d.TotalJobsPosted),
		Documents: domain.Documents{
			NIDNumber: d.NIDNumber,
			NIDFront:  d.NIDFront,
			NIDBack:   d.NIDBack,
		},
	}
}

type jobDoc struct {
	ID             any    `bson:"_id"`
	Title          string `bson:"title"`
	Description    string `bson:"description"`
	Type           string `bson:"type"`
	Status         string `bson:"status"`
	PostedBy       any    `bson:"postedBy"`
	PostedByName   string `bson:"postedByName"`
	Budget         any    `bson:"budget"`
	ExpectedSalary any    `bson:"expectedSalary"`
	Skills         any    `bson:"skills"`
	Requirements   any    `bson:"requirements"`
	Urgent         bool   `bson:"urgent"`
	Location       string `bson:"location"`
	Experience     string `bson:"experience"`
	Availability   string `bson:"availability"`
	PaymentType    string `bson:"paymentType"`
	RateType       string `bson:"rateType"`
	Duration       string `bson:"duration"`
	Applicants     any    `bson:"applicants"`
	CreatedAt      any    `bson:"createdAt"`
	CompletedAt    any    `bson:"completedAt"`
	UpdatedAt      any    `bson:"updatedAt"`
}

// toDomain tags the job with the logical collection it was listed from.
func (d jobDoc) toDomain(collection string) domain.Job {
	id := idString(d.ID)
	posterID, posterName := refOf(d.PostedBy)
	jobType := domain.NormalizeJobType(d.Type, id)

	j := domain.Job{
		ID:          id,
		Collection:  collection,
		Type:        jobType,
		Title:       d.Title,
		Description: d.Description,
		Location:    d.Location,
		Urgent:      d.Urgent,
		IsApproved:  collection == domain.CollectionApproved,
		Status:      domain.NormalizeJobStatus(d.Status, id),
		PostedBy:    domain.UserRef{ID: posterID, Name: firstNonEmpty(d.PostedByName, posterName)},
		CreatedAt:   timeOf(d.CreatedAt),
	}

	if j.Status == domain.JobStatusCompleted {
		done := timeOf(d.CompletedAt)
		if done.IsZero() {
			done = timeOf(d.UpdatedAt)
		}
		if !done.IsZero() {
			j.CompletedAt = &done
		}
	}

	if jobType == domain.JobTypeWorkerSeeking {
		salary := decimalOf(d.ExpectedSalary)
		if salary.IsZero() {
			salary = decimalOf(d.Budget)
		}
		j.Details = domain.SeekerDetails{
			ExpectedSalary: salary,
			Skills:         stringsOf(d.Skills),
			Experience:     d.Experience,
			Availability:   d.Availability,
		}
	} else {
		required := stringsOf(d.Requirements)
		if len(required) == 0 {
			required = stringsOf(d.Skills)
		}
		j.Details = domain.OfferDetails{
			Budget:         decimalOf(d.Budget),
			RequiredSkills: required,
			PaymentType:    d.PaymentType,
			RateType:       d.RateType,
			Duration:       d.Duration,
			Applicants:     countOf(d.Applicants),
		}
	}
	return j
}

type bookingDoc struct {
	ID              any    `bson:"_id"`
	Worker          any    `bson:"workerId"`
	WorkerName      string `bson:"workerName"`
	WorkerPhone     string `bson:"workerPhone"`
	Employer        any    `bson:"employerId"`
	EmployerName    string `bson:"employerName"`
	EmployerPhone   string `bson:"employerPhone"`
	Job             any    `bson:"jobId"`
	JobTitle        string `bson:"jobTitle"`
	JobDescription  string `bson:"jobDescription"`
	BookingStatus   string `bson:"bookingStatus"`
	Status          string `bson:"status"`
	AdminApproval   bool   `bson:"adminApproval"`
	WorkerApproval  bool   `bson:"workerApproval"`
	PaymentStatus   string `bson:"paymentStatus"`
	AdminNotes      string `bson:"adminNotes"`
	RejectionReason string `bson:"rejectionReason"`
	TotalAmount     any    `bson:"totalAmount"`
	AgreedRate      any    `bson:"agreedRate"`
	Budget          any    `bson:"budget"`
	Duration        string `bson:"duration"`
	WorkDuration    string `bson:"workDuration"`
	Location        string `bson:"location"`
	District        string `bson:"district"`
	Area            string `bson:"area"`
	CreatedAt       any    `bson:"createdAt"`
}

func (d bookingDoc) toDomain() domain.Booking {
	id := idString(d.ID)
	workerID, workerName := refOf(d.Worker)
	employerID, employerName := refOf(d.Employer)
	jobID, jobTitle := refOf(d.Job)

	total := decimalOf(d.TotalAmount)
	if total.IsZero() {
		total = decimalOf(d.Budget)
	}
	return domain.Booking{
		ID:              id,
		Worker:          domain.UserRef{ID: workerID, Name: firstNonEmpty(d.WorkerName, workerName)},
		WorkerPhone:     d.WorkerPhone,
		Employer:        domain.UserRef{ID: employerID, Name: firstNonEmpty(d.EmployerName, employerName)},
		EmployerPhone:   d.EmployerPhone,
		Job:             domain.JobRef{ID: jobID, Title: firstNonEmpty(d.JobTitle, jobTitle), Description: d.JobDescription},
		Status:          domain.NormalizeBookingStatus(d.BookingStatus, d.Status, id),
		AdminApproval:   d.AdminApproval,
		WorkerApproval:  d.WorkerApproval,
		PaymentStatus:   domain.NormalizePaymentStatus(d.PaymentStatus, id),
		AdminNotes:      d.AdminNotes,
		RejectionReason: d.RejectionReason,
		TotalAmount:     total,
		AgreedRate:      decimalOf(d.AgreedRate),
		Duration:        firstNonEmpty(d.Duration, d.WorkDuration),
		Location:        firstNonEmpty(d.Location, joinNonEmpty(", ", d.Area, d.District)),
		CreatedAt:       timeOf(d.CreatedAt),
	}
}
