package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type JobType string

const (
	// JobTypeWorkerSeeking is a worker advertising themself.
	JobTypeWorkerSeeking JobType = "worker"
	// JobTypeEmployerPosted is an employer offering work.
	JobTypeEmployerPosted JobType = "employer"
)

func ParseJobType(raw string) (JobType, error) {
	switch t := JobType(strings.ToLower(strings.TrimSpace(raw))); t {
	case JobTypeWorkerSeeking, JobTypeEmployerPosted:
		return t, nil
	}
	return "", NewValidationError("decode job", "unknown job type %q", raw)
}

func (t JobType) Label() string {
	if t == JobTypeWorkerSeeking {
		return "Job Seeker"
	}
	return "Employer"
}

type JobStatus string

const (
	JobStatusActive    JobStatus = "active"
	JobStatusClosed    JobStatus = "closed"
	JobStatusCompleted JobStatus = "completed"
	JobStatusUnknown   JobStatus = "unknown"
)

func ParseJobStatus(raw string) (JobStatus, error) {
	switch s := JobStatus(strings.ToLower(strings.TrimSpace(raw))); s {
	case JobStatusActive, JobStatusClosed, JobStatusCompleted:
		return s, nil
	}
	return JobStatusUnknown, NewValidationError("decode job", "unknown job status %q", raw)
}

// Logical provenance tags. Backends may report their own collection names;
// those are carried verbatim and passed back unchanged.
const (
	CollectionApproved = "approved"
	CollectionPending  = "pending"
)

// JobPayload is the per-type part of a job post.
type JobPayload interface {
	JobType() JobType
}

// SeekerDetails belong to a worker-seeking post: the budget is the salary the
// worker expects and the skills are ones the worker has.
type SeekerDetails struct {
	ExpectedSalary decimal.Decimal `json:"expectedSalary"`
	Skills         []string        `json:"skills,omitempty"`
	Experience     string          `json:"experience,omitempty"`
	Availability   string          `json:"availability,omitempty"`
}

func (SeekerDetails) JobType() JobType { return JobTypeWorkerSeeking }

// OfferDetails belong to an employer post: the budget is what is offered and
// the skills are requirements.
type OfferDetails struct {
	Budget         decimal.Decimal `json:"budget"`
	RequiredSkills []string        `json:"requiredSkills,omitempty"`
	PaymentType    string          `json:"paymentType,omitempty"`
	RateType       string          `json:"rateType,omitempty"`
	Duration       string          `json:"duration,omitempty"`
	Applicants     int             `json:"applicants,omitempty"`
}

func (OfferDetails) JobType() JobType { return JobTypeEmployerPosted }

type Job struct {
	ID          string     `json:"id"`
	Collection  string     `json:"collection"`
	Type        JobType    `json:"type"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Location    string     `json:"location,omitempty"`
	Urgent      bool       `json:"urgent,omitempty"`
	IsApproved  bool       `json:"isApproved"`
	Status      JobStatus  `json:"status,omitempty"`
	PostedBy    UserRef    `json:"postedBy"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Details     JobPayload `json:"details,omitempty"`
}

func (j Job) Seeker() (SeekerDetails, bool) {
	d, ok := j.Details.(SeekerDetails)
	return d, ok
}

func (j Job) Offer() (OfferDetails, bool) {
	d, ok := j.Details.(OfferDetails)
	return d, ok
}

// Budget returns the money figure of either variant.
func (j Job) Budget() decimal.Decimal {
	switch d := j.Details.(type) {
	case SeekerDetails:
		return d.ExpectedSalary
	case OfferDetails:
		return d.Budget
	}
	return decimal.Zero
}
