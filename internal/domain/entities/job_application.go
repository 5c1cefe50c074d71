package entities

import (
	"strings"
	"time"

	"company-site.backend/pkg/validation"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Document kinds an applicant can attach.
const (
	DocumentResume      = "resume"
	DocumentCoverLetter = "coverLetter"
	DocumentPortfolio   = "portfolio"
)

// ApplicantInfo is what the applicant typed into the form.
type ApplicantInfo struct {
	FullName       string `json:"fullName" validate:"notblank,max=120"`
	Email          string `json:"email" validate:"notblank,email"`
	Phone          string `json:"phone" validate:"notblank,max=40"`
	LinkedIn       string `json:"linkedin"`
	Portfolio      string `json:"portfolio"`
	CoverLetter    string `json:"coverLetter" validate:"notblank"`
	Experience     string `json:"experience"`
	ExpectedSalary string `json:"expectedSalary"`
	AvailableFrom  string `json:"availableFrom"`
}

type JobApplication struct {
	Record
	JobID         uuid.UUID         `json:"jobId"`
	JobTitle      string            `json:"jobTitle"`
	JobSlug       string            `json:"jobSlug"`
	ApplicantInfo ApplicantInfo     `json:"applicantInfo"`
	Attachments   map[string]string `json:"attachments"`
	Status        string            `json:"status"`
	AdminNotes    null.String       `json:"adminNotes"`
	AppliedAt     time.Time         `json:"appliedAt"`
}

func (a *JobApplication) Kind() Kind          { return KindApplication }
func (a *JobApplication) StatusValue() string { return a.Status }

// Applications are never served publicly.
func (a *JobApplication) IsPublic() bool { return false }

func (a *JobApplication) Normalize() {
	info := &a.ApplicantInfo
	info.FullName = strings.TrimSpace(info.FullName)
	info.Email = strings.ToLower(strings.TrimSpace(info.Email))
	info.Phone = strings.TrimSpace(info.Phone)
	info.LinkedIn = strings.TrimSpace(info.LinkedIn)
	info.Portfolio = strings.TrimSpace(info.Portfolio)
	info.CoverLetter = strings.TrimSpace(info.CoverLetter)
	for k, v := range a.Attachments {
		if strings.TrimSpace(v) == "" {
			delete(a.Attachments, k)
		}
	}
	if a.Status == "" {
		a.Status = ApplicationStatuses.Default()
	}
	if a.AppliedAt.IsZero() {
		a.AppliedAt = time.Now().UTC()
	}
}

func (a *JobApplication) Validate() validation.Errors {
	return validateStatus(validation.Struct(a), ApplicationStatuses, a.Status)
}

func (a *JobApplication) SetStatus(status string) error {
	if !ApplicationStatuses.Contains(status) {
		return invalidStatus(ApplicationStatuses)
	}
	a.Status = status
	return nil
}

// ApplyToJob links the application to the job it was submitted for.
func (a *JobApplication) ApplyToJob(job *Job) {
	a.JobID = job.ID
	a.JobTitle = job.Title
	a.JobSlug = job.Slug
}
