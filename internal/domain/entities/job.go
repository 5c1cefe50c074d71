package entities

import (
	"strings"

	"company-site.backend/pkg/content"
	"company-site.backend/pkg/utils"
	"company-site.backend/pkg/validation"
)

type Job struct {
	Record
	Title            string   `json:"title" validate:"notblank,max=200"`
	Slug             string   `json:"slug" validate:"notblank,max=200"`
	Description      string   `json:"description" validate:"notblank"`
	ShortDescription string   `json:"shortDescription"`
	Department       string   `json:"department" validate:"notblank"`
	Location         string   `json:"location" validate:"notblank"`
	Type             string   `json:"type"`
	Salary           string   `json:"salary"`
	ExperienceLevel  string   `json:"experienceLevel" validate:"notblank"`
	Technologies     []string `json:"technologies"`
	Responsibilities []string `json:"responsibilities"`
	Requirements     []string `json:"requirements"`
	Benefits         []string `json:"benefits"`
	Status           string   `json:"status"`
}

func (j *Job) Kind() Kind          { return KindJob }
func (j *Job) StatusValue() string { return j.Status }
func (j *Job) SlugValue() string   { return j.Slug }
func (j *Job) IsPublic() bool      { return j.Status == JobOpen }

func (j *Job) Normalize() {
	j.Title = strings.TrimSpace(j.Title)
	j.Slug = deriveSlugIfEmpty(j.Slug, j.Title)
	j.ShortDescription = strings.TrimSpace(j.ShortDescription)
	j.Department = strings.TrimSpace(j.Department)
	j.Location = strings.TrimSpace(j.Location)
	j.Type = strings.TrimSpace(j.Type)
	j.Salary = strings.TrimSpace(j.Salary)
	j.ExperienceLevel = strings.TrimSpace(j.ExperienceLevel)
	j.Technologies = utils.CompactStrings(j.Technologies)
	j.Responsibilities = utils.CompactStrings(j.Responsibilities)
	j.Requirements = utils.CompactStrings(j.Requirements)
	j.Benefits = utils.CompactStrings(j.Benefits)
	if j.Type == "" {
		j.Type = JobTypes[0]
	}
	if j.Status == "" {
		j.Status = JobStatuses.Default()
	}
}

func (j *Job) Validate() validation.Errors {
	errs := validation.Struct(j)
	errs = validateStatus(errs, JobStatuses, j.Status)
	if !isJobType(j.Type) {
		if errs == nil {
			errs = validation.Errors{}
		}
		errs["type"] = "Type must be one of: " + strings.Join(JobTypes, ", ")
	}
	return errs
}

func (j *Job) SetStatus(status string) error {
	if !JobStatuses.Contains(status) {
		return invalidStatus(JobStatuses)
	}
	j.Status = status
	return nil
}

func (j *Job) Sanitize(s *content.Sanitizer) {
	j.Description = s.RichText(j.Description)
	j.ShortDescription = s.PlainText(j.ShortDescription)
}

// PublicPath is the careers page of the job.
func (j *Job) PublicPath() string {
	return "/careers/" + j.Slug
}

func isJobType(t string) bool {
	for _, v := range JobTypes {
		if v == t {
			return true
		}
	}
	return false
}
