package entities

import (
	"strings"

	"company-site.backend/pkg/content"
	"company-site.backend/pkg/utils"
	"company-site.backend/pkg/validation"
	"github.com/volatiletech/null/v8"
)

type SocialLinks struct {
	LinkedIn string `json:"linkedin"`
	Twitter  string `json:"twitter"`
	GitHub   string `json:"github"`
}

type TeamMember struct {
	Record
	Name         string      `json:"name" validate:"notblank,max=120"`
	Email        string      `json:"email" validate:"notblank,email"`
	Role         string      `json:"role" validate:"notblank,max=120"`
	Department   string      `json:"department"`
	Location     string      `json:"location"`
	JoinDate     null.Time   `json:"joinDate"`
	Bio          string      `json:"bio"`
	Skills       []string    `json:"skills"`
	Social       SocialLinks `json:"social"`
	ProfileImage string      `json:"profileImage"`
	Status       string      `json:"status"`
	DisplayOrder int         `json:"displayOrder"`
}

func (m *TeamMember) Kind() Kind          { return KindTeamMember }
func (m *TeamMember) StatusValue() string { return m.Status }
func (m *TeamMember) IsPublic() bool      { return m.Status == TeamMemberActive }

func (m *TeamMember) Normalize() {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.ToLower(strings.TrimSpace(m.Email))
	m.Role = strings.TrimSpace(m.Role)
	m.Department = strings.TrimSpace(m.Department)
	m.Location = strings.TrimSpace(m.Location)
	m.Skills = utils.CompactStrings(m.Skills)
	m.Social.LinkedIn = strings.TrimSpace(m.Social.LinkedIn)
	m.Social.Twitter = strings.TrimSpace(m.Social.Twitter)
	m.Social.GitHub = strings.TrimSpace(m.Social.GitHub)
	if m.Status == "" {
		m.Status = TeamMemberStatuses.Default()
	}
}

func (m *TeamMember) Validate() validation.Errors {
	return validateStatus(validation.Struct(m), TeamMemberStatuses, m.Status)
}

func (m *TeamMember) SetStatus(status string) error {
	if !TeamMemberStatuses.Contains(status) {
		return invalidStatus(TeamMemberStatuses)
	}
	m.Status = status
	return nil
}

func (m *TeamMember) Sanitize(s *content.Sanitizer) {
	m.Bio = s.PlainText(m.Bio)
}
