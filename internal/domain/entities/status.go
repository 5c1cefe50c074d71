package entities

import "strings"

// StatusOption is one enum value with the label and colour used for display.
type StatusOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Color string `json:"color"`
}

// StatusSet is a closed, ordered status enum. The first entry is the default.
type StatusSet []StatusOption

// Contains reports whether v is a member of the set.
func (s StatusSet) Contains(v string) bool {
	_, ok := s.Option(v)
	return ok
}

func (s StatusSet) Option(v string) (StatusOption, bool) {
	for _, o := range s {
		if o.Value == v {
			return o, true
		}
	}
	return StatusOption{}, false
}

// Default is the status new records start in.
func (s StatusSet) Default() string {
	if len(s) == 0 {
		return ""
	}
	return s[0].Value
}

// Label falls back to the raw value for unknown statuses.
func (s StatusSet) Label(v string) string {
	if o, ok := s.Option(v); ok {
		return o.Label
	}
	return v
}

func (s StatusSet) Color(v string) string {
	if o, ok := s.Option(v); ok {
		return o.Color
	}
	return "gray"
}

func (s StatusSet) Values() []string {
	out := make([]string, len(s))
	for i, o := range s {
		out[i] = o.Value
	}
	return out
}

func (s StatusSet) String() string {
	return strings.Join(s.Values(), ", ")
}

const (
	BlogPostDraft     = "draft"
	BlogPostPublished = "published"
	BlogPostScheduled = "scheduled"

	JobOpen   = "open"
	JobClosed = "closed"
	JobDraft  = "draft"

	ApplicationPending   = "pending"
	ApplicationReviewing = "reviewing"
	ApplicationApproved  = "approved"
	ApplicationRejected  = "rejected"

	VentureActive   = "active"
	VentureInactive = "inactive"
	VentureScaling  = "scaling"

	TeamMemberActive   = "Active"
	TeamMemberOnLeave  = "On Leave"
	TeamMemberInactive = "Inactive"

	MessageUnread   = "unread"
	MessageRead     = "read"
	MessageArchived = "archived"

	MediaImage    = "image"
	MediaVideo    = "video"
	MediaAudio    = "audio"
	MediaDocument = "document"
	MediaOther    = "other"
)

var (
	BlogPostStatuses = StatusSet{
		{BlogPostDraft, "Draft", "gray"},
		{BlogPostPublished, "Published", "green"},
		{BlogPostScheduled, "Scheduled", "blue"},
	}
	JobStatuses = StatusSet{
		{JobDraft, "Draft", "gray"},
		{JobOpen, "Open", "green"},
		{JobClosed, "Closed", "red"},
	}
	ApplicationStatuses = StatusSet{
		{ApplicationPending, "Pending", "yellow"},
		{ApplicationReviewing, "Reviewing", "blue"},
		{ApplicationApproved, "Approved", "green"},
		{ApplicationRejected, "Rejected", "red"},
	}
	VentureStatuses = StatusSet{
		{VentureActive, "Active", "green"},
		{VentureInactive, "Inactive", "gray"},
		{VentureScaling, "Scaling", "purple"},
	}
	TeamMemberStatuses = StatusSet{
		{TeamMemberActive, "Active", "green"},
		{TeamMemberOnLeave, "On Leave", "yellow"},
		{TeamMemberInactive, "Inactive", "gray"},
	}
	MessageStatuses = StatusSet{
		{MessageUnread, "Unread", "blue"},
		{MessageRead, "Read", "gray"},
		{MessageArchived, "Archived", "yellow"},
	}
	// Media has no workflow; its type plays the role of status in filters.
	MediaTypes = StatusSet{
		{MediaImage, "Image", "green"},
		{MediaVideo, "Video", "purple"},
		{MediaAudio, "Audio", "blue"},
		{MediaDocument, "Document", "yellow"},
		{MediaOther, "Other", "gray"},
	}

	JobTypes = []string{"Full-time", "Part-time", "Contract", "Internship", "Freelance"}
)

var statusSets = map[Kind]StatusSet{
	KindBlogPost:    BlogPostStatuses,
	KindJob:         JobStatuses,
	KindApplication: ApplicationStatuses,
	KindVenture:     VentureStatuses,
	KindTeamMember:  TeamMemberStatuses,
	KindMessage:     MessageStatuses,
	KindMedia:       MediaTypes,
}
