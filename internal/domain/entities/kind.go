package entities

// Kind names a resource collection; the value doubles as its URL segment.
type Kind string

const (
	KindBlogPost    Kind = "blog-posts"
	KindJob         Kind = "jobs"
	KindVenture     Kind = "ventures"
	KindTeamMember  Kind = "team"
	KindMessage     Kind = "messages"
	KindMedia       Kind = "media"
	KindApplication Kind = "applications"
)

// AllKinds lists every managed collection in dashboard order.
var AllKinds = []Kind{
	KindBlogPost,
	KindJob,
	KindApplication,
	KindVenture,
	KindTeamMember,
	KindMessage,
	KindMedia,
}

var kindSingular = map[Kind]string{
	KindBlogPost:    "post",
	KindJob:         "job",
	KindVenture:     "venture",
	KindTeamMember:  "member",
	KindMessage:     "message",
	KindMedia:       "media",
	KindApplication: "application",
}

// Singular is the JSON key a single record of this kind is wrapped in.
func (k Kind) Singular() string {
	if s, ok := kindSingular[k]; ok {
		return s
	}
	return "item"
}

// Statuses returns the closed status enum of the kind.
func (k Kind) Statuses() StatusSet {
	return statusSets[k]
}

// Sluggable reports whether records of this kind carry a unique slug.
func (k Kind) Sluggable() bool {
	switch k {
	case KindBlogPost, KindJob, KindVenture:
		return true
	}
	return false
}

func (k Kind) String() string { return string(k) }
