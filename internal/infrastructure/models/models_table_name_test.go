package models

import "testing"

func TestTableNames(t *testing.T) {
	cases := map[string]interface{ TableName() string }{
		"admin_users":      AdminUser{},
		"blog_posts":       BlogPost{},
		"jobs":             Job{},
		"job_applications": JobApplication{},
		"ventures":         Venture{},
		"team_members":     TeamMember{},
		"messages":         Message{},
		"media_assets":     MediaAsset{},
	}
	for want, m := range cases {
		if got := m.TableName(); got != want {
			t.Fatalf("unexpected table name: got %s want %s", got, want)
		}
	}
	if n := len(All()); n != len(cases) {
		t.Fatalf("All() returned %d models, want %d", n, len(cases))
	}
}
