package repositories

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

const recordColumns = `
		id TEXT PRIMARY KEY,
		version INTEGER NOT NULL DEFAULT 1,`

const timestampColumns = `
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME`

func createBlogPostTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE blog_posts (`+recordColumns+`
		title TEXT NOT NULL,
		slug TEXT NOT NULL,
		content TEXT NOT NULL,
		excerpt TEXT,
		author_name TEXT NOT NULL,
		author_role TEXT,
		author_image TEXT,
		category TEXT,
		tags TEXT,
		status TEXT NOT NULL,
		featured_image TEXT,
		published_at DATETIME,
		read_time TEXT,`+timestampColumns+`
	);`)
	mustExec(t, db, `CREATE UNIQUE INDEX idx_blog_posts_slug ON blog_posts(slug) WHERE deleted_at IS NULL;`)
}

func createJobTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE jobs (`+recordColumns+`
		title TEXT NOT NULL,
		slug TEXT NOT NULL,
		description TEXT NOT NULL,
		short_description TEXT,
		department TEXT NOT NULL,
		location TEXT NOT NULL,
		type TEXT NOT NULL,
		salary TEXT,
		experience_level TEXT NOT NULL,
		technologies TEXT,
		responsibilities TEXT,
		requirements TEXT,
		benefits TEXT,
		status TEXT NOT NULL,`+timestampColumns+`
	);`)
	mustExec(t, db, `CREATE UNIQUE INDEX idx_jobs_slug ON jobs(slug) WHERE deleted_at IS NULL;`)
}

func createJobApplicationTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE job_applications (`+recordColumns+`
		job_id TEXT NOT NULL,
		job_title TEXT NOT NULL,
		job_slug TEXT NOT NULL,
		full_name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT NOT NULL,
		linkedin_url TEXT,
		portfolio_url TEXT,
		cover_letter TEXT NOT NULL,
		experience TEXT,
		expected_salary TEXT,
		available_from TEXT,
		attachments TEXT,
		status TEXT NOT NULL,
		admin_notes TEXT,
		applied_at DATETIME NOT NULL,`+timestampColumns+`
	);`)
}

func createVentureTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE ventures (`+recordColumns+`
		name TEXT NOT NULL,
		slug TEXT NOT NULL,
		description TEXT NOT NULL,
		tagline TEXT NOT NULL,
		category TEXT,
		status TEXT NOT NULL,
		founded_year INTEGER,
		team_size TEXT,
		growth TEXT,
		website TEXT,
		metrics TEXT,
		technologies TEXT,
		features TEXT,
		achievements TEXT,
		testimonials TEXT,
		logo TEXT,
		featured_image TEXT,`+timestampColumns+`
	);`)
	mustExec(t, db, `CREATE UNIQUE INDEX idx_ventures_slug ON ventures(slug) WHERE deleted_at IS NULL;`)
}

func createTeamMemberTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE team_members (`+recordColumns+`
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		role TEXT NOT NULL,
		department TEXT,
		location TEXT,
		join_date DATETIME,
		bio TEXT,
		skills TEXT,
		linkedin_url TEXT,
		twitter_url TEXT,
		github_url TEXT,
		profile_image TEXT,
		status TEXT NOT NULL,
		display_order INTEGER NOT NULL DEFAULT 0,`+timestampColumns+`
	);`)
}

func createMessageTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE messages (`+recordColumns+`
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		subject TEXT,
		message TEXT NOT NULL,
		phone TEXT,
		status TEXT NOT NULL,`+timestampColumns+`
	);`)
}

func createMediaAssetTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE media_assets (`+recordColumns+`
		filename TEXT NOT NULL,
		url TEXT NOT NULL,
		type TEXT NOT NULL,
		size INTEGER NOT NULL DEFAULT 0,
		folder TEXT,
		content_type TEXT,
		storage_key TEXT,`+timestampColumns+`
	);`)
}

func createAdminUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE admin_users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL,
		last_login_at DATETIME,`+timestampColumns+`
	);`)
}
