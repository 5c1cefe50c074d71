package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"company-site.backend/internal/domain/entities"
	"company-site.backend/pkg/adminclient"
	"github.com/spf13/cobra"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed seed.schema.json
var seedSchema []byte

const defaultAPIURL = "http://localhost:8080"

type seedFile struct {
	BlogPosts []json.RawMessage `json:"blogPosts"`
	Jobs      []json.RawMessage `json:"jobs"`
	Ventures  []json.RawMessage `json:"ventures"`
	Team      []json.RawMessage `json:"team"`
}

func (f seedFile) total() int {
	return len(f.BlogPosts) + len(f.Jobs) + len(f.Ventures) + len(f.Team)
}

// seedExtras are the entry keys that are not part of the record.
type seedExtras struct {
	// Files maps a record field to a local path, relative to the seed file.
	Files map[string]string `json:"files"`
}

// SeedSchemaError lists every schema violation in a seed file.
type SeedSchemaError struct {
	Problems []string
}

func (e *SeedSchemaError) Error() string {
	var sb strings.Builder
	sb.WriteString("seed file is invalid:")
	for i, p := range e.Problems {
		sb.WriteString(fmt.Sprintf("\n  %d. %s", i+1, p))
	}
	return sb.String()
}

func validateSeed(doc []byte) error {
	result, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(seedSchema), gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}
	if result.Valid() {
		return nil
	}
	schemaErr := &SeedSchemaError{Problems: make([]string, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		schemaErr.Problems = append(schemaErr.Problems, field+": "+desc.Description())
	}
	return schemaErr
}

var (
	blogPostFiles = map[string]func(*entities.BlogPost, string){
		"featuredImage": func(p *entities.BlogPost, url string) { p.FeaturedImage = url },
		"author.image":  func(p *entities.BlogPost, url string) { p.Author.Image = url },
	}
	ventureFiles = map[string]func(*entities.Venture, string){
		"logo":          func(v *entities.Venture, url string) { v.Logo = url },
		"featuredImage": func(v *entities.Venture, url string) { v.FeaturedImage = url },
	}
	teamFiles = map[string]func(*entities.TeamMember, string){
		"profileImage": func(m *entities.TeamMember, url string) { m.ProfileImage = url },
	}
)

type seeder struct {
	client  *adminclient.Client
	dir     string
	out     io.Writer
	created int
	failed  int
}

func (s *seeder) fail(label string, err error, fields map[string]string) {
	s.failed++
	_, _ = fmt.Fprintf(s.out, "FAIL %s: %v\n", label, err)
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		_, _ = fmt.Fprintf(s.out, "  %s: %s\n", k, fields[k])
	}
}

// seedKind creates every entry through a form, so drafts are validated and
// their files uploaded before the record is saved. A failed entry is reported
// and the rest continue.
func seedKind[P entities.Resource](ctx context.Context, s *seeder, entries []json.RawMessage, newItem func() P, files map[string]func(P, string)) {
	res := adminclient.NewResource(s.client, newItem)
	for i, raw := range entries {
		label := fmt.Sprintf("%s[%d]", res.Kind(), i)

		draft := newItem()
		var extras seedExtras
		if err := json.Unmarshal(raw, draft); err != nil {
			s.fail(label, err, nil)
			continue
		}
		_ = json.Unmarshal(raw, &extras)

		form, err := adminclient.NewFormFrom(res, s.client, newItem, draft)
		if err != nil {
			s.fail(label, err, nil)
			continue
		}
		if err := attachFiles(form, s.dir, res.Kind(), extras.Files, files); err != nil {
			s.fail(label, err, nil)
			continue
		}

		saved, err := form.Submit(ctx)
		if err != nil {
			s.fail(label, err, form.Errors())
			continue
		}
		s.created++
		_, _ = fmt.Fprintf(s.out, "created %s %s\n", res.Kind().Singular(), saved.Base().ID)
	}
}

// attachFiles queues each local file for its record field; unknown fields are
// rejected before anything is uploaded.
func attachFiles[P entities.Resource](form *adminclient.Form[P], dir string, kind entities.Kind, paths map[string]string, assigners map[string]func(P, string)) error {
	fields := make([]string, 0, len(paths))
	for field := range paths {
		if _, ok := assigners[field]; !ok {
			return fmt.Errorf("%s records have no file field %q", kind.Singular(), field)
		}
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		path := paths[field]
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		form.Attach(field, string(kind), filepath.Base(path), func() (io.ReadCloser, error) {
			return os.Open(path)
		}, assigners[field])
	}
	return nil
}

type seedOptions struct {
	file     string
	apiURL   string
	email    string
	password string
}

func newSeedCmd(deps cliDeps) *cobra.Command {
	opts := seedOptions{apiURL: os.Getenv("SITE_API_URL")}
	if opts.apiURL == "" {
		opts.apiURL = defaultAPIURL
	}
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create site content from a JSON seed file through the admin API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSeed(cmd.Context(), deps, opts, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "path to the seed file (required)")
	cmd.Flags().StringVar(&opts.apiURL, "api", opts.apiURL, "base URL of the site backend")
	cmd.Flags().StringVar(&opts.email, "email", "", "admin login email (required)")
	cmd.Flags().StringVar(&opts.password, "password", "", "admin password (required)")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func runSeed(ctx context.Context, deps cliDeps, opts seedOptions, out io.Writer) error {
	doc, err := os.ReadFile(opts.file)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}
	if err := validateSeed(doc); err != nil {
		return err
	}
	var file seedFile
	if err := json.Unmarshal(doc, &file); err != nil {
		return fmt.Errorf("failed to parse seed file: %w", err)
	}

	client := deps.newClient(opts.apiURL)
	if _, err := client.Login(ctx, opts.email, opts.password); err != nil {
		return fmt.Errorf("failed to log in as %s: %w", opts.email, err)
	}

	s := &seeder{client: client, dir: filepath.Dir(opts.file), out: out}
	seedKind(ctx, s, file.Team, func() *entities.TeamMember { return &entities.TeamMember{} }, teamFiles)
	seedKind(ctx, s, file.Ventures, func() *entities.Venture { return &entities.Venture{} }, ventureFiles)
	seedKind(ctx, s, file.Jobs, func() *entities.Job { return &entities.Job{} }, nil)
	seedKind(ctx, s, file.BlogPosts, func() *entities.BlogPost { return &entities.BlogPost{} }, blogPostFiles)

	_, _ = fmt.Fprintf(out, "seeded %d of %d records\n", s.created, file.total())
	if s.failed > 0 {
		return fmt.Errorf("%d of %d records failed", s.failed, file.total())
	}
	return nil
}
