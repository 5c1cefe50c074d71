package usecases

import (
	"context"
	"strings"
	"time"

	"company-site.backend/internal/domain/entities"
	domainerrors "company-site.backend/internal/domain/errors"
	"company-site.backend/pkg/crypto"
	"company-site.backend/pkg/logger"
	"go.uber.org/zap"
)

// sitePaths maps the first segment of a public path to the resource it renders.
var sitePaths = map[string]entities.Kind{
	"blog":     entities.KindBlogPost,
	"careers":  entities.KindJob,
	"jobs":     entities.KindJob,
	"ventures": entities.KindVenture,
	"team":     entities.KindTeamMember,
	"about":    entities.KindTeamMember,
}

var publicKinds = []entities.Kind{
	entities.KindBlogPost,
	entities.KindJob,
	entities.KindVenture,
	entities.KindTeamMember,
}

// RevalidateResult acknowledges a revalidation request.
type RevalidateResult struct {
	Revalidated bool   `json:"revalidated"`
	Path        string `json:"path"`
	Now         int64  `json:"now"`
}

// RevalidationUsecase purges cached public listings when a page must be rebuilt.
type RevalidationUsecase struct {
	secret string
	cache  ListCache
	now    func() time.Time
}

func NewRevalidationUsecase(secret string, cache ListCache) *RevalidationUsecase {
	return &RevalidationUsecase{secret: secret, cache: cache, now: time.Now}
}

// Handle checks the shared secret and purges what path renders.
func (u *RevalidationUsecase) Handle(ctx context.Context, path, secret string) (*RevalidateResult, error) {
	if !crypto.SecretsEqual(u.secret, secret) {
		return nil, domainerrors.Unauthorized("Invalid token")
	}
	path = strings.TrimSpace(path)
	if path == "" {
		path = "/"
	}
	if err := u.Revalidate(ctx, path); err != nil {
		return nil, err
	}
	return &RevalidateResult{Revalidated: true, Path: path, Now: u.now().UnixMilli()}, nil
}

// Revalidate drops the cached listings behind path. Unknown paths purge every
// public resource.
func (u *RevalidationUsecase) Revalidate(ctx context.Context, path string) error {
	if u.cache == nil {
		return nil
	}
	for _, kind := range KindsForPath(path) {
		if _, err := u.cache.Invalidate(ctx, string(kind)); err != nil {
			return err
		}
	}
	logger.Debug(ctx, "Revalidated", zap.String("path", path))
	return nil
}

// KindsForPath lists the resources whose data the public page at path shows.
func KindsForPath(path string) []entities.Kind {
	segment, _, _ := strings.Cut(strings.Trim(path, "/"), "/")
	if kind, ok := sitePaths[strings.ToLower(segment)]; ok {
		return []entities.Kind{kind}
	}
	return publicKinds
}
