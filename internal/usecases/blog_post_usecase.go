package usecases

import (
	"context"
	"errors"
	"time"

	"company-site.backend/internal/domain/entities"
	domainerrors "company-site.backend/internal/domain/errors"
	"company-site.backend/internal/domain/repositories"
	"company-site.backend/pkg/logger"
	"go.uber.org/zap"
)

// BlogPostUsecase adds scheduled publishing to the blog post workflow.
type BlogPostUsecase struct {
	*ResourceUsecase[*entities.BlogPost]
	posts repositories.BlogPostRepository
}

func NewBlogPostUsecase(posts repositories.BlogPostRepository, deps ResourceDeps) *BlogPostUsecase {
	return &BlogPostUsecase{
		ResourceUsecase: NewResourceUsecase[*entities.BlogPost](posts, func() *entities.BlogPost { return &entities.BlogPost{} }, deps),
		posts:           posts,
	}
}

// PublishDue publishes scheduled posts whose publish time is not after now and
// returns how many were published. The write is conditional on the version
// that was listed, so a post edited in between is left alone. A post that
// fails is retried next run.
func (u *BlogPostUsecase) PublishDue(ctx context.Context, now time.Time, limit int) (int, error) {
	due, err := u.posts.ListDueScheduled(ctx, now, limit)
	if err != nil {
		return 0, err
	}

	published := 0
	for _, post := range due {
		stored, err := u.posts.UpdateStatus(ctx, post.ID, post.Version, entities.BlogPostPublished, nil)
		if errors.Is(err, domainerrors.ErrConflict) {
			logger.Info(ctx, "Scheduled post changed before publishing, skipped", zap.String("id", post.ID.String()))
			continue
		}
		if err != nil {
			logger.Warn(ctx, "Scheduled post not published", zap.String("id", post.ID.String()), zap.Error(err))
			continue
		}
		published++
		u.afterSave(ctx, stored)
	}
	return published, nil
}
