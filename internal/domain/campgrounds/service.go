package campgrounds

import (
	"context"
	"fmt"

	"yelpcamp/internal/images"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type reviewRemover interface {
	DeleteMany(ctx context.Context, reviewIDs []int64) error
}

// Service owns the campground lifecycle steps that span more than one store.
type Service struct {
	campgrounds Store
	reviews     reviewRemover
	images      images.Store
	logger      *zap.SugaredLogger
}

func NewService(campgrounds Store, reviews reviewRemover, imgs images.Store, logger *zap.SugaredLogger) *Service {
	return &Service{
		campgrounds: campgrounds,
		reviews:     reviews,
		images:      imgs,
		logger:      logger,
	}
}

// Delete removes the campground and then everything it referenced: its
// reviews and its stored images.
func (s *Service) Delete(ctx context.Context, campgroundID int64) error {
	removed, err := s.campgrounds.Delete(ctx, campgroundID)
	if err != nil {
		return err
	}

	if err := s.Cascade(ctx, removed); err != nil {
		return fmt.Errorf("campground %d deleted, cleanup failed: %w", campgroundID, err)
	}

	s.logger.Infow("deleted campground with its reviews and images",
		"campground_id", removed.ID,
		"reviews", len(removed.ReviewIDs),
		"images", len(removed.Images),
	)
	return nil
}

// Cascade deletes the reviews and images referenced by a removed
// campground. The two steps run concurrently. A failed image deletion is
// logged and never returned. Running it again for the same campground is
// harmless.
func (s *Service) Cascade(ctx context.Context, removed *Campground) error {
	var g errgroup.Group

	g.Go(func() error {
		return s.reviews.DeleteMany(ctx, removed.ReviewIDs)
	})

	g.Go(func() error {
		keys := images.Keys(removed.Images)
		if len(keys) == 0 {
			return nil
		}
		if err := s.images.Destroy(ctx, keys...); err != nil {
			s.logger.Errorw("failed to delete campground images",
				"campground_id", removed.ID,
				"keys", keys,
				"error", err,
			)
		}
		return nil
	})

	return g.Wait()
}
