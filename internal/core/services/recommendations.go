package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/karmicdd/karmicdd-cli/internal/core/domain"
	"github.com/karmicdd/karmicdd-cli/internal/core/ports/driven"
	"github.com/karmicdd/karmicdd-cli/internal/core/ports/driving"
	"github.com/karmicdd/karmicdd-cli/internal/logger"
)

// Ensure RecommendationService implements the interface.
var _ driving.RecommendationService = (*RecommendationService)(nil)

// RecommendationAPI is the subset of the REST surface the service needs.
type RecommendationAPI interface {
	driven.RecommendationAPI
	driven.CompatibilityAPI
}

// RecommendationService fetches recommendations and substitutes the
// canned set when the recommendation endpoints fail.
type RecommendationService struct {
	api      RecommendationAPI
	sessions SessionSource
}

// NewRecommendationService creates a new recommendation service.
func NewRecommendationService(api RecommendationAPI, sessions SessionSource) *RecommendationService {
	return &RecommendationService{api: api, sessions: sessions}
}

// ForMatch returns recommendations for the pair formed with matchID.
// When the recommendation endpoint fails the canned set is returned with
// the pair's overall compatibility as its precision.
func (s *RecommendationService) ForMatch(ctx context.Context, matchID string) (*domain.RecommendationSet, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return nil, fmt.Errorf("%w: match id is required", domain.ErrInvalidInput)
	}

	sess, err := s.sessions.Current(ctx)
	if err != nil {
		return nil, err
	}
	startupID, investorID := domain.PairFor(sess.Role(), sess.UserID(), matchID)

	set, err := s.api.MatchRecommendations(ctx, startupID, investorID)
	if err == nil {
		if set.Precision == 0 {
			set.Precision = domain.DefaultPrecision
		}
		return set, nil
	}
	if isFatal(ctx, err) {
		return nil, fmt.Errorf("recommendations for %s: %w", matchID, err)
	}

	log := logger.Named("recommendations")
	log.Warn("recommendation endpoint failed, deriving from compatibility",
		zap.String("match_id", matchID), zap.Error(err))

	compat, cerr := s.api.Compatibility(ctx, startupID, investorID)
	if cerr != nil {
		return nil, fmt.Errorf("recommendations for %s: %w", matchID, errors.Join(err, cerr))
	}

	fb := domain.FallbackRecommendations(compat.OverallScore)
	return &fb, nil
}

// Batch returns recommendations for several matches. Every entry gets
// the canned set when the batch endpoint fails.
func (s *RecommendationService) Batch(ctx context.Context, matchIDs []string) ([]domain.BatchRecommendation, error) {
	ids := make([]string, 0, len(matchIDs))
	for _, id := range matchIDs {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return []domain.BatchRecommendation{}, nil
	}

	results, err := s.api.BatchRecommendations(ctx, ids)
	if err == nil {
		for i := range results {
			if r := results[i].Recommendations; r != nil && r.Precision == 0 {
				r.Precision = domain.DefaultPrecision
			}
		}
		return results, nil
	}
	if isFatal(ctx, err) {
		return nil, fmt.Errorf("batch recommendations: %w", err)
	}

	logger.Named("recommendations").Warn("batch endpoint failed, using canned recommendations",
		zap.Int("matches", len(ids)), zap.Error(err))

	out := make([]domain.BatchRecommendation, len(ids))
	for i, id := range ids {
		fb := domain.FallbackRecommendations(domain.DefaultPrecision)
		out[i] = domain.BatchRecommendation{MatchID: id, Recommendations: &fb}
	}
	return out, nil
}

// isFatal reports errors that placeholder data must not hide. Request
// timeouts are not fatal unless ctx itself is done.
func isFatal(ctx context.Context, err error) bool {
	return ctx.Err() != nil ||
		errors.Is(err, domain.ErrNoSession) ||
		errors.Is(err, domain.ErrUnauthorized)
}
