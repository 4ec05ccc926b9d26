package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/karmicdd/karmicdd-cli/internal/core/domain"
	"github.com/karmicdd/karmicdd-cli/internal/core/ports/driven"
	"github.com/karmicdd/karmicdd-cli/internal/core/ports/driving"
	"github.com/karmicdd/karmicdd-cli/internal/logger"
)

// Ensure CompatibilityViewer implements the interface.
var _ driving.CompatibilityViewer = (*CompatibilityViewer)(nil)

// CompatibilityViewer loads the compatibility panel for the selected match.
//
// The panel is never left blank: a 404 becomes the questionnaire state and
// every other failure shows placeholder scores.
type CompatibilityViewer struct {
	api      driven.CompatibilityAPI
	sessions SessionSource
	cache    driven.Cache
	cacheTTL time.Duration

	mu   sync.Mutex
	seq  uint64
	view domain.CompatibilityView
}

// NewCompatibilityViewer creates a new viewer. cache is optional.
func NewCompatibilityViewer(
	api driven.CompatibilityAPI,
	sessions SessionSource,
	cache driven.Cache,
	cacheTTL time.Duration,
) *CompatibilityViewer {
	return &CompatibilityViewer{
		api:      api,
		sessions: sessions,
		cache:    cache,
		cacheTTL: cacheTTL,
		view:     domain.CompatibilityView{State: domain.CompatNone},
	}
}

// Select loads compatibility between the active user and matchID.
func (v *CompatibilityViewer) Select(ctx context.Context, matchID string) (domain.CompatibilityView, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return domain.CompatibilityView{}, fmt.Errorf("%w: match id is required", domain.ErrInvalidInput)
	}

	v.mu.Lock()
	v.seq++
	token := v.seq
	v.view = domain.CompatibilityView{State: domain.CompatLoading, MatchID: matchID}
	v.mu.Unlock()

	sess, err := v.sessions.Current(ctx)
	if err != nil {
		v.mu.Lock()
		defer v.mu.Unlock()
		if token != v.seq {
			return v.view, domain.ErrStaleResponse
		}
		v.view = domain.CompatibilityView{State: domain.CompatNone}
		return v.view, err
	}

	startupID, investorID := domain.PairFor(sess.Role(), sess.UserID(), matchID)
	data, err := v.load(ctx, startupID, investorID)

	v.mu.Lock()
	defer v.mu.Unlock()

	if token != v.seq {
		return v.view, domain.ErrStaleResponse
	}

	switch {
	case err == nil:
		shown := data.WithDefaults()
		v.view = domain.CompatibilityView{State: domain.CompatShown, MatchID: matchID, Data: &shown}
	case ctx.Err() != nil:
		// Caller gave up. A timeout inside the transport falls back below.
		v.view = domain.CompatibilityView{State: domain.CompatNone}
		return v.view, err
	case errors.Is(err, domain.ErrNotFound):
		v.view = domain.CompatibilityView{
			State:   domain.CompatQuestionnaire,
			MatchID: matchID,
			Message: domain.UserMessage(domain.ErrQuestionnaireIncomplete),
		}
	default:
		logger.Named("compatibility").Warn("showing placeholder compatibility",
			zap.String("match_id", matchID),
			zap.String("startup_id", startupID),
			zap.String("investor_id", investorID),
			zap.Error(err))
		fb := domain.FallbackCompatibility()
		v.view = domain.CompatibilityView{
			State:   domain.CompatFallback,
			MatchID: matchID,
			Data:    &fb,
			Message: domain.UserMessage(err),
		}
	}
	return v.view, nil
}

// Deselect clears the panel. A response still in flight is discarded.
func (v *CompatibilityViewer) Deselect() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.seq++
	v.view = domain.CompatibilityView{State: domain.CompatNone}
}

// View returns the current panel state.
func (v *CompatibilityViewer) View() domain.CompatibilityView {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.view
}

func (v *CompatibilityViewer) load(ctx context.Context, startupID, investorID string) (*domain.CompatibilityData, error) {
	key := "compat:" + startupID + ":" + investorID

	if v.cache != nil {
		if raw, ok, err := v.cache.Get(ctx, key); err == nil && ok {
			var data domain.CompatibilityData
			if json.Unmarshal(raw, &data) == nil {
				logger.Debug("Compatibility %s/%s served from cache", startupID, investorID)
				return &data, nil
			}
		}
	}

	data, err := v.api.Compatibility(ctx, startupID, investorID)
	if err != nil {
		return nil, err
	}

	if v.cache != nil {
		if raw, merr := json.Marshal(data); merr == nil {
			if serr := v.cache.Set(ctx, key, raw, v.cacheTTL); serr != nil {
				logger.Named("compatibility").Debug("cache write failed", zap.Error(serr))
			}
		}
	}
	return data, nil
}
