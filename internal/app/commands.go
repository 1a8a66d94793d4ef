package app

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"hbnb_web/internal/adapters/hbnb"
	"hbnb_web/internal/domain"
)

// Review submission walks Idle -> Validating -> Submitting -> Succeeded|Failed.
// Validation failures bounce back to Idle without touching the network.

type SubmitState int

const (
	StateIdle SubmitState = iota
	StateValidating
	StateSubmitting
	StateSucceeded
	StateFailed
)

type FailureCause int

const (
	CauseNone FailureCause = iota
	CauseValidation
	CauseRejected // server sent a structured {error: ...} body
	CauseHTTP     // non-2xx without a usable message
	CauseNetwork  // request never completed
)

type SubmitOutcome struct {
	State         SubmitState
	Cause         FailureCause
	Message       string
	LoginRequired bool
}

const (
	msgLoginRequired = "You must be logged in to submit a review."
	msgEmptyText     = "Please write a review before submitting."
	msgBadRating     = "Please select a rating between 1 and 5."
	msgSubmitFailed  = "Failed to submit review."
	msgNetwork       = "Network error. Please try again."
	msgSubmitted     = "Review submitted successfully!"
)

type ReviewFlow struct {
	api   domain.PlacesAPI
	pages *PageService
}

func NewReviewFlow(api domain.PlacesAPI, pages *PageService) *ReviewFlow {
	return &ReviewFlow{api: api, pages: pages}
}

func (f *ReviewFlow) Submit(ctx context.Context, token, placeID, text string, rating int) SubmitOutcome {
	// Validating
	if token == "" {
		return SubmitOutcome{State: StateIdle, Cause: CauseValidation, Message: msgLoginRequired, LoginRequired: true}
	}
	if strings.TrimSpace(text) == "" {
		return SubmitOutcome{State: StateIdle, Cause: CauseValidation, Message: msgEmptyText}
	}
	if rating < 1 || rating > 5 {
		return SubmitOutcome{State: StateIdle, Cause: CauseValidation, Message: msgBadRating}
	}

	// Submitting
	_, err := f.api.SubmitReview(ctx, token, placeID, text, rating)
	if err != nil {
		var rej *hbnb.Rejection
		if errors.As(err, &rej) {
			// duplicate review, self-review, ... the server's wording reaches
			// the user untouched
			return SubmitOutcome{State: StateFailed, Cause: CauseRejected, Message: rej.Message}
		}
		var se *hbnb.StatusError
		if errors.As(err, &se) || errors.Is(err, hbnb.ErrUnauthorized) ||
			errors.Is(err, hbnb.ErrForbidden) || errors.Is(err, hbnb.ErrNotFound) {
			log.Warn().Str("place_id", placeID).Err(err).Msg("review submit refused")
			return SubmitOutcome{State: StateFailed, Cause: CauseHTTP, Message: msgSubmitFailed}
		}
		log.Warn().Str("place_id", placeID).Err(err).Msg("review submit transport failure")
		return SubmitOutcome{State: StateFailed, Cause: CauseNetwork, Message: msgNetwork}
	}

	if f.pages != nil {
		f.pages.InvalidatePlace(ctx, placeID)
	}
	return SubmitOutcome{State: StateSucceeded, Message: msgSubmitted}
}
