package itineraries

import (
	stderrors "errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"codeberg.org/atlasagency/server/internal/errors"
	"codeberg.org/atlasagency/server/internal/itinerary"
	"codeberg.org/atlasagency/server/internal/logger"
	"codeberg.org/atlasagency/server/internal/paywall"
	"codeberg.org/atlasagency/server/internal/sessions"
	"codeberg.org/atlasagency/server/internal/trip"
)

// GenerateHandler godoc
// @Summary Generate an itinerary
// @Description Builds the prompt from the trip form, generates the itinerary and stores it in the visitor's session. Only the first day is returned in full until the session is unlocked.
// @Tags itineraries
// @Accept json
// @Produce json
// @Param request body trip.Request true "Trip preferences"
// @Success 200 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /api/v1/itineraries [post]
func GenerateHandler(p Planner, store sessions.Store, checkoutURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		log := logger.FromContext(ctx)

		var req trip.Request
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.BadRequest(c, "invalid request body", err)
			return
		}

		if err := trip.Validate(req); err != nil {
			errors.InvalidFields(c, err)
			return
		}

		sessionID := sessions.IDFromContext(c)

		result, err := p.Plan(ctx, req)
		if stderrors.Is(err, itinerary.ErrUnparseable) {
			log.Warn("generated itinerary could not be split",
				"session_id", sessionID,
				"destination", req.Destination,
			)
			errors.Unparseable(c)
			return
		}
		if err != nil {
			errors.GenerationFailed(c, err)
			return
		}

		// only the itinerary changes: a session that was unlocked stays unlocked
		session, err := store.Update(ctx, sessionID, func(s *sessions.Session) {
			s.Request = &req
			s.Itinerary = result.Itinerary
			s.GeneratedAt = time.Now()
		})
		if err != nil {
			errors.InternalError(c, "failed to save itinerary", err)
			return
		}

		log.Info("itinerary generated",
			"session_id", sessionID,
			"destination", req.Destination,
			"duration", req.Duration,
			"days", len(result.Itinerary.Days),
			"model", result.Model,
			"input_tokens", result.InputTokens,
			"output_tokens", result.OutputTokens,
		)

		c.JSON(http.StatusOK, Response{
			Destination: req.Destination,
			Duration:    req.Duration,
			DayCount:    len(result.Itinerary.Days),
			Model:       result.Model,
			GeneratedAt: session.GeneratedAt,
			View:        paywall.Render(result.Itinerary, session.Gate, checkoutURL),
		})
	}
}

// CurrentHandler godoc
// @Summary Get the current itinerary
// @Description Returns the itinerary stored in the visitor's session, gated by its unlock state
// @Tags itineraries
// @Produce json
// @Success 200 {object} Response
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/v1/itineraries/current [get]
func CurrentHandler(store sessions.Store, checkoutURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := store.Get(c.Request.Context(), sessions.IDFromContext(c))
		if stderrors.Is(err, sessions.ErrSessionNotFound) || stderrors.Is(err, sessions.ErrSessionExpired) {
			errors.NoItinerary(c)
			return
		}
		if err != nil {
			errors.InternalError(c, "failed to load session", err)
			return
		}

		if session.Itinerary == nil {
			errors.NoItinerary(c)
			return
		}

		c.JSON(http.StatusOK, buildResponse(session, checkoutURL))
	}
}

func buildResponse(session *sessions.Session, checkoutURL string) Response {
	resp := Response{
		DayCount:    len(session.Itinerary.Days),
		GeneratedAt: session.GeneratedAt,
		View:        paywall.Render(session.Itinerary, session.Gate, checkoutURL),
	}

	if session.Request != nil {
		resp.Destination = session.Request.Destination
		resp.Duration = session.Request.Duration
	}

	return resp
}
