package license

import (
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"codeberg.org/atlasagency/server/internal/errors"
	"codeberg.org/atlasagency/server/internal/license"
	"codeberg.org/atlasagency/server/internal/logger"
	"codeberg.org/atlasagency/server/internal/paywall"
	"codeberg.org/atlasagency/server/internal/sessions"
)

// VerifyHandler checks a license key and unlocks the visitor's session when
// it is valid. Rejected keys and unreachable services leave the gate as is.
func VerifyHandler(verifier Verifier, store sessions.Store, checkoutURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		log := logger.FromContext(ctx)

		var req VerifyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		if strings.TrimSpace(req.LicenseKey) == "" {
			errors.BadRequest(c, "license key is required", nil)
			return
		}

		sessionID := sessions.IDFromContext(c)
		result := verifier.Verify(ctx, req.LicenseKey)

		log.Info("license verification",
			"session_id", sessionID,
			"status", result.Status,
		)

		switch result.Status {
		case license.StatusValid:
		case license.StatusConnectionError:
			errors.LicenseUnavailable(c, result.Message)
			return
		case license.StatusWrongProduct:
			errors.LicenseRejected(c, errors.CodeWrongProduct, result.Message)
			return
		default:
			errors.LicenseRejected(c, errors.CodeLicenseInvalid, result.Message)
			return
		}

		session, err := store.Update(ctx, sessionID, func(s *sessions.Session) {
			s.Gate = s.Gate.Apply(result)
		})
		if err != nil {
			errors.InternalError(c, "failed to unlock session", err)
			return
		}

		resp := VerifyResponse{
			Status:   result.Status,
			Message:  result.Message,
			Unlocked: session.Gate.Unlocked(),
		}

		if session.Itinerary != nil {
			view := paywall.Render(session.Itinerary, session.Gate, checkoutURL)
			resp.View = &view
		}

		c.JSON(http.StatusOK, resp)
	}
}

// StatusHandler reports whether the visitor's session is unlocked
func StatusHandler(store sessions.Store, checkoutURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := StatusResponse{}

		session, err := store.Get(c.Request.Context(), sessions.IDFromContext(c))
		switch {
		case err == nil:
			resp.Unlocked = session.Gate.Unlocked()
			resp.HasItinerary = session.Itinerary != nil
		case stderrors.Is(err, sessions.ErrSessionNotFound), stderrors.Is(err, sessions.ErrSessionExpired):
			// a visitor without a stored session is locked
		default:
			errors.InternalError(c, "failed to load session", err)
			return
		}

		if !resp.Unlocked {
			resp.CheckoutURL = checkoutURL
			resp.CheckoutLabel = paywall.PurchaseLabel
		}

		c.JSON(http.StatusOK, resp)
	}
}
