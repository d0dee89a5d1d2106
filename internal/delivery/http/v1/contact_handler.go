package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-contact-api/internal/delivery/http/response"
	"portfolio-contact-api/internal/domain"
	"portfolio-contact-api/pkg/apperror"
	"portfolio-contact-api/pkg/clientip"
)

type ContactHandler struct {
	contactUC         domain.ContactUsecase
	trustProxyHeaders bool
}

// NewContactHandler registers the contact routes (public, no auth required)
func NewContactHandler(public *gin.RouterGroup, contactUC domain.ContactUsecase, trustProxyHeaders bool) {
	handler := &ContactHandler{
		contactUC:         contactUC,
		trustProxyHeaders: trustProxyHeaders,
	}

	public.POST("/contact", handler.SubmitContact)
	public.GET("/contact/info", handler.GetContactInfo)
}

// SubmitContact godoc
// @Summary      Submit Contact Form
// @Description  Send a message through the contact form. Accepts JSON or form-encoded bodies.
// @Tags         contact
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        contact  body      domain.SubmissionInput  true  "Contact Form Data"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      429      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Failure      503      {object}  response.Response
// @Router       /contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var req domain.SubmissionInput
	if err := c.ShouldBind(&req); err != nil {
		c.Error(apperror.New(http.StatusBadRequest, "Invalid request body", err))
		return
	}

	clientID := clientip.FromRequest(c.Request.Header, c.Request.RemoteAddr, h.trustProxyHeaders)

	ctx := context.WithValue(c.Request.Context(), domain.KeyClientIP, clientID)
	ctx = context.WithValue(ctx, domain.KeyUserAgent, c.Request.UserAgent())

	result := h.contactUC.Submit(ctx, clientID, &req)
	if result.Success {
		response.Success(c, http.StatusOK, result.Message, nil)
		return
	}

	response.Error(c, statusForOutcome(result.Outcome), result.Message, result.Errors)
}

// GetContactInfo godoc
// @Summary      Contact Information
// @Description  Alternate ways to reach the site owner.
// @Tags         contact
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.ContactInfo}
// @Router       /contact/info [get]
func (h *ContactHandler) GetContactInfo(c *gin.Context) {
	response.Success(c, http.StatusOK, "Contact information retrieved", h.contactUC.Info())
}

func statusForOutcome(outcome domain.Outcome) int {
	switch outcome {
	case domain.OutcomeSent:
		return http.StatusOK
	case domain.OutcomeRateLimited:
		return http.StatusTooManyRequests
	case domain.OutcomeDispatchFailed:
		return http.StatusServiceUnavailable
	case domain.OutcomeInternalError:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
