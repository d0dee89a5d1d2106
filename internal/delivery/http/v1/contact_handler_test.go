package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"portfolio-contact-api/config"
	"portfolio-contact-api/internal/delivery/http/response"
	"portfolio-contact-api/internal/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type MockContactUsecase struct {
	mock.Mock
}

func (m *MockContactUsecase) Submit(ctx context.Context, clientID string, in *domain.SubmissionInput) *domain.SubmissionResult {
	return m.Called(ctx, clientID, in).Get(0).(*domain.SubmissionResult)
}

func (m *MockContactUsecase) Info() *domain.ContactInfo {
	return m.Called().Get(0).(*domain.ContactInfo)
}

func newTestRouter(uc domain.ContactUsecase, trustProxy bool) *gin.Engine {
	return NewRouter(RouterDeps{
		ContactUC: uc,
		Config: &config.Config{
			GinMode:           gin.TestMode,
			FrontendURL:       "https://portfolio.dev",
			TrustProxyHeaders: trustProxy,
		},
	})
}

func decode(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var body response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestSubmitContactStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		result *domain.SubmissionResult
		status int
	}{
		{"sent", domain.Succeeded(), http.StatusOK},
		{"bot", domain.Failed(domain.OutcomeBotRejected, nil), http.StatusBadRequest},
		{"spam", domain.Failed(domain.OutcomeSpamDetected, nil), http.StatusBadRequest},
		{"invalid", domain.Failed(domain.OutcomeValidationFailed, domain.FieldErrors{"email": {"Please enter a valid email address"}}), http.StatusBadRequest},
		{"limited", domain.Failed(domain.OutcomeRateLimited, nil), http.StatusTooManyRequests},
		{"dispatch", domain.Failed(domain.OutcomeDispatchFailed, nil), http.StatusServiceUnavailable},
		{"internal", domain.Failed(domain.OutcomeInternalError, nil), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(MockContactUsecase)
			uc.On("Submit", mock.Anything, mock.Anything, mock.Anything).Return(tt.result).Once()

			req := httptest.NewRequest(http.MethodPost, "/v1/contact",
				strings.NewReader(`{"name":"Jane Doe","email":"jane@example.com","subject":"Hello","message":"Checking in"}`))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			newTestRouter(uc, false).ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			body := decode(t, w)
			assert.Equal(t, tt.result.Success, body.Success)
			assert.Equal(t, tt.result.Message, body.Message)
			assert.Equal(t, tt.result.Errors, body.Errors)
			assert.NotEmpty(t, body.RequestID)
		})
	}
}

func TestSubmitContactPassesClientContext(t *testing.T) {
	uc := new(MockContactUsecase)
	uc.On("Submit",
		mock.MatchedBy(func(ctx context.Context) bool {
			return domain.StringFromContext(ctx, domain.KeyClientIP) == "203.0.113.9" &&
				domain.StringFromContext(ctx, domain.KeyUserAgent) == "test-agent" &&
				domain.StringFromContext(ctx, domain.KeyRequestID) != ""
		}),
		"203.0.113.9",
		&domain.SubmissionInput{Name: "Jane", Email: "jane@example.com", Subject: "Hi there", Message: "Hello from a form", Website: ""},
	).Return(domain.Succeeded()).Once()

	form := url.Values{
		"name":    {"Jane"},
		"email":   {"jane@example.com"},
		"subject": {"Hi there"},
		"message": {"Hello from a form"},
	}
	req := httptest.NewRequest(http.MethodPost, "/v1/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	req.RemoteAddr = "10.0.0.2:5555"

	w := httptest.NewRecorder()
	newTestRouter(uc, true).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	uc.AssertExpectations(t)
}

func TestSubmitContactIgnoresProxyHeadersWhenUntrusted(t *testing.T) {
	uc := new(MockContactUsecase)
	uc.On("Submit", mock.Anything, "10.0.0.2", mock.Anything).Return(domain.Succeeded()).Once()

	req := httptest.NewRequest(http.MethodPost, "/v1/contact", strings.NewReader(`{"name":"Jane"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", "203.0.113.9")
	req.RemoteAddr = "10.0.0.2:5555"

	w := httptest.NewRecorder()
	newTestRouter(uc, false).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	uc.AssertExpectations(t)
}

func TestSubmitContactMalformedBody(t *testing.T) {
	uc := new(MockContactUsecase)

	req := httptest.NewRequest(http.MethodPost, "/v1/contact", strings.NewReader(`{"name":`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	newTestRouter(uc, false).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.False(t, body.Success)
	assert.Equal(t, "Invalid request body", body.Message)
	uc.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetContactInfo(t *testing.T) {
	uc := new(MockContactUsecase)
	uc.On("Info").Return(&domain.ContactInfo{
		Email:   "owner@example.com",
		Socials: []domain.SocialLink{{Label: "GitHub", URL: "https://github.com/owner"}},
	})

	w := httptest.NewRecorder()
	newTestRouter(uc, false).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/contact/info", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"email":"owner@example.com"`)
	assert.Contains(t, w.Body.String(), `"label":"GitHub"`)
}

func TestRouterHealthAndNotFound(t *testing.T) {
	r := newTestRouter(new(MockContactUsecase), false)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"redis":"disabled"`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, decode(t, w).Success)
}

func TestRouterExposesMetrics(t *testing.T) {
	w := httptest.NewRecorder()
	newTestRouter(new(MockContactUsecase), false).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
