package handler

import (
	"bytes"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"benefitscout/internal/profile/service"
	"benefitscout/internal/profile/store"
	id "benefitscout/pkg/domain"
	"benefitscout/pkg/testutil"
)

func newProfileRouter(t *testing.T) (http.Handler, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))
	svc := service.New(store.NewInMemory(), service.WithLogger(logger))

	r := chi.NewRouter()
	New(svc, logger).Register(r)
	return r, &logs
}

func TestProfileLifecycle(t *testing.T) {
	router, _ := newProfileRouter(t)
	userID := id.NewUserID()

	testutil.Given(t, "a user without a stored profile", func(t *testing.T) {
		testutil.When(t, "the profile is fetched", func(t *testing.T) {
			req := testutil.WithUserID(testutil.NewRequest(t, http.MethodGet, "/user/profile"), userID)
			rr := testutil.DoRequest(router, req)

			testutil.Then(t, "it is not found", func(t *testing.T) {
				testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "not_found")
			})
		})

		testutil.When(t, "a partial profile is saved", func(t *testing.T) {
			body := map[string]any{"currentIncome": 10000, "householdSize": 2, "age": 70, "maritalStatus": "Married"}
			req := testutil.WithUserID(testutil.NewJSONRequest(t, http.MethodPut, "/user/profile", body), userID)
			rr := testutil.DoRequest(router, req)

			testutil.Then(t, "the merged profile is returned with defaults", func(t *testing.T) {
				testutil.AssertStatusOK(t, rr)
				resp := testutil.UnmarshalResponse[ProfileResponse](t, rr)
				assert.Equal(t, 10000.0, resp.CurrentIncome)
				assert.Equal(t, 2, resp.HouseholdSize)
				assert.Equal(t, "married", resp.MaritalStatus)
				assert.Equal(t, "employed", resp.EmploymentStatus)
				assert.False(t, resp.OnboardingCompleted)
			})
		})

		testutil.When(t, "onboarding is completed in a later update", func(t *testing.T) {
			body := map[string]any{"onboardingCompleted": true, "monthlyRent": 800}
			req := testutil.WithUserID(testutil.NewJSONRequest(t, http.MethodPut, "/user/profile", body), userID)
			rr := testutil.DoRequest(router, req)

			testutil.Then(t, "earlier fields are kept", func(t *testing.T) {
				testutil.AssertStatusOK(t, rr)
				resp := testutil.UnmarshalResponse[ProfileResponse](t, rr)
				assert.Equal(t, 10000.0, resp.CurrentIncome)
				assert.Equal(t, 70, resp.Age)
				assert.Equal(t, 800.0, resp.MonthlyRent)
				assert.True(t, resp.OnboardingCompleted)
			})
		})

		testutil.When(t, "the profile is fetched again", func(t *testing.T) {
			req := testutil.WithUserID(testutil.NewRequest(t, http.MethodGet, "/user/profile"), userID)
			rr := testutil.DoRequest(router, req)

			testutil.Then(t, "it reflects both updates", func(t *testing.T) {
				testutil.AssertStatusOK(t, rr)
				resp := testutil.UnmarshalResponse[ProfileResponse](t, rr)
				assert.Equal(t, userID.String(), resp.UserID)
				assert.True(t, resp.OnboardingCompleted)
			})
		})
	})
}

func TestUpdateProfileValidation(t *testing.T) {
	router, _ := newProfileRouter(t)
	userID := id.NewUserID()

	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{"empty body", ``, "bad_request"},
		{"malformed json", `{"age":`, "bad_request"},
		{"no fields", `{}`, "validation_error"},
		{"negative income", `{"currentIncome": -5}`, "validation_error"},
		{"zero household", `{"householdSize": 0}`, "validation_error"},
		{"unknown marital status", `{"maritalStatus": "separated"}`, "validation_error"},
		{"unknown employment", `{"employmentStatus": "astronaut"}`, "validation_error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.WithUserID(testutil.NewRequestWithBody(t, http.MethodPut, "/user/profile", tt.body), userID)
			rr := testutil.DoRequest(router, req)
			testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, tt.wantCode)
		})
	}
}

func TestProfileRequiresUser(t *testing.T) {
	router, _ := newProfileRouter(t)

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/user/profile"))
	testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthorized")

	rr = testutil.DoRequest(router, testutil.NewRequestWithBody(t, http.MethodPut, "/user/profile", `{"age":1}`))
	testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthorized")

	rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodDelete, "/user/profile"))
	testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthorized")
}

func TestDeleteProfile(t *testing.T) {
	router, _ := newProfileRouter(t)
	userID := id.NewUserID()

	testutil.Given(t, "a user with a stored profile", func(t *testing.T) {
		req := testutil.WithUserID(testutil.NewJSONRequest(t, http.MethodPut, "/user/profile", map[string]any{"age": 40}), userID)
		testutil.AssertStatusOK(t, testutil.DoRequest(router, req))

		testutil.When(t, "the profile is deleted", func(t *testing.T) {
			req := testutil.WithUserID(testutil.NewRequest(t, http.MethodDelete, "/user/profile"), userID)
			rr := testutil.DoRequest(router, req)

			testutil.Then(t, "no content is returned and the profile is gone", func(t *testing.T) {
				testutil.AssertStatus(t, rr, http.StatusNoContent)

				req := testutil.WithUserID(testutil.NewRequest(t, http.MethodGet, "/user/profile"), userID)
				testutil.AssertStatusAndError(t, testutil.DoRequest(router, req), http.StatusNotFound, "not_found")
			})
		})

		testutil.When(t, "the profile is deleted again", func(t *testing.T) {
			req := testutil.WithUserID(testutil.NewRequest(t, http.MethodDelete, "/user/profile"), userID)
			rr := testutil.DoRequest(router, req)

			testutil.Then(t, "it is not found", func(t *testing.T) {
				testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "not_found")
			})
		})
	})
}

func TestUpdateProfileLogsFailures(t *testing.T) {
	router, logs := newProfileRouter(t)
	req := testutil.WithRequestID(
		testutil.WithUserID(testutil.NewRequestWithBody(t, http.MethodPut, "/user/profile", `{"assets": -1}`), id.NewUserID()),
		"req-123",
	)
	rr := testutil.DoRequest(router, req)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, logs.String(), "req-123")
}
