package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"benefitscout/internal/benefits/formula"
	"benefitscout/internal/eligibility"
	"benefitscout/internal/eligibility/handler/mocks"
	"benefitscout/internal/eligibility/service"
	id "benefitscout/pkg/domain"
	dErrors "benefitscout/pkg/domain-errors"
	"benefitscout/pkg/testutil"
)

//go:generate mockgen -source=handler.go -destination=mocks/eligibility-mocks.go -package=mocks Service

type HandlerSuite struct {
	suite.Suite
	svc    *mocks.MockService
	router http.Handler
	userID id.UserID
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.T().Cleanup(ctrl.Finish)
	s.svc = mocks.NewMockService(ctrl)

	h := New(s.svc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r := chi.NewRouter()
	h.Register(r)
	h.RegisterPublic(r)
	s.router = r
	s.userID = id.NewUserID()
}

func (s *HandlerSuite) authed(req *http.Request) *http.Request {
	return testutil.WithUserID(req, s.userID)
}

func sampleReport() *service.Report {
	results := eligibility.Results{
		eligibility.ProgramSNAP:     {Eligible: true, EstimatedAmount: 405, Reason: "Income within 130% FPL"},
		eligibility.ProgramMedicare: {Eligible: true, Reason: "Age 65+"},
		eligibility.ProgramWIC:      {Eligible: false, Reason: "Requires pregnancy or children in the household"},
	}
	return &service.Report{
		Results:     results,
		Summary:     results.Summary(),
		BenefitYear: 2024,
		EvaluatedAt: time.Date(2024, 7, 4, 12, 0, 0, 0, time.UTC),
	}
}

// =============================================================================
// GET /eligibility
// =============================================================================

func (s *HandlerSuite) TestCheckAll() {
	s.Run("returns results with summary", func() {
		s.svc.EXPECT().CheckAll(gomock.Any(), s.userID).Return(sampleReport(), nil)

		rr := testutil.DoRequest(s.router, s.authed(testutil.NewRequest(s.T(), http.MethodGet, "/eligibility")))
		testutil.AssertStatusOK(s.T(), rr)

		resp := testutil.UnmarshalResponse[EligibilityResponse](s.T(), rr)
		s.Len(resp.Results, 3)
		s.True(resp.Results["snap"].Eligible)
		s.Equal(405.0, resp.Results["snap"].EstimatedAmount)
		s.Equal(2, resp.Summary.EligibleCount)
		s.Equal(405.0, resp.Summary.TotalEstimatedMonthly)
		s.Equal(2024, resp.Summary.BenefitYear)
	})

	s.Run("incomplete onboarding is a 400", func() {
		s.svc.EXPECT().CheckAll(gomock.Any(), s.userID).
			Return(nil, dErrors.New(dErrors.CodeIncompleteProfile, "Please complete onboarding first"))

		rr := testutil.DoRequest(s.router, s.authed(testutil.NewRequest(s.T(), http.MethodGet, "/eligibility")))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "incomplete_profile")
	})

	s.Run("internal errors hide details", func() {
		s.svc.EXPECT().CheckAll(gomock.Any(), s.userID).
			Return(nil, dErrors.Wrap(errors.New("pq: connection refused"), dErrors.CodeInternal, "failed to load profile"))

		rr := testutil.DoRequest(s.router, s.authed(testutil.NewRequest(s.T(), http.MethodGet, "/eligibility")))
		s.Equal(http.StatusInternalServerError, rr.Code)
		s.NotContains(rr.Body.String(), "pq:")
	})

	s.Run("requires a user", func() {
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/eligibility"))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, "unauthorized")
	})
}

// =============================================================================
// GET /eligibility/{program}
// =============================================================================

func (s *HandlerSuite) TestCheckOne() {
	s.Run("returns the single program result", func() {
		s.svc.EXPECT().CheckOne(gomock.Any(), s.userID, "medicare").
			Return(eligibility.ProgramMedicare, eligibility.ProgramResult{Eligible: true, Reason: "Age 65+"}, nil)

		rr := testutil.DoRequest(s.router, s.authed(testutil.NewRequest(s.T(), http.MethodGet, "/eligibility/medicare")))
		testutil.AssertStatusOK(s.T(), rr)

		resp := testutil.UnmarshalResponse[ProgramResultResponse](s.T(), rr)
		s.True(resp.Eligible)
		s.Equal("Age 65+", resp.Reason)
		s.Zero(resp.EstimatedAmount)
	})

	s.Run("unknown program is a 404", func() {
		s.svc.EXPECT().CheckOne(gomock.Any(), s.userID, "unicorn").
			Return(eligibility.ProgramID(""), eligibility.ProgramResult{}, dErrors.New(dErrors.CodeNotFound, "benefit type not found"))

		rr := testutil.DoRequest(s.router, s.authed(testutil.NewRequest(s.T(), http.MethodGet, "/eligibility/unicorn")))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
	})
}

// =============================================================================
// POST /eligibility/evaluate
// =============================================================================

func (s *HandlerSuite) TestEvaluate() {
	s.Run("maps the body onto a profile and filter", func() {
		s.svc.EXPECT().Evaluate(gomock.Any(), gomock.Any(), []string{"snap", "medicare"}).DoAndReturn(
			func(_ context.Context, p eligibility.Profile, _ []string) (*service.Report, error) {
				s.Equal(10000.0, p.CurrentIncome)
				s.Equal(2, p.HouseholdSize)
				s.Equal(eligibility.MaritalMarried, p.MaritalStatus)
				s.Equal("CA", p.State)
				return sampleReport(), nil
			})

		body := map[string]any{
			"currentIncome": 10000,
			"householdSize": 2,
			"age":           70,
			"maritalStatus": " Married ",
			"state":         "ca",
			"programs":      []string{" snap", "medicare "},
		}
		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/eligibility/evaluate", body))
		testutil.AssertStatusOK(s.T(), rr)
		testutil.AssertJSONHasKey(s.T(), rr, "summary")
	})

	s.Run("works without authentication", func() {
		s.svc.EXPECT().Evaluate(gomock.Any(), gomock.Any(), gomock.Nil()).Return(sampleReport(), nil)

		rr := testutil.DoRequest(s.router, testutil.NewRequestWithBody(s.T(), http.MethodPost, "/eligibility/evaluate", `{}`))
		testutil.AssertStatusOK(s.T(), rr)
	})

	s.Run("malformed body is a 400", func() {
		rr := testutil.DoRequest(s.router, testutil.NewRequestWithBody(s.T(), http.MethodPost, "/eligibility/evaluate", `{"age":"old"}`))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})
}

// =============================================================================
// POST /benefits/calculate
// =============================================================================

func (s *HandlerSuite) TestCalculate() {
	s.Run("amount types return amount only", func() {
		amount := 405.0
		s.svc.EXPECT().Calculate(gomock.Any(), eligibility.CalculationInput{
			Type:          eligibility.CalculateSNAP,
			Income:        10000,
			HouseholdSize: 2,
			FilingStatus:  formula.FilingSingle,
		}).Return(eligibility.CalculationResult{Type: eligibility.CalculateSNAP, Amount: &amount}, nil)

		body := `{"type":"SNAP","income":10000,"householdSize":2}`
		rr := testutil.DoRequest(s.router, s.authed(testutil.NewRequestWithBody(s.T(), http.MethodPost, "/benefits/calculate", body)))
		testutil.AssertStatusOK(s.T(), rr)
		testutil.AssertJSONContains(s.T(), rr, "amount", 405.0)
	})

	s.Run("zero amounts are still reported", func() {
		amount := 0.0
		s.svc.EXPECT().Calculate(gomock.Any(), gomock.Any()).
			Return(eligibility.CalculationResult{Type: eligibility.CalculateSection8, Amount: &amount}, nil)

		body := `{"type":"section8","income":90000,"fairMarketRent":1000}`
		rr := testutil.DoRequest(s.router, s.authed(testutil.NewRequestWithBody(s.T(), http.MethodPost, "/benefits/calculate", body)))
		testutil.AssertStatusOK(s.T(), rr)
		testutil.AssertJSONContains(s.T(), rr, "amount", 0.0)
	})

	s.Run("medicaid returns the threshold test", func() {
		s.svc.EXPECT().Calculate(gomock.Any(), gomock.Any()).Return(eligibility.CalculationResult{
			Type:     eligibility.CalculateMedicaid,
			Medicaid: &formula.MedicaidResult{Eligible: true, Threshold: 20782.8, FPL: 15060},
		}, nil)

		body := `{"type":"medicaid","income":15000,"householdSize":1}`
		rr := testutil.DoRequest(s.router, s.authed(testutil.NewRequestWithBody(s.T(), http.MethodPost, "/benefits/calculate", body)))
		testutil.AssertStatusOK(s.T(), rr)

		resp := testutil.UnmarshalResponse[map[string]any](s.T(), rr)
		s.Equal(true, (*resp)["eligible"])
		s.Equal(20782.8, (*resp)["threshold"])
		s.Equal(15060.0, (*resp)["fpl"])
		s.NotContains(*resp, "amount")
	})

	s.Run("missing type is invalid_input", func() {
		rr := testutil.DoRequest(s.router, s.authed(testutil.NewRequestWithBody(s.T(), http.MethodPost, "/benefits/calculate", `{"income":1}`)))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "invalid_input")
	})

	s.Run("unknown type is invalid_input", func() {
		s.svc.EXPECT().Calculate(gomock.Any(), gomock.Any()).
			Return(eligibility.CalculationResult{}, dErrors.New(dErrors.CodeInvalidInput, "invalid benefit type"))

		rr := testutil.DoRequest(s.router, s.authed(testutil.NewRequestWithBody(s.T(), http.MethodPost, "/benefits/calculate", `{"type":"lottery"}`)))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "invalid_input")
	})
}

// =============================================================================
// Program directory
// =============================================================================

func (s *HandlerSuite) TestDirectory() {
	s.Run("lists categories", func() {
		rr := testutil.DoRequest(s.router, s.authed(testutil.NewRequest(s.T(), http.MethodGet, "/benefits")))
		testutil.AssertStatusOK(s.T(), rr)

		resp := testutil.UnmarshalResponse[CategoriesResponse](s.T(), rr)
		s.Len(resp.Categories, 5)
	})

	s.Run("returns programs for a category", func() {
		rr := testutil.DoRequest(s.router, s.authed(testutil.NewRequest(s.T(), http.MethodGet, "/benefits/food")))
		testutil.AssertStatusOK(s.T(), rr)

		resp := testutil.UnmarshalResponse[DirectoryResponse](s.T(), rr)
		s.Equal("food", resp.Category)
		s.NotEmpty(resp.Programs)
		s.Equal("snap", resp.Programs[0].ID)
	})

	s.Run("unknown category is a 404", func() {
		rr := testutil.DoRequest(s.router, s.authed(testutil.NewRequest(s.T(), http.MethodGet, "/benefits/spaceflight")))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
	})
}
