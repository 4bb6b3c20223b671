package analytics

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/catatduit/go-catatduit/internal/common"
	"github.com/catatduit/go-catatduit/internal/logging"
	"github.com/catatduit/go-catatduit/internal/models"
	"github.com/catatduit/go-catatduit/internal/services/mock"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testUserID = uuid.MustParse("4a91a8b8-01a7-4f2a-9a21-6a1e0a3c7b9d")

func Test_Handler_getMonthly(t *testing.T) {
	testHelper := analyticsTestHelper(t)

	type Expectation struct {
		wantRes  string
		wantCode int
	}
	tests := []struct {
		name        string
		urlCalled   string
		expectation Expectation
		doMock      func()
	}{
		{
			name:      "happy path",
			urlCalled: fmt.Sprintf("/api/v1/analytics/monthly?userId=%s&month=2026-08", testUserID),
			expectation: Expectation{
				wantRes:  `{"kind":"analytics","summary":{"month":"2026-08","totalIncome":5000000,"totalExpense":1250000,"netIncome":3750000,"expenseRatio":0.25,"savingRatio":0.75},"categoryBreakdown":[{"category":"Makanan","amount":750000,"percentage":60,"colorHex":"#E74C3C","icon":"restaurant"}],"weeklyTrend":[{"date":"2026-08-22","expense":50000}],"transactionFrequency":14}`,
				wantCode: 200,
			},
			doMock: func() {
				testHelper.mockService.EXPECT().
					GetMonthly(gomock.AssignableToTypeOf(context.Background()), testUserID, "2026-08").
					Return(&models.AnalyticsOut{
						Kind: "analytics",
						Summary: models.MonthlySummary{
							Month:        "2026-08",
							TotalIncome:  5000000,
							TotalExpense: 1250000,
							NetIncome:    3750000,
							ExpenseRatio: 0.25,
							SavingRatio:  0.75,
						},
						CategoryBreakdown: []models.CategoryBreakdown{{
							Category:   "Makanan",
							Amount:     750000,
							Percentage: 60,
							ColorHex:   "#E74C3C",
							Icon:       "restaurant",
						}},
						WeeklyTrend:          []models.WeeklyTrendPoint{{Date: "2026-08-22", Expense: 50000}},
						TransactionFrequency: 14,
					}, nil)
			},
		},
		{
			name:      "error missing userId",
			urlCalled: "/api/v1/analytics/monthly?month=2026-08",
			expectation: Expectation{
				wantRes:  `{"status":"error","message":"validation failed","errors":[{"code":"CD-011","field":"userId","message":"userId is required"}]}`,
				wantCode: 422,
			},
		},
		{
			name:      "error malformed month",
			urlCalled: fmt.Sprintf("/api/v1/analytics/monthly?userId=%s&month=08-2026", testUserID),
			expectation: Expectation{
				wantRes:  `{"status":"error","message":"validation failed","errors":[{"code":"CD-014","field":"month","message":"month must be formatted YYYY-MM"}]}`,
				wantCode: 422,
			},
		},
		{
			name:      "error month rejected by service",
			urlCalled: fmt.Sprintf("/api/v1/analytics/monthly?userId=%s&month=2026-13", testUserID),
			expectation: Expectation{
				wantRes:  `{"status":"error","code":400,"message":"validation failed, root cause: month 2026-13 is not a valid month"}`,
				wantCode: 400,
			},
			doMock: func() {
				testHelper.mockService.EXPECT().
					GetMonthly(gomock.AssignableToTypeOf(context.Background()), testUserID, "2026-13").
					Return(nil, fmt.Errorf("%w, root cause: %v", common.ErrValidation, fmt.Errorf("month 2026-13 is not a valid month")))
			},
		},
		{
			name:      "error service",
			urlCalled: fmt.Sprintf("/api/v1/analytics/monthly?userId=%s", testUserID),
			expectation: Expectation{
				wantRes:  `{"status":"error","code":500,"message":"assert.AnError general error for testing"}`,
				wantCode: 500,
			},
			doMock: func() {
				testHelper.mockService.EXPECT().
					GetMonthly(gomock.AssignableToTypeOf(context.Background()), testUserID, "").
					Return(nil, assert.AnError)
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.doMock != nil {
				tc.doMock()
			}

			req := httptest.NewRequest(http.MethodGet, tc.urlCalled, nil)
			req.Header.Set("Content-Type", "application/json")

			rec := httptest.NewRecorder()
			testHelper.router.ServeHTTP(rec, req)

			resp := rec.Result()
			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			require.Equal(t, tc.expectation.wantCode, resp.StatusCode)
			require.Equal(t, tc.expectation.wantRes, strings.TrimSuffix(string(body), "\n"))
		})
	}
}

type testAnalyticsHelper struct {
	router      *echo.Echo
	mockCtrl    *gomock.Controller
	mockService *mock.MockAnalyticsService
}

func analyticsTestHelper(t *testing.T) testAnalyticsHelper {
	t.Helper()

	mockCtrl := gomock.NewController(t)

	mockSvc := mock.NewMockAnalyticsService(mockCtrl)

	app := echo.New()
	app.Pre(echomiddleware.RemoveTrailingSlash())
	v1Group := app.Group("/api/v1")
	New(v1Group, mockSvc)

	return testAnalyticsHelper{
		router:      app,
		mockCtrl:    mockCtrl,
		mockService: mockSvc,
	}
}

func TestMain(m *testing.M) {
	logging.InitForTest()
	os.Exit(m.Run())
}
