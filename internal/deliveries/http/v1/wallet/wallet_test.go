package wallet

import (
	"bytes"
	"context"
	"encoding/json"
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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	testUserID   = uuid.MustParse("4a91a8b8-01a7-4f2a-9a21-6a1e0a3c7b9d")
	testWalletID = uuid.MustParse("d25e3c71-6bfb-4dd0-8f19-52c5be1d8f3e")
)

func Test_Handler_createWallet(t *testing.T) {
	testHelper := walletTestHelper(t)

	type args struct {
		ctx context.Context
		req models.CreateWalletRequest
	}
	type mockData struct {
		wantRes  string
		wantCode int
	}
	tests := []struct {
		name      string
		urlCalled string
		args      args
		mockData  mockData
		doMock    func(args args, mockData mockData)
	}{
		{
			name:      "success",
			urlCalled: "/api/v1/wallets",
			args: args{
				ctx: context.Background(),
				req: models.CreateWalletRequest{
					UserID:   testUserID.String(),
					Name:     "GoPay",
					Balance:  "150000",
					ColorHex: "#00AED6",
					Icon:     "smartphone",
				},
			},
			mockData: mockData{
				wantRes:  fmt.Sprintf(`{"kind":"wallet","id":"%s","name":"GoPay","balance":"150000","colorHex":"#00AED6","icon":"smartphone","createdAt":"0001-01-01T00:00:00Z"}`, testWalletID),
				wantCode: 201,
			},
			doMock: func(args args, mockData mockData) {
				testHelper.mockService.EXPECT().Create(args.ctx, models.CreateWalletIn{
					UserID:   testUserID,
					Name:     args.req.Name,
					Balance:  decimal.NewFromInt(150000),
					ColorHex: args.req.ColorHex,
					Icon:     args.req.Icon,
				}).Return(&models.Wallet{
					ID:       testWalletID,
					UserID:   testUserID,
					Name:     args.req.Name,
					Balance:  decimal.NewFromInt(150000),
					ColorHex: args.req.ColorHex,
					Icon:     args.req.Icon,
				}, nil)
			},
		},
		{
			name:      "error validating request",
			urlCalled: "/api/v1/wallets",
			args: args{
				ctx: context.Background(),
				req: models.CreateWalletRequest{
					Name:     "GoPay",
					ColorHex: "blue",
				},
			},
			mockData: mockData{
				wantRes:  `{"status":"error","message":"validation failed","errors":[{"code":"CD-011","field":"userId","message":"userId is required"},{"code":"CD-010","field":"colorHex","message":"colorHex must be a hex color"}]}`,
				wantCode: 422,
			},
		},
		{
			name:      "error duplicate wallet",
			urlCalled: "/api/v1/wallets",
			args: args{
				ctx: context.Background(),
				req: models.CreateWalletRequest{
					UserID: testUserID.String(),
					Name:   "GoPay",
				},
			},
			mockData: mockData{
				wantRes:  `{"status":"error","code":409,"message":"data exist"}`,
				wantCode: 409,
			},
			doMock: func(args args, mockData mockData) {
				testHelper.mockService.EXPECT().Create(args.ctx, gomock.Any()).Return(nil, common.ErrDataExist)
			},
		},
		{
			name:      "error service",
			urlCalled: "/api/v1/wallets",
			args: args{
				ctx: context.Background(),
				req: models.CreateWalletRequest{
					UserID: testUserID.String(),
					Name:   "GoPay",
				},
			},
			mockData: mockData{
				wantRes:  `{"status":"error","code":500,"message":"assert.AnError general error for testing"}`,
				wantCode: 500,
			},
			doMock: func(args args, mockData mockData) {
				testHelper.mockService.EXPECT().Create(args.ctx, gomock.Any()).Return(nil, assert.AnError)
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.doMock != nil {
				tt.doMock(tt.args, tt.mockData)
			}

			var b bytes.Buffer
			err := json.NewEncoder(&b).Encode(tt.args.req)
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodPost, tt.urlCalled, &b)
			req.Header.Set("Content-Type", "application/json")

			rec := httptest.NewRecorder()
			testHelper.router.ServeHTTP(rec, req)

			resp := rec.Result()
			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			require.Equal(t, tt.mockData.wantCode, resp.StatusCode)
			require.Equal(t, tt.mockData.wantRes, strings.TrimSuffix(string(body), "\n"))
		})
	}
}

func Test_Handler_getAllWallet(t *testing.T) {
	testHelper := walletTestHelper(t)

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
			urlCalled: fmt.Sprintf("/api/v1/wallets?userId=%s", testUserID),
			expectation: Expectation{
				wantRes:  fmt.Sprintf(`{"kind":"collection","contents":[{"kind":"wallet","id":"%s","name":"Cash","balance":"0","colorHex":"#16A085","icon":"wallet","createdAt":"0001-01-01T00:00:00Z"}],"total_rows":1}`, testWalletID),
				wantCode: 200,
			},
			doMock: func() {
				testHelper.mockService.EXPECT().GetAll(gomock.AssignableToTypeOf(context.Background()), testUserID).
					Return([]models.Wallet{{
						ID:       testWalletID,
						UserID:   testUserID,
						Name:     models.DefaultWalletName,
						ColorHex: models.DefaultWalletColor,
						Icon:     models.DefaultWalletIcon,
					}}, nil)
			},
		},
		{
			name:      "error missing userId",
			urlCalled: "/api/v1/wallets",
			expectation: Expectation{
				wantRes:  `{"status":"error","message":"validation failed","errors":[{"code":"CD-011","field":"userId","message":"userId is required"}]}`,
				wantCode: 422,
			},
		},
		{
			name:      "error service",
			urlCalled: fmt.Sprintf("/api/v1/wallets?userId=%s", testUserID),
			expectation: Expectation{
				wantRes:  `{"status":"error","code":500,"message":"assert.AnError general error for testing"}`,
				wantCode: 500,
			},
			doMock: func() {
				testHelper.mockService.EXPECT().GetAll(gomock.AssignableToTypeOf(context.Background()), testUserID).
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

func Test_Handler_getWalletByID(t *testing.T) {
	testHelper := walletTestHelper(t)

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
			urlCalled: fmt.Sprintf("/api/v1/wallets/%s", testWalletID),
			expectation: Expectation{
				wantRes:  fmt.Sprintf(`{"kind":"wallet","id":"%s","name":"GoPay","balance":"25500.5","colorHex":"#00AED6","icon":"smartphone","createdAt":"0001-01-01T00:00:00Z"}`, testWalletID),
				wantCode: 200,
			},
			doMock: func() {
				testHelper.mockService.EXPECT().GetByID(gomock.AssignableToTypeOf(context.Background()), testWalletID).
					Return(&models.Wallet{
						ID:       testWalletID,
						UserID:   testUserID,
						Name:     "GoPay",
						Balance:  decimal.RequireFromString("25500.5"),
						ColorHex: "#00AED6",
						Icon:     "smartphone",
					}, nil)
			},
		},
		{
			name:      "error invalid wallet id",
			urlCalled: "/api/v1/wallets/not-a-uuid",
			expectation: Expectation{
				wantRes:  `{"status":"error","code":400,"message":"invalid UUID length: 10"}`,
				wantCode: 400,
			},
		},
		{
			name:      "error wallet not found",
			urlCalled: fmt.Sprintf("/api/v1/wallets/%s", testWalletID),
			expectation: Expectation{
				wantRes:  `{"status":"error","code":404,"message":"wallet not found"}`,
				wantCode: 404,
			},
			doMock: func() {
				testHelper.mockService.EXPECT().GetByID(gomock.AssignableToTypeOf(context.Background()), testWalletID).
					Return(nil, common.ErrWalletNotFound)
			},
		},
		{
			name:      "error service",
			urlCalled: fmt.Sprintf("/api/v1/wallets/%s", testWalletID),
			expectation: Expectation{
				wantRes:  `{"status":"error","code":500,"message":"assert.AnError general error for testing"}`,
				wantCode: 500,
			},
			doMock: func() {
				testHelper.mockService.EXPECT().GetByID(gomock.AssignableToTypeOf(context.Background()), testWalletID).
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

type testWalletHelper struct {
	router      *echo.Echo
	mockCtrl    *gomock.Controller
	mockService *mock.MockWalletService
}

func walletTestHelper(t *testing.T) testWalletHelper {
	t.Helper()

	mockCtrl := gomock.NewController(t)

	mockSvc := mock.NewMockWalletService(mockCtrl)

	app := echo.New()
	app.Pre(echomiddleware.RemoveTrailingSlash())
	v1Group := app.Group("/api/v1")
	New(v1Group, mockSvc)

	return testWalletHelper{
		router:      app,
		mockCtrl:    mockCtrl,
		mockService: mockSvc,
	}
}

func TestMain(m *testing.M) {
	logging.InitForTest()
	os.Exit(m.Run())
}
