package category

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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func Test_Handler_createCategory(t *testing.T) {
	testHelper := categoryTestHelper(t)

	categoryID := uuid.MustParse("7e0fb1a9-c42e-4e95-b94c-4a38d7de2c6d")

	type args struct {
		ctx context.Context
		req models.CreateCategoryRequest
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
			urlCalled: "/api/v1/categories",
			args: args{
				ctx: context.Background(),
				req: models.CreateCategoryRequest{
					Name:     "Makanan",
					ColorHex: "#E74C3C",
					Icon:     "restaurant",
					Type:     "expense",
				},
			},
			mockData: mockData{
				wantRes:  fmt.Sprintf(`{"kind":"category","id":"%s","name":"Makanan","colorHex":"#E74C3C","icon":"restaurant","type":"expense","isSystem":false}`, categoryID),
				wantCode: 201,
			},
			doMock: func(args args, mockData mockData) {
				testHelper.mockService.EXPECT().Create(args.ctx, models.CreateCategoryIn{
					Name:     args.req.Name,
					ColorHex: args.req.ColorHex,
					Icon:     args.req.Icon,
					Type:     models.TransactionTypeExpense,
				}).Return(&models.Category{
					ID:       categoryID,
					Name:     args.req.Name,
					ColorHex: args.req.ColorHex,
					Icon:     args.req.Icon,
					Type:     models.TransactionTypeExpense,
				}, nil)
			},
		},
		{
			name:      "error validating request",
			urlCalled: "/api/v1/categories",
			args: args{
				ctx: context.Background(),
				req: models.CreateCategoryRequest{
					Type: "snack",
				},
			},
			mockData: mockData{
				wantRes:  `{"status":"error","message":"validation failed","errors":[{"code":"CD-004","field":"name","message":"name is required"},{"code":"CD-006","field":"type","message":"type must be expense, income or transfer"}]}`,
				wantCode: 422,
			},
		},
		{
			name:      "error duplicate category",
			urlCalled: "/api/v1/categories",
			args: args{
				ctx: context.Background(),
				req: models.CreateCategoryRequest{
					Name: "Makanan",
					Type: "expense",
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
			urlCalled: "/api/v1/categories",
			args: args{
				ctx: context.Background(),
				req: models.CreateCategoryRequest{
					Name: "Makanan",
					Type: "expense",
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

func Test_Handler_getAllCategory(t *testing.T) {
	testHelper := categoryTestHelper(t)

	categoryID := uuid.MustParse("9c14a7d0-41cb-45a2-87a5-92de22018d9e")

	type Expectation struct {
		wantRes  string
		wantCode int
	}
	tests := []struct {
		name        string
		expectation Expectation
		doMock      func()
	}{
		{
			name: "happy path",
			expectation: Expectation{
				wantRes:  fmt.Sprintf(`{"kind":"collection","contents":[{"kind":"category","id":"%s","name":"Transportasi","colorHex":"#3498DB","icon":"car","type":"expense","isSystem":true}],"total_rows":1}`, categoryID),
				wantCode: 200,
			},
			doMock: func() {
				testHelper.mockService.EXPECT().GetAll(gomock.AssignableToTypeOf(context.Background())).
					Return([]models.Category{{
						ID:       categoryID,
						Name:     "Transportasi",
						ColorHex: "#3498DB",
						Icon:     "car",
						Type:     models.TransactionTypeExpense,
						IsSystem: true,
					}}, nil)
			},
		},
		{
			name: "error service",
			expectation: Expectation{
				wantRes:  `{"status":"error","code":500,"message":"assert.AnError general error for testing"}`,
				wantCode: 500,
			},
			doMock: func() {
				testHelper.mockService.EXPECT().GetAll(gomock.AssignableToTypeOf(context.Background())).
					Return(nil, assert.AnError)
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.doMock != nil {
				tc.doMock()
			}

			var b bytes.Buffer

			req := httptest.NewRequest(http.MethodGet, "/api/v1/categories", &b)
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

type testCategoryHelper struct {
	router      *echo.Echo
	mockCtrl    *gomock.Controller
	mockService *mock.MockCategoryService
}

func categoryTestHelper(t *testing.T) testCategoryHelper {
	t.Helper()

	mockCtrl := gomock.NewController(t)

	mockSvc := mock.NewMockCategoryService(mockCtrl)

	app := echo.New()
	app.Pre(echomiddleware.RemoveTrailingSlash())
	v1Group := app.Group("/api/v1")
	New(v1Group, mockSvc)

	return testCategoryHelper{
		router:      app,
		mockCtrl:    mockCtrl,
		mockService: mockSvc,
	}
}

func TestMain(m *testing.M) {
	logging.InitForTest()
	os.Exit(m.Run())
}
