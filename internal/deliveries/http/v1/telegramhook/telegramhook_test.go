package telegramhook

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/catatduit/go-catatduit/internal/logging"
	"github.com/catatduit/go-catatduit/internal/models"
	"github.com/catatduit/go-catatduit/internal/services/mock"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func Test_Handler_handleWebhook(t *testing.T) {
	update := models.TelegramUpdate{
		UpdateID: 77,
		Message: &models.TelegramMessage{
			MessageID: 10,
			From:      &models.TelegramUser{ID: 123456789, FirstName: "Budi"},
			Chat:      models.TelegramChat{ID: 123456789, Type: "private"},
			Text:      "beli bakso 15rb",
		},
	}

	t.Run("acknowledges a processed update", func(t *testing.T) {
		testHelper := telegramHookTestHelper(t)

		testHelper.mockService.EXPECT().
			HandleUpdate(gomock.Any(), update).
			Return(nil)

		resp, body := testHelper.post(t, update)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, `{"kind":"webhook","status":"ok"}`, body)
	})

	t.Run("acknowledges even when processing fails", func(t *testing.T) {
		testHelper := telegramHookTestHelper(t)

		testHelper.mockService.EXPECT().
			HandleUpdate(gomock.Any(), update).
			Return(assert.AnError)

		resp, body := testHelper.post(t, update)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, `{"kind":"webhook","status":"ok"}`, body)
	})

	t.Run("rejects a malformed payload", func(t *testing.T) {
		testHelper := telegramHookTestHelper(t)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/telegram/webhook", strings.NewReader("{not json"))
		req.Header.Set("Content-Type", "application/json")

		rec := httptest.NewRecorder()
		testHelper.router.ServeHTTP(rec, req)

		resp := rec.Result()
		defer resp.Body.Close()

		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

type testTelegramHookHelper struct {
	router      *echo.Echo
	mockCtrl    *gomock.Controller
	mockService *mock.MockBotService
}

func (h testTelegramHookHelper) post(t *testing.T, update models.TelegramUpdate) (*http.Response, string) {
	t.Helper()

	var b bytes.Buffer
	err := json.NewEncoder(&b).Encode(update)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/telegram/webhook", &b)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)

	resp := rec.Result()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, strings.TrimSuffix(string(body), "\n")
}

func telegramHookTestHelper(t *testing.T) testTelegramHookHelper {
	t.Helper()

	mockCtrl := gomock.NewController(t)

	mockSvc := mock.NewMockBotService(mockCtrl)

	app := echo.New()
	app.Pre(echomiddleware.RemoveTrailingSlash())
	v1Group := app.Group("/api/v1")
	New(v1Group, mockSvc)

	return testTelegramHookHelper{
		router:      app,
		mockCtrl:    mockCtrl,
		mockService: mockSvc,
	}
}

func TestMain(m *testing.M) {
	logging.InitForTest()
	os.Exit(m.Run())
}
