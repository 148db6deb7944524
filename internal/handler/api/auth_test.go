//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"courtgrid/internal/handler/api"
	resdto "courtgrid/internal/handler/dto/response"
	"courtgrid/internal/pkg/config"
	"courtgrid/internal/pkg/cookie"
	"courtgrid/internal/usecase/commands"
	"courtgrid/internal/usecase/queries"
	"courtgrid/tests/common/builder"
	"courtgrid/tests/common/httptest"
	"courtgrid/tests/common/testutil"
	commandsmock "courtgrid/tests/mock/commands"
	queriesmock "courtgrid/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockAuthCommands
	mockQueries  *queriesmock.MockUserQueries
	handler      *api.AuthHandler
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockAuthCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockUserQueries(s.mockCtrl)
	cfg := config.NewTestConfig()
	s.handler = api.NewAuthHandler(s.mockCommands, s.mockQueries, cfg.Cookie, 24*time.Hour)

	s.router.POST("/auth/login", s.handler.Login)
	s.router.POST("/auth/logout", s.handler.Logout)
	s.router.GET("/auth/me", func(c *gin.Context) {
		// Mock middleware behavior for /auth/me
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			c.Set("user_id", uuid.New())
		}
		s.handler.Me(c)
	})
	s.router.POST("/auth/register", s.handler.Register)
}

func (s *AuthHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func (s *AuthHandlerTestSuite) TestLogin() {
	url := "/auth/login"
	reqBody := builder.NewAuthBuilder().BuildDTO()
	userID := uuid.New()
	expectedToken := "test-jwt-token"

	s.Run("success: returns 200 OK and sets the access token cookie", func() {
		s.mockCommands.EXPECT().Login(gomock.Any(), reqBody.Email, reqBody.Password).
			Return(&commands.LoginResult{UserID: userID, AccessToken: expectedToken}, nil).
			Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.LoginResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(expectedToken, response.AccessToken)
		s.Equal(userID, response.UserID)

		tokenCookie := httptest.ExtractCookie(rec, cookie.AccessTokenCookieName)
		s.Require().NotNil(tokenCookie)
		s.Equal(expectedToken, tokenCookie.Value)
		s.True(tokenCookie.HttpOnly)
	})

	s.Run("error: 401 Unauthorized for bad credentials", func() {
		s.mockCommands.EXPECT().Login(gomock.Any(), reqBody.Email, reqBody.Password).
			Return(nil, commands.ErrInvalidCredentials).
			Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "")
	})

	s.Run("error: 403 Forbidden for an inactive account", func() {
		s.mockCommands.EXPECT().Login(gomock.Any(), reqBody.Email, reqBody.Password).
			Return(nil, commands.ErrUserInactive).
			Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []struct {
			name   string
			mutate func(map[string]any)
		}{
			{name: "missing email", mutate: testutil.Field("email", nil)},
			{name: "invalid email", mutate: testutil.Field("email", "not-an-email")},
			{name: "missing password", mutate: testutil.Field("password", nil)},
		}

		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})
}

func (s *AuthHandlerTestSuite) TestLogout() {
	s.Run("success: returns 204 and clears the cookie", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/logout", nil, "")
		s.Equal(http.StatusNoContent, rec.Code)

		tokenCookie := httptest.ExtractCookie(rec, cookie.AccessTokenCookieName)
		s.Require().NotNil(tokenCookie)
		s.Empty(tokenCookie.Value)
	})
}

func (s *AuthHandlerTestSuite) TestMe() {
	s.Run("success: returns the current user", func() {
		returnUser := builder.NewUserBuilder().BuildReadModel()
		s.mockQueries.EXPECT().GetCurrentUser(gomock.Any(), gomock.Any()).
			Return(returnUser, nil).
			Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/auth/me", nil, "any-token")

		var response queries.AuthorizedUserView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(returnUser.Email, response.Email)
	})

	s.Run("error: 401 Unauthorized without authentication", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/auth/me", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "")
	})

	s.Run("error: 404 Not Found when the user vanished", func() {
		s.mockQueries.EXPECT().GetCurrentUser(gomock.Any(), gomock.Any()).
			Return(nil, queries.ErrUserNotFound).
			Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/auth/me", nil, "any-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})
}

func (s *AuthHandlerTestSuite) TestRegister() {
	url := "/auth/register"
	reqBody := map[string]any{
		"email":    "operator@example.com",
		"password": "password123",
		"role":     "operator",
	}

	s.Run("success: returns 201 with the new user ID", func() {
		newID := uuid.New()
		s.mockCommands.EXPECT().RegisterUser(gomock.Any(), gomock.Any()).
			Return(newID, nil).
			Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.RegisterUserResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(newID, response.ID)
	})

	s.Run("error: 400 Bad Request for an unknown role", func() {
		requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field("role", "superuser"))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}
