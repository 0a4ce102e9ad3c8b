//go:build e2e

package auth_test

import (
	"net/http"
	"testing"

	"qr-seat-reservation/internal/domain/user"
	"qr-seat-reservation/internal/handler/dto/request"
	resdto "qr-seat-reservation/internal/handler/dto/response"
	"qr-seat-reservation/tests/common/authtest"
	"qr-seat-reservation/tests/common/dbtest"
	"qr-seat-reservation/tests/common/httptest"
	"qr-seat-reservation/tests/e2e"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	loginURL = "/api/auth/login"
	meURL    = "/api/auth/me"
)

type authSuite struct {
	e2e.SharedSuite
	jwtHelper *authtest.JWTHelper
}

func TestAuthSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(authSuite))
}

func (s *authSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwtHelper = authtest.NewJWTHelper(s.Config.JWT)
}

func (s *authSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()

	// テスト用ユーザーを作成
	dbtest.CreateTestUser(s.T(), s.DB, "admin", string(user.RoleAdmin))
	dbtest.CreateTestUser(s.T(), s.DB, "entrance", string(user.RoleEntrance))
	dbtest.CreateTestUser(s.T(), s.DB, "retired", string(user.RoleAdmin))

	// 非アクティブユーザーを作成
	dbtest.DeactivateUser(s.T(), s.DB, "retired")
}

func (s *authSuite) TestLogin() {
	tests := []struct {
		name           string
		username       string
		password       string
		expectedStatus int
		description    string
	}{
		{
			name:           "正常なログイン",
			username:       "admin",
			password:       dbtest.TestUserPassword,
			expectedStatus: http.StatusOK,
			description:    "有効な認証情報でログインできること",
		},
		{
			name:           "入場係のログイン",
			username:       "entrance",
			password:       dbtest.TestUserPassword,
			expectedStatus: http.StatusOK,
			description:    "ENTRANCEロールでもログインできること",
		},
		{
			name:           "存在しないユーザー",
			username:       "nobody",
			password:       dbtest.TestUserPassword,
			expectedStatus: http.StatusUnauthorized,
			description:    "存在しないユーザーでログインできないこと",
		},
		{
			name:           "間違ったパスワード",
			username:       "admin",
			password:       "wrongpassword",
			expectedStatus: http.StatusUnauthorized,
			description:    "間違ったパスワードでログインできないこと",
		},
		{
			name:           "非アクティブユーザー",
			username:       "retired",
			password:       dbtest.TestUserPassword,
			expectedStatus: http.StatusForbidden,
			description:    "非アクティブユーザーはログインできないこと",
		},
		{
			name:           "空のユーザー名",
			username:       "",
			password:       dbtest.TestUserPassword,
			expectedStatus: http.StatusBadRequest,
			description:    "空のユーザー名は拒否されること",
		},
		{
			name:           "空のパスワード",
			username:       "admin",
			password:       "",
			expectedStatus: http.StatusBadRequest,
			description:    "空のパスワードは拒否されること",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			t := s.T()

			reqBody := request.LoginRequest{
				Username: tt.username,
				Password: tt.password,
			}

			w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL, reqBody, "")
			require.Equal(t, tt.expectedStatus, w.Code, tt.description)

			if tt.expectedStatus == http.StatusOK {
				// 成功時のレスポンス形式チェック
				var loginRes resdto.LoginResponse
				httptest.AssertSuccessResponse(t, w, http.StatusOK, &loginRes)
				require.NotEmpty(t, loginRes.AccessToken, "アクセストークンが空")
				require.Equal(t, "Bearer", loginRes.TokenType)
				require.Greater(t, loginRes.ExpiresIn, int64(0), "有効期限が無効")
				require.Equal(t, tt.username, loginRes.User.Username)
				require.NotNil(t, httptest.ExtractCookie(w, "access_token"), "Cookieが設定されていない")

				// last_loginが更新されることを確認
				var lastLogin any
				err := s.DB.QueryRow(t.Context(), "SELECT last_login FROM users WHERE username = $1", tt.username).Scan(&lastLogin)
				require.NoError(t, err)
				require.NotNil(t, lastLogin, "last_loginが更新されていない")
			}
		})
	}
}

func (s *authSuite) TestMe() {
	tests := []struct {
		name           string
		setupUser      func() (string, string, string) // username, role, token
		expectedStatus int
		description    string
	}{
		{
			name: "管理者ユーザーの情報取得",
			setupUser: func() (string, string, string) {
				token := authtest.LoginUser(s.T(), s.Router, "admin", dbtest.TestUserPassword)
				return "admin", string(user.RoleAdmin), token
			},
			expectedStatus: http.StatusOK,
			description:    "管理者ユーザーの情報が取得できること",
		},
		{
			name: "入場係ユーザーの情報取得",
			setupUser: func() (string, string, string) {
				token := authtest.CreateAndLogin(s.T(), s.DB, s.Router, "gate2", string(user.RoleEntrance))
				return "gate2", string(user.RoleEntrance), token
			},
			expectedStatus: http.StatusOK,
			description:    "入場係ユーザーの情報が取得できること",
		},
		{
			name: "無効なトークン",
			setupUser: func() (string, string, string) {
				return "", "", "invalid-token"
			},
			expectedStatus: http.StatusUnauthorized,
			description:    "無効なトークンでは情報取得できないこと",
		},
		{
			name: "トークンなし",
			setupUser: func() (string, string, string) {
				return "", "", ""
			},
			expectedStatus: http.StatusUnauthorized,
			description:    "トークンなしでは情報取得できないこと",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			t := s.T()

			username, role, token := tt.setupUser()
			w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, token)
			require.Equal(t, tt.expectedStatus, w.Code, tt.description)

			if tt.expectedStatus == http.StatusOK {
				responseBody := w.Body.String()
				require.Contains(t, responseBody, username, "レスポンスにユーザー名が含まれていない")
				require.Contains(t, responseBody, role, "レスポンスにロールが含まれていない")
				require.NotContains(t, responseBody, "password", "レスポンスにパスワード情報が含まれている")
			}
		})
	}
}

func (s *authSuite) TestTokenExpiry() {
	s.Run("期限切れトークンの拒否", func() {
		t := s.T()

		userID := dbtest.CreateTestUser(t, s.DB, "expiry", string(user.RoleAdmin))
		expiredToken := s.jwtHelper.CreateExpiredToken(t, userID, "expiry", user.RoleAdmin)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, expiredToken)
		require.Equal(t, http.StatusUnauthorized, w.Code, "期限切れトークンは拒否されるべき")
	})
}

func (s *authSuite) TestRoleRequired() {
	s.Run("入場係は管理APIにアクセスできない", func() {
		t := s.T()

		token := authtest.LoginUser(t, s.Router, "entrance", dbtest.TestUserPassword)

		endpoints := []struct {
			method string
			path   string
		}{
			{http.MethodGet, "/api/tables"},
			{http.MethodGet, "/api/reservations"},
			{http.MethodGet, "/api/settings"},
			{http.MethodPost, "/api/tickets/generate"},
		}

		for _, endpoint := range endpoints {
			w := httptest.PerformRequest(t, s.Router, endpoint.method, endpoint.path, nil, token)
			require.Equal(t, http.StatusForbidden, w.Code, "%s %s は403であるべき", endpoint.method, endpoint.path)
		}
	})

	s.Run("管理者は入場APIにもアクセスできる", func() {
		t := s.T()

		token := authtest.LoginUser(t, s.Router, "admin", dbtest.TestUserPassword)
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/checkins/TK9999", nil, token)
		require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
	})
}

func (s *authSuite) TestAuthenticationRequired() {
	s.Run("認証が必要なエンドポイント", func() {
		t := s.T()

		endpoints := []struct {
			method string
			path   string
		}{
			{http.MethodGet, meURL},
			{http.MethodGet, "/api/tables"},
			{http.MethodPost, "/api/checkins"},
		}

		for _, endpoint := range endpoints {
			w := httptest.PerformRequest(t, s.Router, endpoint.method, endpoint.path, nil, "")
			require.Equal(t, http.StatusUnauthorized, w.Code, "認証なしでは拒否されるべき")
		}
	})
}
