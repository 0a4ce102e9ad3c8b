//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"qr-seat-reservation/internal/handler/api"
	"qr-seat-reservation/internal/pkg/errs"
	"qr-seat-reservation/internal/usecase/commands"
	"qr-seat-reservation/internal/usecase/queries"
	"qr-seat-reservation/tests/common/httptest"
	commandsmock "qr-seat-reservation/tests/mock/commands"
	queriesmock "qr-seat-reservation/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SellerHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockSellerCommands
	mockQueries  *queriesmock.MockSellerQueries
}

func (s *SellerHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockSellerCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockSellerQueries(s.mockCtrl)
	h := api.NewSellerHandler(s.mockCommands, s.mockQueries)

	s.router.POST("/sellers", h.Create)
	s.router.GET("/sellers", h.List)
	s.router.DELETE("/sellers/:id", h.Delete)
}

func (s *SellerHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSellerHandlerSuite(t *testing.T) {
	suite.Run(t, new(SellerHandlerTestSuite))
}

func (s *SellerHandlerTestSuite) TestCreate() {
	s.Run("基本成功ケース", func() {
		view := &queries.SellerView{ID: uuid.New(), Name: "Front Desk", Email: "desk@example.com"}
		s.mockCommands.EXPECT().Create(gomock.Any(), commands.CreateSellerParams{Name: "Front Desk", Email: "desk@example.com"}).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/sellers",
			map[string]any{"name": "Front Desk", "email": "desk@example.com"}, "")
		var got queries.SellerView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &got)
		s.Equal(view.ID, got.ID)
	})

	s.Run("メール形式が不正", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/sellers",
			map[string]any{"name": "Front Desk", "email": "not-an-email"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

func (s *SellerHandlerTestSuite) TestDelete() {
	id := uuid.New()

	s.Run("削除成功は204", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), id).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/sellers/"+id.String(), nil, "")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("予約のある販売者は409", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), id).
			Return(errs.Detailf(errs.ErrSellerInUse, "seller %s has reservations", id)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/sellers/"+id.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})
}
