package http

import (
	"io"
	"net/http/httptest"
	"time"

	"github.com/gavv/httpexpect/v2"
	"github.com/go-chi/httplog/v2"
	"github.com/vladmironov/linkcut/internal/auth"
	"github.com/vladmironov/linkcut/internal/metrics"

	"github.com/stretchr/testify/suite"
)

type HandlersTestSuite struct {
	suite.Suite
	logger      *httplog.Logger
	tokens      *auth.TokenService
	urlSvcMock  *MockURLService
	userSvcMock *MockUserService
	server      *httptest.Server
	e           *httpexpect.Expect
}

func (suite *HandlersTestSuite) SetupSuite() {
	suite.logger = httplog.NewLogger("", httplog.Options{Writer: io.Discard})

	tokens, err := auth.NewTokenService("test-secret-at-least-16-chars", time.Hour)
	if err != nil {
		suite.T().Fatal(err)
	}
	suite.tokens = tokens
}

func (suite *HandlersTestSuite) SetupSubTest() {
	suite.urlSvcMock = new(MockURLService)
	suite.userSvcMock = new(MockUserService)
	router := NewRouter(suite.logger, suite.urlSvcMock, suite.userSvcMock, suite.tokens, metrics.NewCollector())
	suite.server = httptest.NewServer(router)
	suite.e = httpexpect.Default(suite.T(), suite.server.URL)
}

func (suite *HandlersTestSuite) TearDownSubTest() {
	suite.urlSvcMock.AssertExpectations(suite.T())
	suite.userSvcMock.AssertExpectations(suite.T())
	suite.server.Close()
}

// bearer returns a valid Authorization header value for the protected routes.
func (suite *HandlersTestSuite) bearer() string {
	token, err := suite.tokens.Generate(42)
	if err != nil {
		suite.T().Fatal(err)
	}
	return "Bearer " + token
}
