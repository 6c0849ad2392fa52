package intellib_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mccutchen/go-httpbin/httpbin"
	"github.com/stretchr/testify/suite"

	"github.com/Yester03/ipinfotool/intellib"
)

type HTTPClientTestSuite struct {
	suite.Suite

	httpbinEndpoint *httptest.Server
	c               intellib.HTTPClient
}

func (suite *HTTPClientTestSuite) SetupSuite() {
	suite.httpbinEndpoint = httptest.NewServer(httpbin.NewHTTPBin().Handler())
}

func (suite *HTTPClientTestSuite) TearDownSuite() {
	suite.httpbinEndpoint.Close()
}

func (suite *HTTPClientTestSuite) SetupTest() {
	suite.c = intellib.NewHTTPClient(suite.httpbinEndpoint.Client(),
		"test",
		time.Millisecond,
		10,
		1000,
		time.Minute,
		time.Minute)
}

func (suite *HTTPClientTestSuite) TestUserAgent() {
	req, _ := http.NewRequest("GET", suite.httpbinEndpoint.URL+"/user-agent", nil)

	resp, err := suite.c.Do(req)

	suite.NoError(err)

	defer resp.Body.Close()

	value := struct {
		UserAgent string `json:"user-agent"`
	}{}

	suite.NoError(json.NewDecoder(resp.Body).Decode(&value))
	suite.Equal("test", value.UserAgent)
}

func (suite *HTTPClientTestSuite) TestRateLimiter() {
	limited := intellib.NewHTTPClient(suite.httpbinEndpoint.Client(),
		"test",
		100*time.Millisecond,
		1,
		1000,
		time.Minute,
		time.Minute)

	now := time.Now()

	for i := 0; i < 5; i++ {
		req, _ := http.NewRequest("GET", suite.httpbinEndpoint.URL+"/get", nil)
		resp, err := limited.Do(req)

		suite.NoError(err)
		suite.Equal(http.StatusOK, resp.StatusCode)

		resp.Body.Close()
	}

	suite.True(time.Since(now) > 300*time.Millisecond)
}

func (suite *HTTPClientTestSuite) TestBadStatusIsHTTPError() {
	req, _ := http.NewRequest("GET", suite.httpbinEndpoint.URL+"/status/500", nil)

	resp, err := suite.c.Do(req)

	suite.Nil(resp)
	suite.Error(err)
	suite.Equal(intellib.ErrorKindHTTP, intellib.KindOf(err))
}

func (suite *HTTPClientTestSuite) TestCircuitBreakerOpens() {
	tripping := intellib.NewHTTPClient(suite.httpbinEndpoint.Client(),
		"test",
		time.Millisecond,
		10,
		2,
		time.Minute,
		time.Minute)

	for i := 0; i < 3; i++ {
		req, _ := http.NewRequest("GET", suite.httpbinEndpoint.URL+"/status/502", nil)
		_, err := tripping.Do(req)

		suite.Error(err)
		suite.Equal(intellib.ErrorKindHTTP, intellib.KindOf(err))
	}

	req, _ := http.NewRequest("GET", suite.httpbinEndpoint.URL+"/get", nil)
	_, err := tripping.Do(req)

	suite.ErrorIs(err, intellib.ErrCircuitBreakerOpened)
}

func TestHTTPClient(t *testing.T) {
	t.Parallel()
	suite.Run(t, &HTTPClientTestSuite{})
}
