package providers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/suite"

	"github.com/Yester03/ipinfotool/intellib"
	"github.com/Yester03/ipinfotool/providers"
)

type MockedIPAPITestSuite struct {
	MockedProviderTestSuite

	prov intellib.Provider
}

func (suite *MockedIPAPITestSuite) SetupTest() {
	suite.MockedProviderTestSuite.SetupTest()

	suite.prov = providers.NewIPAPI(suite.http)
}

func (suite *MockedIPAPITestSuite) TestName() {
	suite.Equal(providers.NameIPAPI, suite.prov.Name())
	suite.True(suite.prov.Enabled())
}

func (suite *MockedIPAPITestSuite) TestLookupClosedContext() {
	ctx, cancel := context.WithCancel(context.Background())

	cancel()

	_, err := suite.prov.Lookup(ctx, "23.22.13.113")

	suite.Error(err)
}

func (suite *MockedIPAPITestSuite) TestLookupFailed() {
	httpmock.RegisterResponder("GET",
		"https://ipapi.co/23.22.13.113/json/",
		httpmock.NewStringResponder(http.StatusInternalServerError, ""))

	_, err := suite.prov.Lookup(context.Background(), "23.22.13.113")

	suite.Error(err)
	suite.Equal(intellib.ErrorKindHTTP, intellib.KindOf(err))
}

func (suite *MockedIPAPITestSuite) TestLookupBadJSON() {
	httpmock.RegisterResponder("GET",
		"https://ipapi.co/23.22.13.113/json/",
		httpmock.NewStringResponder(http.StatusOK, `{[`))

	_, err := suite.prov.Lookup(context.Background(), "23.22.13.113")

	suite.Error(err)
	suite.Equal(intellib.ErrorKindParse, intellib.KindOf(err))
}

func (suite *MockedIPAPITestSuite) TestLookupOk() {
	httpmock.RegisterResponder("GET",
		"https://ipapi.co/23.22.13.113/json/",
		httpmock.NewStringResponder(http.StatusOK, `{
  "ip": "23.22.13.113",
  "city": "Virginia Beach",
  "region": "Virginia",
  "country_code": "US",
  "country_name": "United States",
  "latitude": 36.7957,
  "longitude": -76.0126,
  "asn": "AS14618",
  "org": "Amazon.com, Inc."
}`))

	res, err := suite.prov.Lookup(context.Background(), "23.22.13.113")

	suite.NoError(err)
	suite.Equal("US", res.Country)
	suite.Equal("Virginia", res.Region)
	suite.Equal("Virginia Beach", res.City)
	suite.Equal("14618", res.ASN)
	suite.Equal("Amazon.com, Inc.", res.ASOrg)
	suite.Equal("Amazon.com, Inc.", res.ISP)
}

func (suite *MockedIPAPITestSuite) TestLookupSelf() {
	httpmock.RegisterResponder("GET",
		"https://ipapi.co/json/",
		httpmock.NewStringResponder(http.StatusOK, `{"country_code": "JP"}`))

	res, err := suite.prov.Lookup(context.Background(), "")

	suite.NoError(err)
	suite.Equal("JP", res.Country)
}

func TestIPAPI(t *testing.T) {
	suite.Run(t, &MockedIPAPITestSuite{})
}
