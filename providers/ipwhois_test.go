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

type MockedIPWhoisTestSuite struct {
	MockedProviderTestSuite

	prov intellib.Provider
}

func (suite *MockedIPWhoisTestSuite) SetupTest() {
	suite.MockedProviderTestSuite.SetupTest()

	suite.prov = providers.NewIPWhois(suite.http)
}

func (suite *MockedIPWhoisTestSuite) TestName() {
	suite.Equal(providers.NameIPWhois, suite.prov.Name())
	suite.True(suite.prov.Enabled())
}

func (suite *MockedIPWhoisTestSuite) TestLookupFailed() {
	httpmock.RegisterResponder("GET",
		"https://ipwho.is/23.22.13.113",
		httpmock.NewStringResponder(http.StatusBadGateway, ""))

	_, err := suite.prov.Lookup(context.Background(), "23.22.13.113")

	suite.Error(err)
	suite.Equal(intellib.ErrorKindHTTP, intellib.KindOf(err))
}

func (suite *MockedIPWhoisTestSuite) TestLookupApplicationFailure() {
	httpmock.RegisterResponder("GET",
		"https://ipwho.is/127.0.0.1",
		httpmock.NewStringResponder(http.StatusOK,
			`{"success": false, "message": "Reserved range"}`))

	_, err := suite.prov.Lookup(context.Background(), "127.0.0.1")

	suite.Error(err)
	suite.Equal(intellib.ErrorKindParse, intellib.KindOf(err))
}

func (suite *MockedIPWhoisTestSuite) TestLookupOk() {
	httpmock.RegisterResponder("GET",
		"https://ipwho.is/23.22.13.113",
		httpmock.NewStringResponder(http.StatusOK, `{
  "ip": "23.22.13.113",
  "success": true,
  "country": "United States",
  "country_code": "US",
  "region": "Virginia",
  "city": "Ashburn",
  "asn": "AS14618",
  "org": "Amazon.com, Inc.",
  "isp": "Amazon.com"
}`))

	res, err := suite.prov.Lookup(context.Background(), "23.22.13.113")

	suite.NoError(err)
	suite.Equal("US", res.Country)
	suite.Equal("Virginia", res.Region)
	suite.Equal("Ashburn", res.City)
	suite.Equal("14618", res.ASN)
	suite.Equal("Amazon.com, Inc.", res.ASOrg)
	suite.Equal("Amazon.com", res.ISP)
}

func (suite *MockedIPWhoisTestSuite) TestLookupNestedConnection() {
	httpmock.RegisterResponder("GET",
		"https://ipwho.is/23.22.13.113",
		httpmock.NewStringResponder(http.StatusOK, `{
  "ip": "23.22.13.113",
  "success": true,
  "country_code": "US",
  "connection": {"asn": 14618, "org": "Amazon.com, Inc.", "isp": "Amazon.com"}
}`))

	res, err := suite.prov.Lookup(context.Background(), "23.22.13.113")

	suite.NoError(err)
	suite.Equal("14618", res.ASN)
	suite.Equal("Amazon.com, Inc.", res.ASOrg)
	suite.Equal("Amazon.com", res.ISP)
}

func TestIPWhois(t *testing.T) {
	suite.Run(t, &MockedIPWhoisTestSuite{})
}
