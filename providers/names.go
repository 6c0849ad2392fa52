package providers

const (
	// Identifier for ipapi.co.
	NameIPAPI = "ipapi"

	// Identifier for ipinfo.io.
	NameIPInfo = "ipinfo"

	// Identifier for ipwho.is.
	NameIPWhois = "ipwhois"

	// Identifier for ip-api.com.
	NameIPAPICom = "ip-api"

	// Identifier for ipdata.co.
	NameIPData = "ipdata"
)
