package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"os"
	"os/signal"
	"syscall"

	"github.com/Yester03/ipinfotool/intellib"
	"github.com/Yester03/ipinfotool/providers"
)

func makeRootContext() (context.Context, context.CancelFunc) {
	rootCtx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)

	go func() {
		for range sigChan {
			cancel()
		}
	}()

	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	return rootCtx, cancel
}

// makeProviders builds the provider registry. The order of the config
// entries defines the enumeration order of every lookup result.
// Credentials are taken from the environment variables named in the
// config; they never appear in the config file itself.
func makeProviders(conf *config) ([]intellib.Provider, error) {
	rv := make([]intellib.Provider, 0, len(conf.GetProviders()))

	for _, v := range conf.GetProviders() {
		httpClient := makeNewHTTPClient(v)

		switch v.GetName() {
		case providers.NameIPAPI:
			rv = append(rv, providers.NewIPAPI(httpClient))
		case providers.NameIPInfo:
			token := authToken(v, "IPINFO_TOKEN")
			rv = append(rv, providers.NewIPInfo(httpClient, token))
		case providers.NameIPWhois:
			rv = append(rv, providers.NewIPWhois(httpClient))
		case providers.NameIPAPICom:
			rv = append(rv, providers.NewIPAPICom(httpClient))
		case providers.NameIPData:
			token := authToken(v, "IPDATA_API_KEY")
			rv = append(rv, providers.NewIPData(httpClient, token))
		default:
			return nil, fmt.Errorf("unsupported provider name: %s", v.GetName())
		}
	}

	return rv, nil
}

func makeNewHTTPClient(conf configProvider) intellib.HTTPClient {
	jar, err := cookiejar.New(nil)
	if err != nil {
		panic(err)
	}

	httpClient := &http.Client{
		Timeout: conf.GetHTTPTimeout(),
		Jar:     jar,
	}

	return intellib.NewHTTPClient(httpClient,
		"ipinfotool/"+version,
		conf.GetRateLimitInterval(),
		conf.GetRateLimitBurst(),
		DefaultCircuitBreakerOpenThreshold,
		DefaultCircuitBreakerHalfOpenTimeout,
		DefaultCircuitBreakerResetFailuresTimeout)
}

func authToken(conf configProvider, defaultEnvKey string) string {
	envKey := conf.GetAuthTokenEnv()
	if envKey == "" {
		envKey = defaultEnvKey
	}

	return os.Getenv(envKey)
}
