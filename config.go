package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net"
	"time"

	"github.com/hjson/hjson-go"
)

const (
	DefaultHTTPTimeout       = 10 * time.Second
	DefaultLookupTimeout     = 5 * time.Second
	DefaultRateLimitInterval = 100 * time.Millisecond
	DefaultRateLimitBurst    = 10

	DefaultCircuitBreakerOpenThreshold        = 3
	DefaultCircuitBreakerHalfOpenTimeout      = 30 * time.Second
	DefaultCircuitBreakerResetFailuresTimeout = time.Minute
)

type duration struct {
	time.Duration
}

func (d *duration) UnmarshalJSON(b []byte) error {
	var v interface{}

	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("cannot unmarshal duration: %w", err)
	}

	vv, ok := v.(string)
	if !ok {
		return fmt.Errorf("incorrect duration: %v", v)
	}

	dur, err := time.ParseDuration(vv)
	if err != nil {
		return fmt.Errorf("cannot parse duration: %w", err)
	}

	d.Duration = dur

	return nil
}

type config struct {
	Listen         string           `json:"listen"`
	WorkerPoolSize uint             `json:"worker_pool_size"`
	LookupTimeout  duration         `json:"lookup_timeout"`
	Providers      []configProvider `json:"providers"`
}

func (c config) GetListen() string {
	return c.Listen
}

func (c config) GetWorkerPoolSize() int {
	return int(c.WorkerPoolSize)
}

func (c config) GetLookupTimeout() time.Duration {
	if c.LookupTimeout.Duration == 0 {
		return DefaultLookupTimeout
	}

	return c.LookupTimeout.Duration
}

func (c config) GetProviders() []configProvider {
	return c.Providers
}

type configProvider struct {
	Name              string   `json:"name"`
	AuthTokenEnv      string   `json:"auth_token_env"`
	RateLimitInterval duration `json:"rate_limit_interval"`
	RateLimitBurst    uint     `json:"rate_limit_burst"`
	HTTPTimeout       duration `json:"http_timeout"`
}

func (c configProvider) GetName() string {
	return c.Name
}

func (c configProvider) GetAuthTokenEnv() string {
	return c.AuthTokenEnv
}

func (c configProvider) GetRateLimitInterval() time.Duration {
	if c.RateLimitInterval.Duration == 0 {
		return DefaultRateLimitInterval
	}

	return c.RateLimitInterval.Duration
}

func (c configProvider) GetRateLimitBurst() int {
	if c.RateLimitBurst == 0 {
		return DefaultRateLimitBurst
	}

	return int(c.RateLimitBurst)
}

func (c configProvider) GetHTTPTimeout() time.Duration {
	if c.HTTPTimeout.Duration == 0 {
		return DefaultHTTPTimeout
	}

	return c.HTTPTimeout.Duration
}

func parseConfig(path string) (*config, error) {
	content, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read file: %w", err)
	}

	conf := config{}
	rawMap := map[string]interface{}{}

	if err := hjson.Unmarshal(content, &rawMap); err != nil {
		return nil, fmt.Errorf("cannot parse json: %w", err)
	}

	rawBytes, _ := json.Marshal(rawMap)

	if err := json.Unmarshal(rawBytes, &conf); err != nil {
		return nil, fmt.Errorf("cannot process config: %w", err)
	}

	if _, _, err := net.SplitHostPort(conf.Listen); err != nil {
		return nil, fmt.Errorf("incorrect host:port for listen: %w", err)
	}

	if len(conf.Providers) == 0 {
		return nil, fmt.Errorf("at least one provider has to be configured")
	}

	seenProviderNames := map[string]struct{}{}

	for _, v := range conf.Providers {
		if _, ok := seenProviderNames[v.GetName()]; ok {
			return nil, fmt.Errorf("name %s is duplicated", v.GetName())
		}

		seenProviderNames[v.GetName()] = struct{}{}
	}

	return &conf, nil
}
