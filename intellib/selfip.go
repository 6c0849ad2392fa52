package intellib

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"net"
	"net/http"
	"sync"
	"time"
)

const (
	DefaultSelfIPv4Endpoint = "https://api.ipify.org/?format=json"
	DefaultSelfIPv6Endpoint = "https://api64.ipify.org/?format=json"

	selfIPDialTimeout = 6 * time.Second
	selfIPKeepAlive   = 15 * time.Second
	selfIPTimeout     = 10 * time.Second
)

// SelfIPResolver detects the public IPv4 and IPv6 addresses of this
// host. The two families are resolved independently over
// family-pinned connections, so the answer for one never depends on
// the other being reachable. A family that cannot be resolved is
// simply absent.
type SelfIPResolver struct {
	v4Client   *http.Client
	v6Client   *http.Client
	v4Endpoint string
	v6Endpoint string
}

func (s *SelfIPResolver) Resolve(ctx context.Context) SelfAddresses {
	rv := SelfAddresses{}
	wg := &sync.WaitGroup{}

	wg.Add(2)

	go func() {
		defer wg.Done()

		if ip, err := fetchSelfIP(ctx, s.v4Client, s.v4Endpoint); err == nil && ip.To4() != nil {
			rv.IPv4 = ip.String()
		}
	}()

	go func() {
		defer wg.Done()

		ip, err := fetchSelfIP(ctx, s.v6Client, s.v6Endpoint)
		if err != nil {
			return
		}

		// api64 answers with an IPv4 literal on hosts without IPv6
		// connectivity. That is not an IPv6 address.
		if ip.To4() == nil {
			rv.IPv6 = ip.String()
		}
	}()

	wg.Wait()

	return rv
}

type selfIPResponse struct {
	IP string `json:"ip"`
}

func fetchSelfIP(ctx context.Context, client *http.Client, endpoint string) (net.IP, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("cannot build a request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cannot send a request: %w", err)
	}

	defer func() {
		io.Copy(ioutil.Discard, resp.Body) // nolint: errcheck
		resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	jsonResponse := selfIPResponse{}

	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&jsonResponse); err != nil {
		return nil, fmt.Errorf("cannot parse a response: %w", err)
	}

	ip := net.ParseIP(jsonResponse.IP)
	if ip == nil {
		return nil, errors.New("response contains no usable address")
	}

	return ip, nil
}

// NewSelfIPResolver builds a resolver with explicit clients and
// endpoints. Intended for tests and exotic wiring.
func NewSelfIPResolver(v4Client, v6Client *http.Client, v4Endpoint, v6Endpoint string) *SelfIPResolver {
	return &SelfIPResolver{
		v4Client:   v4Client,
		v6Client:   v6Client,
		v4Endpoint: v4Endpoint,
		v6Endpoint: v6Endpoint,
	}
}

// DefaultSelfIPResolver builds a resolver talking to ipify over
// connections pinned to tcp4 and tcp6 respectively.
func DefaultSelfIPResolver() *SelfIPResolver {
	return NewSelfIPResolver(
		httpClientForNetwork("tcp4"),
		httpClientForNetwork("tcp6"),
		DefaultSelfIPv4Endpoint,
		DefaultSelfIPv6Endpoint)
}

func httpClientForNetwork(network string) *http.Client {
	dialer := &net.Dialer{
		Timeout:   selfIPDialTimeout,
		KeepAlive: selfIPKeepAlive,
	}

	return &http.Client{
		Timeout: selfIPTimeout,
		Transport: &http.Transport{
			DialContext: func(ctx context.Context, _, addr string) (net.Conn, error) {
				return dialer.DialContext(ctx, network, addr)
			},
		},
	}
}
