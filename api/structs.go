package api

import (
	"encoding/json"
	"fmt"
	"net"

	"github.com/Yester03/ipinfotool/intellib"
)

type localIPResponseStruct struct {
	IPv4      string                    `json:"ipv4,omitempty"`
	IPv6      string                    `json:"ipv6,omitempty"`
	Providers []intellib.ProviderResult `json:"providers"`
}

type ipIntelBulkResponseStruct struct {
	Results []intellib.LookupResult `json:"results"`
}

type requestMetaResponseStruct struct {
	ClientIP string            `json:"client_ip,omitempty"`
	Headers  map[string]string `json:"headers"`
}

type ipIntelBulkRequestStruct struct {
	IPs []string
}

func (req *ipIntelBulkRequestStruct) UnmarshalJSON(text []byte) error {
	raw := struct {
		IPs []string `json:"ips"`
	}{}

	if err := json.Unmarshal(text, &raw); err != nil {
		return err
	}

	req.IPs = make([]string, 0, len(raw.IPs))

	for _, v := range raw.IPs {
		if net.ParseIP(v) == nil {
			return fmt.Errorf("cannot parse %s as IP", v)
		}

		req.IPs = append(req.IPs, v)
	}

	return nil
}
