// Ipinfotool is a redundancy-oriented IP geolocation aggregator.
//
// Idea is simple: you have an IP address like 1.2.3.4 and you want to
// know where it comes from. But you do not want to trust any single
// geolocation service: they disagree, they rate limit, they go down.
// So ipinfotool asks several independent services at once, maps their
// answers into one schema and gives you all of them side by side.
//
// Tool itself is organized into 3 logical parts:
//
// Intellib
//
// intellib is a main package of the application which contains
// Aggregator struct and main logic related to provider fan-out.
// Aggregator has a set of pluggable providers: it queries all of them
// concurrently, tolerates partial failure and always returns one entry
// per provider in a stable order. It also knows how to detect the
// caller's own IPv4/IPv6 addresses.
//
// Providers
//
// This package has a set of provider implementations which cover most
// of the usecases, plus the normalizers mapping each provider's
// response shape into the canonical record.
//
// Api
//
// The HTTP front door exposing lookups, self-address resolution and
// request metadata as JSON endpoints.
//
// A main package itself is an example of how to wire all parts
// together. The resulting binary starts an HTTP server and you can use
// it in your infrastructure as is.
package main
