// This package provides a set of structs and functions which are used
// to collect geolocation intelligence for given IP addresses from a
// number of independent external providers.
//
// intellib is the core of the ipinfotool project. You can treat the
// rest of the application as an _example_ on how to use this library:
// how to pass parameters from HTTP requests, how to generate responses,
// how to implement providers.
//
// Aggregator is a main entity of the intellib. This struct contains all
// logic related to provider fan-out: how to query every configured
// provider concurrently, how to use worker pools, how to keep a single
// slow or dead provider from delaying or dropping the others.
//
// Aggregator accepts a target IP address and returns LookupResult: one
// entry per configured provider, success or failure, in registry order.
package intellib
