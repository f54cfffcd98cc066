// Package tourapi provides types, interfaces, and helpers for working with the
// tour booking administration REST API.
//
// # Overview
//
// The tourapi package defines the domain types (Tour, Service, User, Booking,
// Tag, Category) and the interfaces for resource-oriented clients (ToursClient,
// ServicesClient, and so on). A concrete implementation is provided by the
// tourclient package, which wires configuration, transport, the session cookie
// jar, and the response cache. Most consumers should import tourclient to
// construct a client and then use the interfaces exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/tourdesk/admin-client/pkg/tourapi"
//	  "github.com/tourdesk/admin-client/pkg/tourclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := tourclient.New(ctx, &tourapi.Config{BaseURL: "http://localhost:8080/api"})
//	  if err != nil { log.Fatal(err) }
//
//	  tours, err := cli.Tours().List(ctx)
//	  if err != nil { log.Fatal(err) }
//	  _ = tours
//	}
//
// # Caching
//
// Every successful GET response is cached by "METHOD:path" for the lifetime of
// the cache and is never invalidated by writes. A list fetched before a create
// keeps returning the old content until the cache is cleared. The Cache
// interface has memory, NATS KV, and Redis implementations; all keep the first
// response stored for a key.
//
// # Errors
//
// Failed calls return a *RequestError carrying the kind of failure, the HTTP
// status, the raw body, and the parsed ProblemDetails when the backend sent
// one. Helpers such as IsNotFound, IsUnauthorized, and IsNetworkFailure branch
// on common cases.
//
// # Saving a tour
//
// TourSaver applies a TourCompositeUpdate as up to three independent calls:
// core fields, then categories and tags, then services. There is no rollback;
// a *SaveError names the failing step and the steps already applied.
package tourapi
