// Package tourclient provides the primary entry point for constructing a
// tour admin API client that implements the tourapi.Client interface.
//
// It layers configuration defaults, the HTTP transport, the session cookie
// jar, and the shared response cache on top of the resource interfaces and
// types defined in the tourapi package.
//
// Quick start
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
//
//	  // Defaults: http://localhost:8080/api, 5s timeout, in-memory cache.
//	  cli, err := tourclient.New(ctx, &tourapi.Config{})
//	  if err != nil { log.Fatal(err) }
//
//	  // Or share the cache across processes through Redis:
//	  cli, err = tourclient.New(ctx, &tourapi.Config{
//	    BaseURL: "https://tours.example.com/api",
//	    CacheConfig: &tourapi.CacheConfig{
//	      Type:  tourapi.CacheTypeRedis,
//	      Redis: &tourapi.RedisConfig{Addr: "localhost:6379"},
//	    },
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  _, err = cli.Auth().Login(ctx, &tourapi.Credentials{Username: "admin", Password: "secret"})
//	  if err != nil { log.Fatal(err) }
//
//	  saver := tourapi.NewTourSaver(cli.Tours(), cli.Services())
//	  report, err := saver.Save(ctx, &tourapi.TourCompositeUpdate{ /* ... */ })
//	  _ = report
//	}
//
// The base URL and timeout are fixed for the lifetime of the client. Every
// successful GET is cached and never invalidated by writes made through the
// same client; build a fresh client, or clear the cache, to observe them.
package tourclient
