// Package cosmicclient provides the primary entry point for constructing a
// Cosmic bucket client that implements the cosmic.Client interface.
//
// It layers configuration defaults, URL normalization and the HTTP transport
// on top of the resource interfaces and types defined in the cosmic package.
// Most applications import cosmicclient to build a client, then use the
// returned cosmic.Client to reach the resource clients: Objects(), Media(),
// Bucket(), Users(), Webhooks() and AI().
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/cosmic/pkg/cosmic"
//	  "github.com/fivetwenty-io/cosmic/pkg/cosmicclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // Read-only access needs the bucket slug and read key.
//	  cli, err := cosmicclient.NewBucketClient("my-bucket", "read-key", "")
//	  if err != nil { log.Fatal(err) }
//
//	  // Find published episodes hosted by either of two authors.
//	  opts := cosmic.NewFindOptions().
//	    WithFilter("metadata.regular_hosts.id", cosmic.In("host-1", "host-2")).
//	    WithLimit(10).
//	    WithSort(cosmic.SortCreatedAtDesc)
//
//	  episodes, err := cli.Objects().Find(ctx, "episodes", opts)
//	  if err != nil { log.Fatal(err) }
//
//	  for _, episode := range episodes.Objects {
//	    duration, _ := episode.Metadata.Int("duration")
//	    log.Printf("%s (%d min)", episode.Title, duration)
//	  }
//	}
//
// # Writes
//
// Mutations need a write key. Without one they fail with
// cosmic.ErrWriteKeyRequired before any request is sent:
//
//	cli, err := cosmicclient.New(&cosmic.Config{
//	  BucketSlug: "my-bucket",
//	  ReadKey:    "read-key",
//	  WriteKey:   "write-key",
//	})
//
//	_, err = cli.Objects().InsertOne(ctx, &cosmic.ObjectDraft{
//	  Type:      "posts",
//	  Title:     "Scheduled post",
//	  PublishAt: "2030-01-01T09:00:00Z", // forces status "draft"
//	})
//
// # Callbacks
//
// Every operation is also available in callback form through Async():
//
//	done := cli.Async().Find(ctx, "posts", nil, func(resp *cosmic.ObjectsResponse, err error) {
//	  // handle the outcome
//	})
//	<-done
package cosmicclient
