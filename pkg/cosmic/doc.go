// Package cosmic provides types, interfaces, and helpers for working with the
// Cosmic headless CMS REST API.
//
// # Overview
//
// The cosmic package defines the domain types (Object, Media, User, Webhook,
// BucketSettings) and the interfaces of the resource clients (ObjectsClient,
// MediaClient, BucketClient, UsersClient, WebhooksClient, AIClient). A
// concrete implementation is provided by the cosmicclient package, which
// wires configuration, endpoint resolution and transport. Most consumers
// import cosmicclient to build a client and then use the interfaces here.
//
// Getting a client
//
//	cli, err := cosmicclient.NewBucketClient("my-bucket", "read-key", "write-key")
//	if err != nil { log.Fatal(err) }
//
//	resp, err := cli.Objects().FindOne(ctx, "object-id", cosmic.NewFindOptions().WithDepth(1))
//
// # Dynamic values
//
// Custom field payloads are untyped JSON. They decode into Value, a tagged
// union with one variant per JSON kind. Accessors are strict: AsInt never
// truncates a Double, AsDouble never widens an Int (AsNumber does), and the
// string "true" is never a Bool.
//
//	price, ok := value.Lookup("price")
//	if amount, ok := price.AsNumber(); ok { ... }
//
// # Metadata
//
// An object's custom fields arrive either as a list of typed descriptors
// (Metafield) or as a free-form map. Both decode into Metadata, which
// remembers its shape and offers shape-independent lookups:
//
//	host, ok := object.Metadata.String("host")
//	all := object.Metadata.ToMap()
//
// Responses that still use the legacy "metafields" key decode the same way;
// encoding always writes "metadata".
//
// # Queries
//
// Find accepts a QueryFilter mapping dotted paths to scalars or operators.
// Filters are passed through to the service without local validation:
//
//	opts := cosmic.NewFindOptions().
//	  WithFilter("metadata.regular_hosts.id", cosmic.In("host-1", "host-2")).
//	  WithFilter("metadata.rating", cosmic.Gte(3).And(cosmic.Lt(5))).
//	  WithStatus(cosmic.StatusAny)
//
// # Errors
//
// Failures are one of *TransportError (the request never completed),
// *RemoteError (the service answered with an error status), *DecodingError
// (the body did not match the expected shape) or a sentinel such as
// ErrMissingIdentifier and ErrWriteKeyRequired, returned before any request
// is sent. Use errors.As, errors.Is or the Is* helpers:
//
//	if cosmic.IsNotFound(err) { ... }
//
// # Interceptors
//
// Config.Interceptors runs hooks around every request. Request hooks may
// add headers or abort the call; response hooks observe the outcome. A
// MetricsCollector keeps per-operation counters:
//
//	metrics := cosmic.NewMetricsCollector()
//	config.Interceptors = metrics.Install(cosmic.NewInterceptorChain())
package cosmic
