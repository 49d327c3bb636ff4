// Package client contains the backend-facing building blocks of the
// StorePulse console.
//
// # Overview
//
// The package provides:
//  1. The fetch primitive: Client.Do issues exactly one REST call against
//     the configured base URL, merges caller headers over a default
//     Content-Type: application/json, and decodes the JSON body.
//  2. Request, the identity of one fetch (method, path, headers, body).
//     Resources compare Request keys to decide whether to refetch.
//  3. Path builders for every backend endpoint the console consumes.
//  4. Local persistence bootstrap (InitDatabase, RunMigrations) for the
//     sqlite key/value store that holds the session record.
//
// # Error Handling
//
// Do fails with *HTTPError for non-2xx responses and *TransportError for
// network or body-decoding failures. Both match the sentinels ErrUnauthorized
// and ErrUnavailable through errors.Is where that applies.
//
// There are no retries, no client-side timeouts and no caching. The context
// passed to Do is honoured so callers can invalidate an in-flight request.
package client
