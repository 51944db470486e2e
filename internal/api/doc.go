// Package api provides HTTP client functionality for communicating with the
// SmartEmailing v3 API. It handles authentication, request serialization and
// the classification of responses into normalized results.
//
// # Client Creation
//
// [New] takes the immutable [Credentials] and functional options. Every
// request carries HTTP Basic authentication built from the credentials.
//
// # Response Classification
//
// [Client.Dispatch] never returns an error for an HTTP status. The response is
// folded into a [Reply] whose [Result] body is:
//
//   - 200, 201, 204: the decoded JSON object, or {status: "ok"} for an empty body.
//   - 400, 401, 404, 422: {message: <service message or "Error">, data: []}.
//   - any other status of 400 or above: {message: "Unknown error", data: []}.
//   - anything else: {message: "Unknown success status", data: []}.
//
// Only the status code decides [Reply.IsError]; the body shape never does.
//
// Connection failures, timeouts, TLS failures and unreadable bodies return an
// [*apierrors.TransportError]. There are no retries.
//
// # TLS
//
// By default the certificate chain is not verified while the certificate host
// name still is. [WithVerifyPeer] enables full verification.
//
// # Thread Safety
//
// The [Client] type is safe for concurrent use. Multiple goroutines may call
// methods on a single Client simultaneously.
package api
