// Package server provides the loopback HTTP server used by the OAuth installed application flow.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
// [Logging] and [Recover] are the middleware used by the CLI.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # OAuth Callback Handler
//
// [OAuthHandler] validates the state parameter (CSRF protection), exchanges the authorization code
// through an [Exchanger] (which holds the PKCE verifier) and sends the result through a channel.
//
// It only processes one callback to prevent replay attacks.
//
// # Callback Server
//
// [StartCallback] runs the router on the configured host and port (127.0.0.1:3000 by default)
// until [Callback.Shutdown] is called after the token arrives or the flow times out.
package server
