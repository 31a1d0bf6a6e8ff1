// Package services talks to YouTube: searching for videos and publishing playlists.
//
// # Search Providers
//
// All providers satisfy [matcher.Searcher] and return [models.Candidate] values in the provider's relevance order.
//   - [YouTubeSearch] : YouTube Data API v3 search.list, authenticated with an API key
//   - [ProxySearch] : a local HTTP proxy exposing GET /api/search (for example a ytmusicapi wrapper)
//   - [Unavailable] : fails every search with [shared.ErrServiceUnavailable]
//
// [NewSearcher] picks one from the [shared.SearchConfig]. Every provider waits on a shared
// [rate.Limiter] before issuing a request.
//
// # Publishing
//
// [YouTubePublisher] creates a playlist on the signed in account and inserts each video.
// Any failure is returned as a single [shared.ErrPublish] that names how many videos were added.
//
// # OAuth
//
// [YouTubeAuth] implements the installed application flow with PKCE. Client credentials come from
// a [CredentialSource]; [ChainSource] tries a client secret file, then environment variables, then
// an interactive file picker. Refreshed tokens are written back to disk by [YouTubeAuth.Client].
//
// # Error Handling
//
// Services use typed errors from shared package:
//   - [shared.ErrAPIRequest] : HTTP request failed or returned a non-2xx status
//   - [shared.ErrServiceUnavailable] : no provider configured
//   - [shared.ErrMissingCredentials] : no OAuth client credentials found
//   - [shared.ErrPublish] : playlist creation or item insertion failed
package services
