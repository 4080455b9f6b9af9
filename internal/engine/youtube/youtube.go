// Package youtube turns a channel reference into channel statistics via the Data API v3.
//
// Files:
//   - resolve.go: offline classification of URLs and handles into an Identifier
//   - dataapi.go: Provider interface and the gated HTTP Data API client
//   - api.go: Data API response types and lenient field parsing
//   - channel.go: canonical ID resolution and channel statistics
//   - rank.go: uploads-playlist ranking by view count
package youtube
