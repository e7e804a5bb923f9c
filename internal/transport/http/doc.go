// Package http provides the HTTP handlers of the dashboard service. Each
// handler owns a chi sub-router and renders JSON through go-chi/render;
// failures go through the centralized RFC 7807 error handler. This layer
// is the presentation adapter boundary: it consumes the service's data
// products and never computes aggregates itself.
package http
