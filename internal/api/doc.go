// Package api exposes the practice engine over HTTP. Handlers resolve the
// learner scope from request headers, drive the scope's session controller
// and translate engine errors into status codes without leaking internals.
package api
