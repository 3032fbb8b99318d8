// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (status,
duration_ms).

# Request Metrics

Record per-route latency and status codes:

	mux.HandleFunc(pattern, middleware.WithMetrics(m, pattern, handler))

The route label is the mux pattern, never the raw path, so player IDs do
not leak into label values. Both wrappers pass websocket upgrades through.

# CORS Middleware

Enable cross-origin requests from any device on the network:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Backed by github.com/rs/cors. Allows GET, POST, PUT, DELETE and OPTIONS
with the Content-Type header, from any origin.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies:

	var req models.AddPlayerRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)
*/
package middleware
