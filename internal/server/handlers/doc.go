// Package handlers contains HTTP handlers for the Craftbook HTTP API.
//
// This package provides handlers for:
//   - Health and status endpoints (monitoring)
//   - Recipe lookup and search
//   - Browsing sessions and their journal
//
// Errors are categorised with internal/errors and written through the
// HTTPErrorAdapter; successful responses use the types in server/responses.
package handlers
