// Package api defines the transport DTOs and the service layer between the
// HTTP surface and the assignment store.
package api
