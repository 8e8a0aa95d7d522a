// Package services provides shared helpers for external service
// integrations: sentinel error markers for failure classification and
// context annotations that flow stage metadata into logs.
package services
