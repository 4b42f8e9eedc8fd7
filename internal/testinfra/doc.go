// Package testinfra starts the containers used by integration tests.
//
// Everything except this file is built only with the integration tag:
//
//	go test -tags integration ./...
//
// Tests skip themselves when no Docker daemon is reachable.
package testinfra
