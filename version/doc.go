// Package version exposes build metadata for streamkit binaries.
//
// Values are injected at link time and fall back to the VCS stamp the Go
// toolchain records in the binary:
//
//	go build -ldflags "-X github.com/kbukum/streamkit/version.Version=1.0.0" ./cmd/streamkit
package version
