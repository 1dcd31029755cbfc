// Package main is a one-shot command line caller for services that speak
// the enveloped JSON protocol.
//
// The target service comes from APICALL_* environment variables or a config
// file, and one request is executed per invocation:
//
//	# Environment-driven
//	APICALL_ROOT_PATH=https://api.example.com ./apicall -path /users/1
//
//	# File-driven, with a body
//	./apicall -config client.yaml -method POST -path /users -data '{"name":"a"}'
//
//	# Extra headers and a tighter timeout
//	./apicall -path /slow -header 'X-Team:core' -timeout 5s
//
//	# Development mode (colored logs, debug level)
//	./apicall -dev -path /users/1
//
// The unwrapped payload is printed as indented JSON on success. Envelope
// failures, transport failures, and malformed replies all exit non-zero
// with the failure on stderr.
//
// Signals:
//   - SIGINT, SIGTERM: cancel the in-flight request
package main
