// Package subprocess runs one RNAfold process per fold request.
//
// A Launcher starts the process. Exchange then writes the request to its
// stdin, drains stdout and stderr concurrently, and waits for exit. Exchange
// never returns while the process it was given is still running: on context
// cancellation or any other early exit it kills the process and reaps it.
package subprocess
