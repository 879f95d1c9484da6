// Package main provides the envseal CLI for exporting and importing
// API-client workspaces without leaking environment secrets.
package main

func main() {
	Execute()
}
