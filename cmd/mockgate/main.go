// Package main is the entry point for MockGate.
//
//	@title			MockGate - Mock API Definition Service
//	@version		1.0
//	@description	Self-hosted backend for defining mock API endpoints, data schemas and full-configuration snapshots.
//
//	@contact.name	MockGate Support
//	@contact.url	https://github.com/mockgate/mockgate/issues
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
package main

func main() {
	Execute()
}
