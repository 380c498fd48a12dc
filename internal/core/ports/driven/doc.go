// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - AnnotationStore: Server-side annotation persistence
//   - RemoteStore: Client-side access to the annotation HTTP API
//   - ConfigStore: Application configuration
//   - WorkspaceStore: Recent files and file-tree snapshot persistence
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
