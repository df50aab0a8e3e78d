// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Connector: Discovers transcript documents under a root directory
//   - Normaliser: Extracts ordered paragraphs from a raw document
//   - NormaliserRegistry: Selects the normaliser for a MIME type
//   - TranscriptWriter: Serialises cleaned entries
//   - WriterRegistry: Selects the writer for an output format
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
//   - LedgerStore: Run history. A memory implementation is used when the
//     SQLite ledger is disabled.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
