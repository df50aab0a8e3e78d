// Package connectors provides implementations of the Connector interface.
// A connector discovers transcript documents under a root and, where the
// source supports it, reports changes as they happen.
//
// Only the local filesystem is supported; see the filesystem package.
package connectors
