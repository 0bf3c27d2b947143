// Package app wires the bake lifecycle together: it owns the logger and the
// loaded manifest, scans the asset root, builds the task graph, and hands it
// to the executor. Fatal startup errors (an unreadable or invalid manifest)
// panic and are recovered in main for a clean exit message.
package app
