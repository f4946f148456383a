// Package app wires configuration, logging, the instance store and the
// front ends together, and runs the selected mode.
package app
