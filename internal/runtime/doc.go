// Package runtime orchestrates a single environment activation.
package runtime
