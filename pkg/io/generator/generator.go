// Package generator defines the common interface implemented by the artifact
// generators. The type parameter lets each implementation define its own
// model structure.
package generator

// Generator is implemented by specific artifact generators.
type Generator[T any] interface {
	Generate(model T) (string, error)
}
