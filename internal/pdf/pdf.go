package pdf

import "context"

// Generator converts certificate markup into a finished PDF document.
// The concrete rendering technology sits behind this interface so the
// pipeline and its tests never touch a browser.
type Generator interface {
	Generate(ctx context.Context, markup string) ([]byte, error)
}
