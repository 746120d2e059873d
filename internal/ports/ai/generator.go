package ai

import "context"

// TextGenerator genera texto a partir de un prompt contra un modelo hospedado.
type TextGenerator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}
