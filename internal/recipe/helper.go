package recipe

import (
	"context"
	"strings"
)

// GenericFailureMessage is the only failure text shown to the user.
const GenericFailureMessage = "Could not fetch a recipe right now. Please try again in a moment."

// Generator produces text for a prompt. *Client implements it.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Helper struct {
	gen Generator
}

func NewHelper(gen Generator) *Helper {
	return &Helper{gen: gen}
}

// Search builds the prompt for r and returns the model's answer unmodified.
func (h *Helper) Search(ctx context.Context, r Request) (string, error) {
	return h.gen.Generate(ctx, BuildPrompt(r))
}

var cleaner = strings.NewReplacer("#", "", "*", "")

// Clean strips markdown emphasis the model was told not to use.
func Clean(text string) string {
	return strings.TrimSpace(cleaner.Replace(text))
}

// UserMessage maps any search failure onto the generic message. It returns ""
// for a nil error.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return GenericFailureMessage
}
