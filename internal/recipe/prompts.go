package recipe

import (
	"fmt"
	"strings"

	"github.com/chrisdamba/weaning/internal/models"
)

// Request describes one recipe search. A non-empty Prompt is sent verbatim
// and the other fields only feed the summary line.
type Request struct {
	Query         string
	WeightPerCube int
	TargetCount   int
	Prompt        string
}

// TotalWeight is the batch size the recipe should yield, in grams.
func (r Request) TotalWeight() int {
	return r.WeightPerCube * r.TargetCount
}

func (r Request) withDefaults() Request {
	if r.WeightPerCube <= 0 {
		r.WeightPerCube = models.DefaultWeightPerCube
	}
	if r.TargetCount <= 0 {
		r.TargetCount = models.DefaultTargetCount
	}
	return r
}

// SummaryLine is the closing line every answer must contain.
func SummaryLine(r Request) string {
	r = r.withDefaults()
	return fmt.Sprintf("Total %dg (%dg cube x %d)", r.TotalWeight(), r.WeightPerCube, r.TargetCount)
}

const promptTemplate = `Baby food recipe and portion request: "%s".
Cooking goal:
- Weight per cube: %dg
- Number of cubes: %d
- Total batch: about %dg

You are a friendly baby-food expert. Follow these rules strictly:
1. Standard measures only. Give every ingredient in g or ml (1 tbsp = 15ml, 1 tsp = 5ml).
2. Be brief. Information only, no filler.
3. Never use markdown symbols such as '#' or '*'. Put section titles in square brackets and use numbers or hyphens for lists.
4. Structure:
   [Shopping list]: raw ingredient weights (g) and volumes (ml) needed for %d cubes.
   [Steps]: short, clear step-by-step instructions.
   [Portioning tip]: one key tip for splitting the batch into %dg portions.
End with the line "%s".`

// BuildPrompt renders the instruction text sent to the model.
func BuildPrompt(r Request) string {
	if strings.TrimSpace(r.Prompt) != "" {
		return r.Prompt
	}
	r = r.withDefaults()
	return fmt.Sprintf(promptTemplate,
		strings.TrimSpace(r.Query),
		r.WeightPerCube,
		r.TargetCount,
		r.TotalWeight(),
		r.TargetCount,
		r.WeightPerCube,
		SummaryLine(r),
	)
}
