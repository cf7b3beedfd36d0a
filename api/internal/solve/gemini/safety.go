package gemini

import (
	"github.com/google/generative-ai-go/genai"

	"brainy-ai/api/internal/solve"
)

var categories = map[solve.HarmCategory]genai.HarmCategory{
	solve.HarmCategoryHarassment:       genai.HarmCategoryHarassment,
	solve.HarmCategoryHateSpeech:       genai.HarmCategoryHateSpeech,
	solve.HarmCategorySexuallyExplicit: genai.HarmCategorySexuallyExplicit,
	solve.HarmCategoryDangerousContent: genai.HarmCategoryDangerousContent,
}

var thresholds = map[solve.HarmThreshold]genai.HarmBlockThreshold{
	solve.BlockNone:           genai.HarmBlockNone,
	solve.BlockOnlyHigh:       genai.HarmBlockOnlyHigh,
	solve.BlockMediumAndAbove: genai.HarmBlockMediumAndAbove,
	solve.BlockLowAndAbove:    genai.HarmBlockLowAndAbove,
}

// safetySettings keeps the policy order. Unknown values map to the
// provider's "unspecified" enums and are left for the API to reject.
func safetySettings(p solve.SafetyPolicy) []*genai.SafetySetting {
	out := make([]*genai.SafetySetting, 0, len(p))
	for _, s := range p {
		out = append(out, &genai.SafetySetting{
			Category:  categories[s.Category],
			Threshold: thresholds[s.Threshold],
		})
	}
	return out
}
