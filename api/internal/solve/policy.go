package solve

// HarmCategory uses the provider's wire names.
type HarmCategory string

const (
	HarmCategoryHarassment       HarmCategory = "HARM_CATEGORY_HARASSMENT"
	HarmCategoryHateSpeech       HarmCategory = "HARM_CATEGORY_HATE_SPEECH"
	HarmCategorySexuallyExplicit HarmCategory = "HARM_CATEGORY_SEXUALLY_EXPLICIT"
	HarmCategoryDangerousContent HarmCategory = "HARM_CATEGORY_DANGEROUS_CONTENT"
)

type HarmThreshold string

const (
	BlockNone           HarmThreshold = "BLOCK_NONE"
	BlockOnlyHigh       HarmThreshold = "BLOCK_ONLY_HIGH"
	BlockMediumAndAbove HarmThreshold = "BLOCK_MEDIUM_AND_ABOVE"
	BlockLowAndAbove    HarmThreshold = "BLOCK_LOW_AND_ABOVE"
)

type SafetySetting struct {
	Category  HarmCategory
	Threshold HarmThreshold
}

// SafetyPolicy is ordered; gateways pass it to the provider as is.
type SafetyPolicy []SafetySetting

// DefaultPolicy возвращает фиксированную политику: все три категории без блокировки.
func DefaultPolicy() SafetyPolicy {
	return SafetyPolicy{
		{Category: HarmCategoryHarassment, Threshold: BlockNone},
		{Category: HarmCategoryHateSpeech, Threshold: BlockNone},
		{Category: HarmCategorySexuallyExplicit, Threshold: BlockNone},
	}
}
