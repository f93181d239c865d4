package usecase

import (
	"log"
	"regexp"
	"strings"
)

// maxQueryLength keeps search URLs short; Open Food Facts ignores long tails anyway
const maxQueryLength = 100

// QueryPreprocessor cleans free-text ingredient searches before they are sent upstream
type QueryPreprocessor struct {
	enableDebugLogging bool
}

// Compiled regex patterns for query preprocessing
var (
	// Matches package sizes like "1 kg", "500g", "1.5 l", "250 ml", "16 oz"
	sizeQuantityPattern = regexp.MustCompile(`(?i)\b\d+(?:[.,]\d+)?\s*(?:kg|g|grams?|mg|l|liters?|litres?|ml|cl|dl|oz|lbs?|pounds?)\b`)

	// Matches pack counts like "6 pack", "pack of 6", "12x", "x12"
	packCountPattern = regexp.MustCompile(`(?i)\b\d+\s*[-]?\s*(?:pack|pk|count|ct|pcs|pieces?)\b|\bpack\s+of\s+\d+\b|\b\d+\s*x\b|\bx\s*\d+\b`)

	// Lone punctuation left behind after removals
	orphanedPunctuationPattern = regexp.MustCompile(`\s+[,\-;:]+\s+`)
	trailingPunctuationPattern = regexp.MustCompile(`[,\-;:]+\s*$`)
	leadingPunctuationPattern  = regexp.MustCompile(`^\s*[,\-;:]+`)

	multiSpacePattern = regexp.MustCompile(`\s+`)
)

// queryNoiseWords are packaging and marketing terms that only dilute a product search
var queryNoiseWords = map[string]bool{
	// Marketing terms
	"premium": true, "quality": true, "best": true, "new": true, "improved": true,
	"value": true, "family": true, "bonus": true, "special": true, "classic": true,

	// Size descriptors
	"size": true, "large": true, "medium": true, "small": true, "mini": true,
	"jumbo": true, "big": true,

	// Packaging terms
	"package": true, "pack": true, "box": true, "bag": true, "bottle": true,
	"can": true, "jar": true, "tub": true, "carton": true, "pouch": true, "sachet": true,
}

// NewQueryPreprocessor creates a new query preprocessor
func NewQueryPreprocessor(enableDebugLogging bool) *QueryPreprocessor {
	return &QueryPreprocessor{
		enableDebugLogging: enableDebugLogging,
	}
}

// PreprocessQuery lowercases the query and strips sizes, pack counts and noise words.
// The result is at most maxQueryLength bytes, cut at a word boundary where possible.
func (p *QueryPreprocessor) PreprocessQuery(query string) string {
	if strings.TrimSpace(query) == "" {
		return ""
	}

	original := query

	cleaned := sizeQuantityPattern.ReplaceAllString(query, " ")
	cleaned = packCountPattern.ReplaceAllString(cleaned, " ")
	cleaned = p.removeNoiseWords(cleaned)
	cleaned = cleanOrphanedPunctuation(cleaned)
	cleaned = multiSpacePattern.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)

	if len(cleaned) > maxQueryLength {
		cut := cleaned[:maxQueryLength]
		if lastSpace := strings.LastIndex(cut, " "); lastSpace > maxQueryLength/2 {
			cut = cut[:lastSpace]
		}
		cleaned = strings.TrimSpace(cut)
	}

	if p.enableDebugLogging {
		log.Printf("[PREPROCESS] Input: %q -> Output: %q", original, cleaned)
	}

	return cleaned
}

// removeNoiseWords lowercases s and drops marketing and packaging terms
func (p *QueryPreprocessor) removeNoiseWords(s string) string {
	words := strings.Fields(strings.ToLower(s))
	kept := make([]string, 0, len(words))

	for _, word := range words {
		cleanWord := strings.Trim(word, ",.!?;:-'\"")
		if !queryNoiseWords[cleanWord] {
			kept = append(kept, word)
		}
	}

	return strings.Join(kept, " ")
}

// cleanOrphanedPunctuation removes punctuation that's now alone (e.g., lone commas)
func cleanOrphanedPunctuation(s string) string {
	result := orphanedPunctuationPattern.ReplaceAllString(s, " ")
	result = trailingPunctuationPattern.ReplaceAllString(result, "")
	result = leadingPunctuationPattern.ReplaceAllString(result, "")
	return result
}
