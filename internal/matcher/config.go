package matcher

// Config holds the tuning knobs for the matching cascade. The defaults are
// the values the product-image reconciliation flow was calibrated against;
// they can be overridden per deployment but rarely should be.
type Config struct {
	// Weights for the combined fuzzy score. Should sum to 1.0; the score is
	// divided by the sum of the weights actually applied either way.
	SKUWeight      float64
	NameWeight     float64
	CombinedWeight float64

	// Blend between the two similarity metrics inside each sub-score.
	DiceWeight        float64
	LevenshteinWeight float64

	// Fixed scores for the short-circuit stages.
	SKUContainsScore  float64
	NameContainsScore float64

	// MinScore is the floor below which fuzzy candidates are dropped
	// entirely rather than reported with a near-zero score.
	MinScore float64

	// DiceMethodThreshold decides which method label a fuzzy result carries:
	// scores at or above it report "dice", below it "levenshtein".
	DiceMethodThreshold float64

	// Confidence tier boundaries for fuzzy results.
	HighConfidence   float64
	MediumConfidence float64
}

// DefaultConfig returns the standard matcher configuration.
func DefaultConfig() Config {
	return Config{
		SKUWeight:           0.5,
		NameWeight:          0.3,
		CombinedWeight:      0.2,
		DiceWeight:          0.6,
		LevenshteinWeight:   0.4,
		SKUContainsScore:    0.85,
		NameContainsScore:   0.75,
		MinScore:            0.50,
		DiceMethodThreshold: 0.80,
		HighConfidence:      0.90,
		MediumConfidence:    0.70,
	}
}
