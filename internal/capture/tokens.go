package capture

import "unicode/utf8"

// DefaultCharsPerToken is the divisor used when no usage block is present.
const DefaultCharsPerToken = 4

type TokenEstimator interface {
	EstimateTokens(text string) int
}

// CharTokenEstimator approximates tokens from the character count.
type CharTokenEstimator struct {
	charsPerToken int
}

func NewCharTokenEstimator(charsPerToken int) *CharTokenEstimator {
	if charsPerToken <= 0 {
		charsPerToken = DefaultCharsPerToken
	}
	return &CharTokenEstimator{charsPerToken: charsPerToken}
}

func (e *CharTokenEstimator) EstimateTokens(text string) int {
	return utf8.RuneCountInString(text) / e.charsPerToken
}
