package annotate

// ValidateRegions checks that region markers open and close in order with at
// most one region open at a time. The tokens are returned unchanged on success.
//
// Failures detected after the walk blame an edge of the sequence rather than
// the offending token: a dangling open cites the first token.
func ValidateRegions(tokens []Token) ([]Token, error) {
	depth := 0
	for _, token := range tokens {
		switch token.Marker {
		case MarkerRegionStart:
			depth++
		case MarkerRegionEnd:
			depth--
		}
		if depth > 1 {
			return nil, newError(ErrUnclosedRegion, token.LineRecord)
		}
		if depth < 0 {
			return nil, newError(ErrUnmatchedCloser, token.LineRecord)
		}
	}

	if len(tokens) == 0 {
		return tokens, nil
	}
	if depth < 0 {
		return nil, newError(ErrUnmatchedCloser, tokens[len(tokens)-1].LineRecord)
	}
	if depth > 0 {
		return nil, newError(ErrUnclosedRegion, tokens[0].LineRecord)
	}
	return tokens, nil
}
