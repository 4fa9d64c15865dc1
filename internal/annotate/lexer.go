package annotate

import "strings"

// LexOption customises lexing.
type LexOption func(*lexConfig)

type lexConfig struct {
	prefix string
}

// WithPrefix overrides the annotation prefix. Empty values are ignored.
func WithPrefix(prefix string) LexOption {
	return func(cfg *lexConfig) {
		if trimmed := strings.TrimSpace(prefix); trimmed != "" {
			cfg.prefix = trimmed
		}
	}
}

// Lex keeps the lines whose text starts with the annotation prefix after
// leading whitespace, trims them, and checks each against the marker grammar.
// It fails on the first malformed marker and returns no partial result.
func Lex(lines []LineRecord, opts ...LexOption) ([]Token, error) {
	cfg := lexConfig{prefix: DefaultPrefix}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	var tokens []Token
	for _, line := range lines {
		raw := strings.TrimLeft(line.Text, " \t")
		if !strings.HasPrefix(raw, cfg.prefix) {
			continue
		}
		tokens = append(tokens, newToken(raw, strings.TrimSpace(raw), line.Position, cfg.prefix))
	}

	if len(tokens) == 0 {
		return nil, &Error{Kind: ErrNoAnnotationsFound}
	}

	hasTitle := false
	for _, token := range tokens {
		if !token.Marker.Valid() {
			return nil, newError(ErrInvalidMarker, token.LineRecord)
		}
		if token.Marker == MarkerTitle {
			hasTitle = true
		}
	}

	if !hasTitle {
		return nil, &Error{Kind: ErrMissingTitle}
	}
	return tokens, nil
}
