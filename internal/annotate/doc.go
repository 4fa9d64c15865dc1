// Package annotate turns raw source lines into validated annotation tokens.
// Lex filters and checks marker grammar; ValidateRegions enforces that
// region markers form a balanced, non-nested sequence.
package annotate
