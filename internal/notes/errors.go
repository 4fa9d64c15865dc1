package notes

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-notegen/internal/annotate"
	"github.com/goliatone/go-notegen/internal/generator"
	"github.com/goliatone/go-notegen/internal/langtag"
)

// Text codes attached to errors returned by Service.
const (
	CodeNoAnnotations        = "NOTEGEN_NO_ANNOTATIONS"
	CodeInvalidMarker        = "NOTEGEN_INVALID_MARKER"
	CodeMissingTitle         = "NOTEGEN_MISSING_TITLE"
	CodeUnmatchedCloser      = "NOTEGEN_UNMATCHED_CLOSER"
	CodeUnclosedRegion       = "NOTEGEN_UNCLOSED_REGION"
	CodeOrphanAnnotation     = "NOTEGEN_ORPHAN_ANNOTATION"
	CodeUnmappedLanguageTag  = "NOTEGEN_UNMAPPED_LANGUAGE_TAG"
	CodeSourceRead           = "NOTEGEN_SOURCE_READ"
	CodeWriteFailed          = "NOTEGEN_WRITE_FAILED"
	CodePruneFailed          = "NOTEGEN_PRUNE_FAILED"
	CodeTidyFailed           = "NOTEGEN_TIDY_FAILED"
	CodeManifestFailed       = "NOTEGEN_MANIFEST_FAILED"
	codeAnnotationValidation = "NOTEGEN_ANNOTATION_INVALID"
)

var annotationCodes = []struct {
	kind error
	code string
}{
	{annotate.ErrNoAnnotationsFound, CodeNoAnnotations},
	{annotate.ErrInvalidMarker, CodeInvalidMarker},
	{annotate.ErrMissingTitle, CodeMissingTitle},
	{annotate.ErrUnmatchedCloser, CodeUnmatchedCloser},
	{annotate.ErrUnclosedRegion, CodeUnclosedRegion},
	{generator.ErrOrphanAnnotation, CodeOrphanAnnotation},
	{langtag.ErrUnmappedLanguageTag, CodeUnmappedLanguageTag},
}

// annotationCode returns the text code for an annotation failure.
func annotationCode(err error) string {
	for _, candidate := range annotationCodes {
		if errors.Is(err, candidate.kind) {
			return candidate.code
		}
	}
	return codeAnnotationValidation
}

// wrapAnnotationError tags lexing, region and generation failures as
// validation errors. The positional error stays reachable through errors.As.
func wrapAnnotationError(path string, err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, fmt.Sprintf("%s: %v", path, err)).
		WithTextCode(annotationCode(err))
}

func wrapOperationError(code, message string, err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, message).WithTextCode(code)
}
