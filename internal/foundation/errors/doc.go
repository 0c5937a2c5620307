// Package errors provides the classified error type used across apimd.
//
// A ClassifiedError carries a category, a severity and structured context.
// Errors are created with the fluent builder:
//
//	err := errors.NewError(errors.CategoryModel, "unsupported API item kind").
//		WithContext("kind", item.Kind).
//		Build()
//
// The CLI adapter maps categories to process exit codes.
package errors
