// Package quizgen implements the question-generation pipeline: extract
// text from a course PDF, prompt the language model, validate its JSON
// output and persist the resulting question batch.
package quizgen

import "errors"

// Pipeline stage failures. Each stage wraps its sentinel so callers can
// tell the user which part broke without parsing messages.
var (
	// ErrExtraction means the PDF could not be fetched or read.
	ErrExtraction = errors.New("pdf extraction failed")

	// ErrGeneration means the model endpoint call failed.
	ErrGeneration = errors.New("question generation failed")

	// ErrParse means the model output was not a usable JSON array.
	ErrParse = errors.New("generated output could not be parsed")
)
