package appstate

import (
	"errors"

	"github.com/example/sketchsolver/internal/sketch"
	"github.com/example/sketchsolver/internal/solver"
	"github.com/example/sketchsolver/internal/upload"
)

// Notice is the message shown to the user for err. Input errors get their
// own wording; anything else gets the generic retry message.
func Notice(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, sketch.ErrEmptyDrawing):
		return "Please draw something first"
	case errors.Is(err, upload.ErrTooLarge):
		return "File size must be less than 1MB"
	case errors.Is(err, upload.ErrNotImage):
		return "Please upload an image file"
	case errors.Is(err, upload.ErrNoFile):
		return "Please select an image first"
	case errors.Is(err, solver.ErrCommentTooLong):
		return "Comment must be 200 characters or fewer"
	case errors.Is(err, solver.ErrBusy):
		return "Please wait for the current request to finish"
	}
	return "Failed to process your input. Please try again."
}
