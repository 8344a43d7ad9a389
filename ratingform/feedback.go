package ratingform

import (
	"errors"
	"fmt"
	"time"

	"food-store-api/models"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidationError is returned by BuildFeedback for values a Feedback cannot hold
type ValidationError struct {
	Field string
	Rule  string
	Value any
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid feedback: %s=%v fails %q", e.Field, e.Value, e.Rule)
}

// BuildFeedback creates an unsaved Feedback. The comment is free text and may be empty;
// the rating must be in [1,5].
func BuildFeedback(rating int, comment string, at time.Time) (models.Feedback, error) {
	fb := models.Feedback{
		ID:       models.UnassignedFeedbackID,
		Content:  comment,
		Rating:   rating,
		CreateAt: at,
	}
	if err := validate.Struct(fb); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return models.Feedback{}, &ValidationError{
				Field: verrs[0].Field(),
				Rule:  verrs[0].Tag() + "=" + verrs[0].Param(),
				Value: verrs[0].Value(),
			}
		}
		return models.Feedback{}, err
	}
	return fb, nil
}
