package statemachine

import (
	"errors"
	"fmt"

	"food-store-api/models"
)

// ErrFormClosed is returned when a rating is picked on a closed form
var ErrFormClosed = errors.New("rating form is closed")

// Unselected is the rating sentinel meaning no face has been picked yet
const Unselected = -1

const (
	MinRating = 1
	MaxRating = 5
)

// RatingForm is the state of one rating modal: visibility with its subject food,
// the picked rating and the comment text. The zero value is not valid; use
// ClosedRatingForm.
type RatingForm struct {
	Open     bool
	Subject  *models.Food
	Selected int
	Comment  string
}

// RatingEvent is anything that can happen to a rating modal
type RatingEvent interface {
	ratingEvent()
}

type OpenEvent struct{ Food models.Food }
type CloseEvent struct{}
type SelectEvent struct{ Rating int }
type CommentEvent struct{ Text string }

func (OpenEvent) ratingEvent()    {}
func (CloseEvent) ratingEvent()   {}
func (SelectEvent) ratingEvent()  {}
func (CommentEvent) ratingEvent() {}

// ClosedRatingForm is the initial state
func ClosedRatingForm() RatingForm {
	return RatingForm{Selected: Unselected}
}

// SubmitDisabled is true exactly while no rating is picked
func (s RatingForm) SubmitDisabled() bool {
	return s.Selected == Unselected
}

// NextRatingForm applies e to s. Closing resets the whole form; opening an open form
// only swaps its subject. Selecting on a closed form or outside [MinRating, MaxRating]
// is rejected and leaves s unchanged.
func NextRatingForm(s RatingForm, e RatingEvent) (RatingForm, error) {
	switch ev := e.(type) {
	case OpenEvent:
		food := ev.Food
		if !s.Open {
			s = ClosedRatingForm()
		}
		s.Open = true
		s.Subject = &food
		return s, nil
	case CloseEvent:
		return ClosedRatingForm(), nil
	case SelectEvent:
		if !s.Open {
			return s, ErrFormClosed
		}
		if ev.Rating < MinRating || ev.Rating > MaxRating {
			return s, fmt.Errorf("rating %d is outside %d..%d", ev.Rating, MinRating, MaxRating)
		}
		s.Selected = ev.Rating
		return s, nil
	case CommentEvent:
		s.Comment = ev.Text
		return s, nil
	default:
		return s, fmt.Errorf("unknown rating form event %T", e)
	}
}
