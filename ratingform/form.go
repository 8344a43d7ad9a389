// Package ratingform implements the rating modal a customer fills in after an order:
// pick one of five faces, optionally leave a comment, submit to the order service.
package ratingform

import (
	"context"
	"log"
	"strconv"
	"time"

	"food-store-api/models"
	"food-store-api/statemachine"
)

// Submitter persists a feedback for an order
type Submitter interface {
	SendFeedback(ctx context.Context, orderID int, fb models.Feedback) error
}

// Outcome says what a call to Submit did
type Outcome string

const (
	OutcomeDisabled Outcome = "disabled" // no rating picked, nothing happened
	OutcomeSkipped  Outcome = "skipped"  // no order bound, closed without sending
	OutcomeSent     Outcome = "sent"
	OutcomeFailed   Outcome = "failed"
)

// Form is one rating modal. It is not safe for concurrent use.
type Form struct {
	state     statemachine.RatingForm
	submitter Submitter
	notifier  Notifier
	now       func() time.Time
}

func New(submitter Submitter, notifier Notifier) *Form {
	return &Form{
		state:     statemachine.ClosedRatingForm(),
		submitter: submitter,
		notifier:  notifier,
		now:       time.Now,
	}
}

func (f *Form) apply(e statemachine.RatingEvent) error {
	next, err := statemachine.NextRatingForm(f.state, e)
	if err != nil {
		return err
	}
	f.state = next
	return nil
}

// Open shows the modal for food. Any food is accepted.
func (f *Form) Open(food models.Food) {
	_ = f.apply(statemachine.OpenEvent{Food: food})
}

// Close hides the modal and resets it. Closing a closed form does nothing.
func (f *Form) Close() {
	_ = f.apply(statemachine.CloseEvent{})
}

func (f *Form) IsOpen() bool { return f.state.Open }

// Subject is the food being rated, nil while closed
func (f *Form) Subject() *models.Food { return f.state.Subject }

func (f *Form) Selected() int { return f.state.Selected }

func (f *Form) Comment() string { return f.state.Comment }

// Select picks a face; picking again overwrites
func (f *Form) Select(level int) error {
	return f.apply(statemachine.SelectEvent{Rating: level})
}

func (f *Form) SetComment(text string) {
	_ = f.apply(statemachine.CommentEvent{Text: text})
}

func (f *Form) SubmitDisabled() bool { return f.state.SubmitDisabled() }

// KeyDown handles a key pressed inside the form. Enter is swallowed so it can never
// submit; only Submit does.
func (f *Form) KeyDown(key string) (preventDefault bool) {
	return key == "Enter"
}

// Submit sends the feedback for order. While no rating is picked it does nothing.
// Otherwise the form is closed once the call settles, whatever the result; failures
// are reported through the notifier only.
func (f *Form) Submit(ctx context.Context, order *models.Order) Outcome {
	if f.SubmitDisabled() {
		return OutcomeDisabled
	}
	defer f.Close()

	if order == nil {
		return OutcomeSkipped
	}

	fb, err := BuildFeedback(f.state.Selected, f.state.Comment, f.now())
	if err != nil {
		log.Printf("rating form: %v", err)
		f.notifier.NotifyFailure(FailureMessage)
		return OutcomeFailed
	}

	if err := f.submitter.SendFeedback(ctx, order.ID, fb); err != nil {
		log.Printf("rating form: send feedback for order %d: %v", order.ID, err)
		f.notifier.NotifyFailure(FailureMessage)
		return OutcomeFailed
	}

	f.notifier.NotifySuccess(SuccessMessage)
	return OutcomeSent
}

// View renders the current state
func (f *Form) View() View {
	v := View{
		Open:           f.state.Open,
		Title:          Title,
		Prompt:         Prompt,
		Comment:        f.state.Comment,
		Placeholder:    Placeholder,
		SubmitDisabled: f.SubmitDisabled(),
	}
	if f.state.Subject != nil {
		v.Subject = f.state.Subject.Name
	}
	for _, face := range Faces {
		lv := LevelView{
			Label: strconv.Itoa(face.Level),
			Icon:  face.Icon,
			Color: NeutralColor,
		}
		if face.Level == f.state.Selected {
			lv.Color = face.Color
			lv.Selected = true
		}
		v.Levels = append(v.Levels, lv)
	}
	return v
}
