package ratingform

import (
	"fmt"
	"io"
	"log"
)

const (
	SuccessMessage = "Feedback was sent successfully!"
	FailureMessage = "Failed to send feedback"
)

// Notifier shows the outcome of a submission to the user. Calls are fire-and-forget.
type Notifier interface {
	NotifySuccess(message string)
	NotifyFailure(message string)
}

// WriterNotifier prints notifications as single lines
type WriterNotifier struct {
	W io.Writer
}

func (n WriterNotifier) NotifySuccess(message string) {
	fmt.Fprintln(n.W, "✅ "+message)
}

func (n WriterNotifier) NotifyFailure(message string) {
	fmt.Fprintln(n.W, "❌ "+message)
}

// LogNotifier sends notifications to the standard logger
type LogNotifier struct{}

func (LogNotifier) NotifySuccess(message string) { log.Println(message) }
func (LogNotifier) NotifyFailure(message string) { log.Println("Warning:", message) }
