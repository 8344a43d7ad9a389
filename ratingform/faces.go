package ratingform

import "food-store-api/statemachine"

// NeutralColor is used for every level that is not the picked one
const NeutralColor = "text-secondaryWord"

// Face is one of the five sentiment levels a customer can pick
type Face struct {
	Level int
	Icon  string
	Color string
}

var Faces = [statemachine.MaxRating]Face{
	{Level: 1, Icon: "frown", Color: "#fca5a5"},
	{Level: 2, Icon: "annoyed", Color: "#fdba74"},
	{Level: 3, Icon: "meh", Color: "#a5b4fc"},
	{Level: 4, Icon: "smile", Color: "#67e8f9"},
	{Level: 5, Icon: "laugh", Color: "#86efac"},
}

const (
	Title       = "Well, how was it ? Rate your experience"
	Prompt      = "Please feel free to share your experience with us. Your feedback is important to us."
	Placeholder = "Leave your feedback here to build trust and help other customers know more about this food"
)

// LevelView is how one face renders in the current state
type LevelView struct {
	Label    string
	Icon     string
	Color    string
	Selected bool
}

// View is a framework-free rendering of the modal
type View struct {
	Open           bool
	Title          string
	Prompt         string
	Subject        string
	Levels         []LevelView
	Comment        string
	Placeholder    string
	SubmitDisabled bool
}
