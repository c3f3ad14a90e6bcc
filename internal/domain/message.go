package domain

type Color string

const (
	ColorBlue  Color = "blue"
	ColorGreen Color = "green"
	ColorRed   Color = "red"
)

// Message is what the presentation layer renders: a title, a plain-text
// description and an accent colour.
type Message struct {
	Title       string
	Description string
	Color       Color
	Fields      []MessageField
}

type MessageField struct {
	Name   string
	Value  string
	Inline bool
}
