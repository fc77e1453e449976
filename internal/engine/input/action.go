package input

// Command is a viewer action requested from the keyboard or window.
type Command int

const (
	CommandNone Command = iota
	CommandQuit
	CommandZoomIn
	CommandZoomOut
	CommandReset
	CommandNext
	CommandPrev
	CommandSelect // Action.Index holds the panorama
	CommandScreenshot
)

// Action is a Command with its argument.
type Action struct {
	Command Command
	Index   int
}
