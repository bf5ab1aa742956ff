package game

import (
	"fmt"
	"image"
)

// CommandKind identifies an external command.
type CommandKind int

const (
	CmdNextStage CommandKind = iota
	CmdReset
	CmdReload
	CmdToggle3D
	CmdClearTrails
	CmdResize
	CmdExit
)

var commandNames = [...]string{
	CmdNextStage:   "next_stage",
	CmdReset:       "reset",
	CmdReload:      "reload",
	CmdToggle3D:    "toggle_3d",
	CmdClearTrails: "clear_trails",
	CmdResize:      "resize",
	CmdExit:        "exit",
}

func (k CommandKind) String() string {
	if k < 0 || int(k) >= len(commandNames) {
		return fmt.Sprintf("CommandKind(%d)", int(k))
	}
	return commandNames[k]
}

// Command is a request from an input collaborator. Only the fields relevant
// to Kind are read.
type Command struct {
	Kind CommandKind

	// Reload: Image takes precedence over Path. With neither set the last
	// loaded path is read again, or the procedural pattern regenerated.
	Image image.Image
	Path  string

	// Resize
	Width, Height int
}

// CommandSink accepts commands from input collaborators.
type CommandSink interface {
	Enqueue(cmd Command) bool
}

func NextStage() Command   { return Command{Kind: CmdNextStage} }
func Reset() Command       { return Command{Kind: CmdReset} }
func Toggle3D() Command    { return Command{Kind: CmdToggle3D} }
func ClearTrails() Command { return Command{Kind: CmdClearTrails} }
func Exit() Command        { return Command{Kind: CmdExit} }

// Reload requests the image at path. An empty path reloads the current source.
func Reload(path string) Command {
	return Command{Kind: CmdReload, Path: path}
}

// ReloadImage replaces the source with an already decoded image.
func ReloadImage(img image.Image) Command {
	return Command{Kind: CmdReload, Image: img}
}

// Resize requests a new viewport size. The size is clamped when applied.
func Resize(w, h int) Command {
	return Command{Kind: CmdResize, Width: w, Height: h}
}
