package shell

// Command describes one shell command.
type Command struct {
	Name        string
	Aliases     []string
	Usage       string
	Description string

	// MinArgs and MaxArgs bound the number of arguments after the name.
	MinArgs int
	MaxArgs int

	run func(s *Shell, args []string) (quit bool)
}

// Commands returns every command in the order help lists them.
func Commands() []Command {
	return []Command{
		{
			Name:        "load",
			Usage:       "load <dir>",
			Description: "Load every image in a directory, replacing the working set",
			MinArgs:     1,
			MaxArgs:     1,
			run:         (*Shell).handleLoad,
		},
		{
			Name:        "list",
			Aliases:     []string{"ls"},
			Usage:       "list",
			Description: "List the working set in display order",
			run:         (*Shell).handleList,
		},
		{
			Name:        "fit",
			Usage:       "fit <i> <strength>",
			Description: "Fit image i to its detected content; higher strength finds fewer edges",
			MinArgs:     2,
			MaxArgs:     2,
			run:         (*Shell).handleFit,
		},
		{
			Name:        "outline",
			Usage:       "outline <i> <strength>",
			Description: "Write a preview of the contours fit would use, without editing",
			MinArgs:     2,
			MaxArgs:     2,
			run:         (*Shell).handleOutline,
		},
		{
			Name:        "rotate",
			Usage:       "rotate <i> <angle>",
			Description: "Rotate image i clockwise by angle degrees",
			MinArgs:     2,
			MaxArgs:     2,
			run:         (*Shell).handleRotate,
		},
		{
			Name:        "undo",
			Usage:       "undo <i>",
			Description: "Undo the last edit of image i",
			MinArgs:     1,
			MaxArgs:     1,
			run:         (*Shell).handleUndo,
		},
		{
			Name:        "redo",
			Usage:       "redo <i>",
			Description: "Redo the last undone edit of image i",
			MinArgs:     1,
			MaxArgs:     1,
			run:         (*Shell).handleRedo,
		},
		{
			Name:        "swap",
			Usage:       "swap <i> <j>",
			Description: "Swap the display positions of images i and j",
			MinArgs:     2,
			MaxArgs:     2,
			run:         (*Shell).handleSwap,
		},
		{
			Name:        "compose",
			Usage:       "compose",
			Description: "Compose the working set side by side",
			run:         (*Shell).handleCompose,
		},
		{
			Name:        "save",
			Usage:       "save",
			Description: "Save the composition, the edited images and the manifest",
			run:         (*Shell).handleSave,
		},
		{
			Name:        "preview",
			Usage:       "preview <i>|all",
			Description: "Write a scaled preview of image i or of the composition",
			MinArgs:     1,
			MaxArgs:     1,
			run:         (*Shell).handlePreview,
		},
		{
			Name:        "info",
			Usage:       "info <i>",
			Description: "Show file and edit details of image i",
			MinArgs:     1,
			MaxArgs:     1,
			run:         (*Shell).handleInfo,
		},
		{
			Name:        "debug",
			Aliases:     []string{"d"},
			Usage:       "debug",
			Description: "Toggle debug output",
			run:         (*Shell).handleDebug,
		},
		{
			Name:        "help",
			Aliases:     []string{"h", "?"},
			Usage:       "help",
			Description: "Show this list",
			run:         (*Shell).handleHelp,
		},
		{
			Name:        "quit",
			Aliases:     []string{"q", "exit"},
			Usage:       "quit",
			Description: "Leave without saving",
			run:         (*Shell).handleQuit,
		},
	}
}

// lookup finds a command by name or alias.
func lookup(name string) (Command, bool) {
	for _, c := range Commands() {
		if c.Name == name {
			return c, true
		}
		for _, a := range c.Aliases {
			if a == name {
				return c, true
			}
		}
	}
	return Command{}, false
}
