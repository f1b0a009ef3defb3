package shell

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/ironsheep/image-composer/internal/composer"
	"github.com/ironsheep/image-composer/internal/config"
	"github.com/ironsheep/image-composer/internal/workspace"
)

// Shell reads commands line by line and applies them to the working set of
// the loaded directory.
type Shell struct {
	cfg         config.Config
	layout      *workspace.Layout
	logger      *log.Logger
	out         *printer
	previewDir  string
	interactive bool

	dir      string
	composer *composer.Composer
}

// New creates a shell that writes to out and places preview files in
// previewDir. cfg must be valid.
func New(cfg config.Config, previewDir string, out io.Writer, logger *log.Logger) *Shell {
	if logger == nil {
		logger = log.Default()
	}
	return &Shell{
		cfg:        cfg,
		layout:     workspace.NewLayout(cfg),
		logger:     logger,
		out:        newPrinter(out),
		previewDir: previewDir,
	}
}

// SetInteractive turns the input prompt on or off.
func (s *Shell) SetInteractive(on bool) {
	s.interactive = on
}

// Run reads commands from in until quit or end of input.
func (s *Shell) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)

	s.prompt()
	for scanner.Scan() {
		if quit := s.Execute(scanner.Text()); quit {
			return nil
		}
		s.prompt()
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read command: %w", err)
	}
	return nil
}

func (s *Shell) prompt() {
	if s.interactive {
		s.out.prompt()
	}
}

// Execute runs a single command line and reports whether the shell should
// stop. Blank lines are ignored.
func (s *Shell) Execute(line string) (quit bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	name := strings.ToLower(strings.TrimPrefix(fields[0], `\`))
	args := fields[1:]

	cmd, ok := lookup(name)
	if !ok {
		s.out.failf("Unknown command %q (try help)", name)
		return false
	}
	if len(args) < cmd.MinArgs || len(args) > cmd.MaxArgs {
		s.out.failf("Usage: %s", cmd.Usage)
		return false
	}
	if s.cfg.Debug {
		s.out.debugf("%s %s", cmd.Name, strings.Join(args, " "))
	}
	return cmd.run(s, args)
}

// Load replaces the working set with the images of dir.
func (s *Shell) Load(dir string) {
	s.handleLoad([]string{dir})
}
