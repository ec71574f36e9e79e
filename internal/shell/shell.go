// ABOUTME: Line-oriented interactive loop driving a Session from a reader and writer
// ABOUTME: Handles quit words, end of input, interrupts, and markdown rendering of model replies
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/harper/kit-onboarding/internal/core"
	"go.uber.org/zap"
)

const defaultWidth = 80

// Options tune how the shell renders output
type Options struct {
	Markdown bool
	Width    int
	Logger   *zap.Logger
}

// Shell reads user lines and prints Kit's replies
type Shell struct {
	session  *core.Session
	in       io.Reader
	out      io.Writer
	styles   Styles
	renderer *glamour.TermRenderer
	logger   *zap.Logger
}

// New creates a shell over session
func New(session *core.Session, in io.Reader, out io.Writer, opts Options) *Shell {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	width := opts.Width
	if width <= 0 {
		width = defaultWidth
	}

	sh := &Shell{
		session: session,
		in:      in,
		out:     out,
		styles:  NewStyles(out),
		logger:  logger,
	}

	if opts.Markdown {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			logger.Warn("markdown rendering disabled", zap.Error(err))
		} else {
			sh.renderer = renderer
		}
	}

	return sh
}

// Run loops until the user quits, input ends, the session expires, or ctx is
// cancelled. Each of those ends cleanly with a nil error.
func (sh *Shell) Run(ctx context.Context) error {
	ctx, stop := context.WithCancel(ctx)
	defer stop()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(sh.in)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	sh.println(sh.styles.Banner.Render(sh.session.Welcome()))
	sh.logger.Debug("chat started",
		zap.String("backend", sh.session.Backend()),
		zap.String("session_id", sh.session.State().SessionID))

	for {
		sh.print("\n" + sh.styles.User.Render("You:") + " ")

		var (
			line string
			ok   bool
		)
		select {
		case <-ctx.Done():
			sh.println("")
			sh.finish()
			return nil
		case line, ok = <-lines:
		}

		if !ok {
			select {
			case err := <-readErr:
				if err != nil {
					sh.logger.Warn("reading input failed", zap.Error(err))
				}
			default:
			}
			sh.println("")
			sh.finish()
			return nil
		}

		if core.IsQuit(line) {
			sh.finish()
			return nil
		}

		reply := sh.session.HandleInput(ctx, line)
		sh.show(reply)

		if reply.Terminate {
			sh.println(sh.styles.Muted.Render("Your interactions for this session are over. See you soon! 🍫"))
			return nil
		}
		if ctx.Err() != nil {
			sh.finish()
			return nil
		}
	}
}

func (sh *Shell) finish() {
	sh.kit(sh.styles.Summary.Render(sh.session.Finish()))
	sh.println(sh.styles.Muted.Render("Closing the program. Bye! 🍫"))
}

func (sh *Shell) show(reply core.Reply) {
	if reply.Text != "" {
		switch {
		case strings.HasPrefix(reply.Text, core.ErrorMarker):
			sh.kit(sh.styles.Error.Render(reply.Text))
		case reply.Markdown:
			sh.kit(sh.renderMarkdown(reply.Text))
		default:
			sh.kit(sh.styles.Body.Render(reply.Text))
		}
	}
	if reply.Summary != "" {
		sh.kit(sh.styles.Summary.Render(reply.Summary))
	}
}

func (sh *Shell) renderMarkdown(text string) string {
	if sh.renderer == nil {
		return text
	}
	rendered, err := sh.renderer.Render(text)
	if err != nil {
		sh.logger.Debug("markdown render failed", zap.Error(err))
		return text
	}
	return strings.TrimSpace(rendered)
}

func (sh *Shell) kit(text string) {
	sh.println("\n" + sh.styles.Kit.Render("Kit:") + " " + text)
}

func (sh *Shell) print(s string) {
	_, _ = fmt.Fprint(sh.out, s)
}

func (sh *Shell) println(s string) {
	_, _ = fmt.Fprintln(sh.out, s)
}
