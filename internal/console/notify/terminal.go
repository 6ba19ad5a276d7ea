package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// TerminalNotifier renders notifications as styled lines on a writer.
type TerminalNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

func NewTerminalNotifier(w io.Writer) *TerminalNotifier {
	return &TerminalNotifier{w: w}
}

func (t *TerminalNotifier) emit(style lipgloss.Style, tag, msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.w, style.Render(fmt.Sprintf("[%s] %s", tag, msg)))
}

func (t *TerminalNotifier) Info(msg string)    { t.emit(infoStyle, "info", msg) }
func (t *TerminalNotifier) Success(msg string) { t.emit(successStyle, "ok", msg) }
func (t *TerminalNotifier) Warning(msg string) { t.emit(warningStyle, "warn", msg) }
func (t *TerminalNotifier) Error(msg string)   { t.emit(errorStyle, "error", msg) }
