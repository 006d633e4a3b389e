package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/apex/log"
)

// DefaultLevel is used when neither the config nor GREENCALC_LOG sets a level
const DefaultLevel = "warn"

// InitLogger installs the CLI handler on the apex default logger.
// GREENCALC_LOG takes precedence over the configured level.
func InitLogger(level string) {
	if env := os.Getenv("GREENCALC_LOG"); env != "" {
		level = env
	}
	if level == "" {
		level = DefaultLevel
	}
	log.SetHandler(NewHandler(os.Stderr))
	if err := setLevel(level); err != nil {
		log.SetLevel(log.WarnLevel)
		log.Warnf("unknown log level %q, using %s", level, DefaultLevel)
	}
}

func setLevel(level string) error {
	l, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		return err
	}
	log.SetLevel(l)
	return nil
}

// Handler writes one compact line per entry
type Handler struct {
	w io.Writer
}

// NewHandler creates a handler writing to w
func NewHandler(w io.Writer) *Handler {
	return &Handler{w: w}
}

// HandleLog implements the log.Handler interface
func (h *Handler) HandleLog(e *log.Entry) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %.1s %s", e.Timestamp.Format(time.DateTime), strings.ToUpper(e.Level.String()), e.Message)
	for _, name := range e.Fields.Names() {
		fmt.Fprintf(&b, " %s=%v", name, e.Fields.Get(name))
	}
	b.WriteByte('\n')
	_, err := io.WriteString(h.w, b.String())
	return err
}
