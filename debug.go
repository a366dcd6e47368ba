package mapnav

import (
	"fmt"
	"io"
)

// debugLogger writes "[mapnav]" lines when it has a writer. A nil logger or
// one without a writer discards everything, so recognizers created outside
// a coordinator log nothing.
type debugLogger struct {
	w io.Writer
}

func (l *debugLogger) printf(format string, args ...any) {
	if l == nil || l.w == nil {
		return
	}
	_, _ = fmt.Fprintf(l.w, "[mapnav] "+format+"\n", args...)
}
