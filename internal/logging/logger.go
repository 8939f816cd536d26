package logging

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"github.com/sirupsen/logrus"
)

// Level glyphs for console output
const (
	GlyphError = "[x]"
	GlyphWarn  = "[!]"
	GlyphInfo  = "[i]"
	GlyphDebug = "[.]"
)

var levelGlyphs = map[logrus.Level]string{
	logrus.PanicLevel: GlyphError,
	logrus.FatalLevel: GlyphError,
	logrus.ErrorLevel: GlyphError,
	logrus.WarnLevel:  GlyphWarn,
	logrus.InfoLevel:  GlyphInfo,
	logrus.DebugLevel: GlyphDebug,
	logrus.TraceLevel: GlyphDebug,
}

// ConsoleFormatter renders one line per entry: a level glyph, the message,
// and any structured fields in key=value form sorted by key.
type ConsoleFormatter struct{}

// Format implements logrus.Formatter
func (f *ConsoleFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	buf := entry.Buffer
	if buf == nil {
		buf = &bytes.Buffer{}
	}

	glyph, ok := levelGlyphs[entry.Level]
	if !ok {
		glyph = GlyphInfo
	}
	buf.WriteString(glyph)
	buf.WriteByte(' ')
	buf.WriteString(entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for key := range entry.Data {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(buf, " %s=%v", key, entry.Data[key])
	}

	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// New creates the application logger writing to stderr at the given level
func New(level logrus.Level) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(level)
	log.SetFormatter(&ConsoleFormatter{})
	return log
}
