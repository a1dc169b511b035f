// Package observability defines the logging seam used by the report engine.
//
// The engine never writes to a concrete log destination itself: every
// component takes a Logger and emits structured warnings when it degrades
// (font fallback, image conversion failure, skipped markdown content).
// NopLogger keeps the library silent by default; callers that want output
// plug in an adapter (the CLI provides one backed by charmbracelet/log).
package observability

// Logger receives structured events from the report engine.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
}

// Field is a single key/value pair attached to a log event.
type Field interface {
	Key() string
	Value() interface{}
}

type stringField struct{ key, val string }

func (f stringField) Key() string        { return f.key }
func (f stringField) Value() interface{} { return f.val }

type intField struct {
	key string
	val int
}

func (f intField) Key() string        { return f.key }
func (f intField) Value() interface{} { return f.val }

type float64Field struct {
	key string
	val float64
}

func (f float64Field) Key() string        { return f.key }
func (f float64Field) Value() interface{} { return f.val }

type errorField struct {
	key string
	err error
}

func (f errorField) Key() string        { return f.key }
func (f errorField) Value() interface{} { return f.err }

func String(key, value string) Field          { return stringField{key, value} }
func Int(key string, value int) Field         { return intField{key, value} }
func Float64(key string, value float64) Field { return float64Field{key, value} }
func Error(key string, err error) Field       { return errorField{key, err} }

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debug(string, ...Field) {}
func (NopLogger) Info(string, ...Field)  {}
func (NopLogger) Warn(string, ...Field)  {}
func (NopLogger) Error(string, ...Field) {}
func (NopLogger) With(...Field) Logger   { return NopLogger{} }

// Standard field keys emitted by the engine.
const (
	FieldLanguage  = "language"
	FieldVariant   = "variant"
	FieldFontFile  = "font_file"
	FieldDiagram   = "diagram"
	FieldPageCount = "page_count"
	FieldDuration  = "duration"
	FieldBytes     = "bytes"
)
