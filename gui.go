package guiruntime

// RawContext identifies one engine context instance. Zero means no context.
type RawContext uintptr

// StringField selects one of the string slots in a context's IO block
type StringField uint8

const (
	FieldIniFilename StringField = iota
	FieldLogFilename
	FieldPlatformName
	FieldRendererName
)

// StringFieldCount is the number of StringField values.
const StringFieldCount = 4

func (f StringField) String() string {
	switch f {
	case FieldIniFilename:
		return "ini_filename"
	case FieldLogFilename:
		return "log_filename"
	case FieldPlatformName:
		return "platform_name"
	case FieldRendererName:
		return "renderer_name"
	}
	return "unknown"
}

// Engine is the primitive surface of the GUI core. Implementations hold one
// process-global current-context slot shared by every context they create.
//
// Contract assumed by the lifecycle layer:
//
//   - CreateContext makes the new instance current if and only if no context
//     was current at the time of the call.
//   - DestroyContext clears the current-context slot if and only if the
//     destroyed instance was current.
//   - SaveIniSettings returns a buffer owned by the engine, valid only until
//     the next engine call; callers copy it immediately.
//   - LoadIniSettings and SaveIniSettings act on the current context.
//
// Engine methods are not synchronized; callers serialize access themselves.
type Engine interface {
	CreateContext() RawContext
	DestroyContext(raw RawContext)
	Current() RawContext
	SetCurrent(raw RawContext)
	IOString(raw RawContext, field StringField) *byte
	SetIOString(raw RawContext, field StringField, ptr *byte)
	LoadIniSettings(data []byte)
	SaveIniSettings() []byte
}
