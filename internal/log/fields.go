package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldError      = "error"
	FieldErrorType  = "error_type"
	FieldOperation  = "operation"
	FieldMonthID    = "month_id"
	FieldHabitID    = "habit_id"
	FieldHabitCount = "habits"
)

// Components name the part of the process a log line comes from.
const (
	ComponentApp    = "app"
	ComponentHTTP   = "http"
	ComponentHabit  = "habit"
	ComponentWorker = "worker"
)

// Operations name month writes.
const (
	OpWrite    = "write"
	OpAddHabit = "add_habit"
	OpDelete   = "delete_habit"
	OpToggle   = "toggle"
	OpReflect  = "reflection"
)

// Error types classify server-side failures.
const (
	ErrorTypePersistence = "persistence_error"
	ErrorTypeMalformed   = "malformed_record_error"
	ErrorTypeInternal    = "internal_error"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

func NewFields() LogFields {
	return make(LogFields)
}

func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

// WithError adds the error message; nil errors are ignored.
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithMonth adds the month id and, when known, the habit count.
func (f LogFields) WithMonth(monthID string, habits int) LogFields {
	f[FieldMonthID] = monthID
	if habits >= 0 {
		f[FieldHabitCount] = habits
	}
	return f
}

func (f LogFields) WithHabit(habitID string) LogFields {
	f[FieldHabitID] = habitID
	return f
}

func (f LogFields) WithRequest(method, path string) LogFields {
	f[FieldMethod] = method
	f[FieldPath] = path
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
