package carbon

// Tracer receives intermediate diff state. It has the signature of q.Q and fmt.Println-like
// debug helpers.
type Tracer func(v ...interface{})

type config struct {
	emptyPatch bool
	tracer     Tracer
}

type FuncOption func(*config)

// WithEmptyPatch makes diffing two empty inputs produce an empty patch instead of ErrEmptyInput.
func WithEmptyPatch() FuncOption {
	return func(o *config) {
		o.emptyPatch = true
	}
}

// WithTracer passes the candidate and picked blocks of every diff to t.
func WithTracer(t Tracer) FuncOption {
	return func(o *config) {
		o.tracer = t
	}
}

func (c *config) trace(v ...interface{}) {
	if c.tracer != nil {
		c.tracer(v...)
	}
}
