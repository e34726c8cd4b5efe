package blockweaver

// Diagnostic reports a condition the engine recovered from on its own:
// a malformed source, a failed coercion, a save skeleton missing a source
// target, or a block whose markup no longer matches its save output.
type Diagnostic struct {
	Block string
	Err   error
	Diff  string // expected vs. actual markup, set for invalid blocks
}

// DiagnosticSink receives diagnostics as they happen.
type DiagnosticSink interface {
	OnDiagnostic(d Diagnostic)
}

type DiagnosticSinkFunc func(d Diagnostic)

func (f DiagnosticSinkFunc) OnDiagnostic(d Diagnostic) { f(d) }

// InvalidBlockError is the diagnostic error for a block whose markup does not
// match the output of its own save function.
type InvalidBlockError struct {
	Name string
}

// Error implements the error interface.
func (e *InvalidBlockError) Error() string {
	return "block " + e.Name + " contains unexpected or invalid content"
}

func (e *Engine) report(d Diagnostic) {
	e.logger.Debug("Recovered block diagnostic.", "block", d.Block, "error", d.Err)
	if e.sink != nil {
		e.sink.OnDiagnostic(d)
	}
}
