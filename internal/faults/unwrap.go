package faults

// Check terminates on a non-nil error, classified with the given location.
func Check(err error, location string) {
	if err != nil {
		Handle(err, Context{Location: location})
	}
}

// Handle classifies err and terminates. A spinner in the context is
// stopped exactly once before any message is printed; the spinner's own
// stop methods are idempotent, so a handler racing a Succeed call still
// emits a single line.
func Handle(err error, ctx Context) {
	if err == nil {
		return
	}
	e := Classify(err, ctx)
	if ctx.Spinner != nil {
		if e.Safe {
			ctx.Spinner.Stop()
		} else {
			ctx.Spinner.Fail(e.Name)
		}
	}
	Terminate(e)
}
