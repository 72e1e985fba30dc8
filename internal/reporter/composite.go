package reporter

// CompositeReporter fans every event out to all of its members, used
// to drive the terminal reporter and a log-file reporter from the same
// encode run.
type CompositeReporter struct {
	reporters []Reporter
}

// NewCompositeReporter returns a Reporter that forwards to every member
// in order.
func NewCompositeReporter(reporters ...Reporter) *CompositeReporter {
	return &CompositeReporter{reporters: reporters}
}

func (c *CompositeReporter) ContainerStarted(s ContainerSummary) {
	for _, r := range c.reporters {
		r.ContainerStarted(s)
	}
}

func (c *CompositeReporter) TitleStarted(s TitleSummary) {
	for _, r := range c.reporters {
		r.TitleStarted(s)
	}
}

func (c *CompositeReporter) StageProgress(s StageProgress) {
	for _, r := range c.reporters {
		r.StageProgress(s)
	}
}

func (c *CompositeReporter) EncodingStarted(totalFrames uint64) {
	for _, r := range c.reporters {
		r.EncodingStarted(totalFrames)
	}
}

func (c *CompositeReporter) EncodingProgress(s ProgressSnapshot) {
	for _, r := range c.reporters {
		r.EncodingProgress(s)
	}
}

func (c *CompositeReporter) TitleComplete(s TitleOutcome) {
	for _, r := range c.reporters {
		r.TitleComplete(s)
	}
}

func (c *CompositeReporter) Warning(message string) {
	for _, r := range c.reporters {
		r.Warning(message)
	}
}

func (c *CompositeReporter) Error(e ReporterError) {
	for _, r := range c.reporters {
		r.Error(e)
	}
}

func (c *CompositeReporter) OperationComplete(message string) {
	for _, r := range c.reporters {
		r.OperationComplete(message)
	}
}

func (c *CompositeReporter) Verbose(message string) {
	for _, r := range c.reporters {
		r.Verbose(message)
	}
}
