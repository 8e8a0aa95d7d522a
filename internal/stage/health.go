package stage

// Health reports whether a pipeline stage can currently accept work.
// The daemon collects one record per configured stage and the status
// command renders them alongside dependency checks.
type Health struct {
	Name   string
	Ready  bool
	Detail string
}

// Healthy reports a stage that is ready to process items.
func Healthy(name string) Health {
	return Health{Name: name, Ready: true}
}

// Unhealthy reports a stage that cannot run, with detail explaining what
// is missing (an absent binary, an unset API key).
func Unhealthy(name, detail string) Health {
	return Health{Name: name, Ready: false, Detail: detail}
}
