package internal

// LogHandler is the logging collaborator the smart charging core depends
// on. It is deliberately narrow -- the core never needs more than a
// feature-scoped event log and three importance levels.
type LogHandler interface {
	FeatureEvent(feature, scopeId, text string)
	Debug(text string)
	Warn(text string)
	Error(text string, err error)
}
