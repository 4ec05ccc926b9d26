package domain

// LoadState is the state of an asynchronous fetch.
// Exactly one of Idle, Loading, Loaded or Failed is held at a time.
type LoadState interface {
	loadState()
	String() string
}

// Idle means nothing has been requested yet.
type Idle struct{}

// Loading means a request is in flight.
type Loading struct{}

// Loaded means the last request succeeded.
type Loaded struct{}

// Failed means the last request failed.
type Failed struct {
	Err error
}

func (Idle) loadState()    {}
func (Loading) loadState() {}
func (Loaded) loadState()  {}
func (Failed) loadState()  {}

func (Idle) String() string    { return "idle" }
func (Loading) String() string { return "loading" }
func (Loaded) String() string  { return "loaded" }
func (Failed) String() string  { return "failed" }

// IsLoading returns true if s is Loading.
func IsLoading(s LoadState) bool {
	_, ok := s.(Loading)
	return ok
}

// FailureOf returns the error held by a Failed state, or nil.
func FailureOf(s LoadState) error {
	if f, ok := s.(Failed); ok {
		return f.Err
	}
	return nil
}
