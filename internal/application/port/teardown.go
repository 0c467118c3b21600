package port

// Scope is anything that can notify its own teardown, typically a window.
type Scope interface {
	OnUnload(fn func()) (cancel func())
}

// Teardown tracks cleanup callbacks.
type Teardown interface {
	// OnTeardown registers fn to run when scope tears down, or on process
	// teardown when scope is nil. Calling release runs fn early; fn runs at
	// most once whichever happens first.
	OnTeardown(scope Scope, fn func()) (release func())
}
