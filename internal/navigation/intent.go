// Package navigation routes cross-screen navigation intents to a back stack.
//
// Screens never navigate directly. A navigation intent is posted on the
// navigation bus, and the Registry attached to that bus picks the first
// Handler that accepts it and applies it to a Navigator.
package navigation

// Intent marks an intent that also requests navigation. Any screen's intent
// variant can implement it; routing does not depend on which screen sent it.
type Intent interface {
	NavigationIntent()
}

// Destination names a screen on the back stack.
type Destination string

// Navigator is the navigation surface handlers act on.
type Navigator interface {
	Navigate(dest Destination, opts ...Option)
	Back() bool
	Current() Destination
}

type navOptions struct {
	popUpTo   Destination
	inclusive bool
	singleTop bool
}

// Option adjusts a single Navigate call.
type Option func(*navOptions)

// PopUpTo pops entries above dest before pushing. With inclusive, dest itself
// is popped too. It has no effect when dest is not on the stack.
func PopUpTo(dest Destination, inclusive bool) Option {
	return func(o *navOptions) {
		o.popUpTo = dest
		o.inclusive = inclusive
	}
}

// SingleTop skips the push when the destination is already on top.
func SingleTop() Option {
	return func(o *navOptions) { o.singleTop = true }
}
