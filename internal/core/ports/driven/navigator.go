package driven

import "net/url"

// Navigator is the routing facility the URL synchroniser reconciles against.
type Navigator interface {
	// Location returns a copy of the current location.
	Location() *url.URL

	// Replace swaps the current location without adding a history entry.
	Replace(u *url.URL) error

	// Subscribe registers fn to be called after every location change,
	// including changes made through Replace. It returns an unsubscribe func.
	Subscribe(fn func(*url.URL)) func()
}
