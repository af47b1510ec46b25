// Package ports declares the contracts the application core needs from the
// outside world: the order store, its transaction boundary and the notifier.
package ports
