package ports

// URLOpenerPort hands a URL to the platform's default handler. It does not
// wait for the handler to finish.
type URLOpenerPort interface {
	Open(url string) error
}
