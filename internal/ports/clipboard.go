package ports

// Clipboard copies text to the system clipboard.
type Clipboard interface {
	Copy(text string) error
}
