package core

// Client is one live transport session as seen by the core layer.
// Name and CurrentRoom are owned by the hub goroutine once the client
// is registered; the transport layer must not touch them afterwards.
type Client struct {
	ID          string
	Name        string
	CurrentRoom string

	Commands chan *Command
	Events   chan *Event

	// done is closed by the hub when the client is released; it stops
	// the command pump so late commands are dropped instead of queued.
	done chan struct{}
}

// NewClient constructs a client with initialized channels.
func NewClient(id, name string, buffer int) *Client {
	if buffer <= 0 {
		buffer = 8
	}
	return &Client{
		ID:       id,
		Name:     name,
		Commands: make(chan *Command, buffer),
		Events:   make(chan *Event, buffer),
		done:     make(chan struct{}),
	}
}
