package events

// Handler receives routed motion events
type Handler interface {
	HandleEvent(Event)
	EventTypes() []Type
}

// HandlerFunc adapts a plain function into a Handler for the given types
type HandlerFunc struct {
	Fn    func(Event)
	Types []Type
}

func (h HandlerFunc) HandleEvent(ev Event) { h.Fn(ev) }
func (h HandlerFunc) EventTypes() []Type   { return h.Types }

// Router dispatches queued events to registered handlers
// Dispatch is single-threaded; handlers run in registration order
type Router struct {
	handlers map[Type][]Handler
	queue    *Queue
}

// NewRouter creates a router attached to the given queue
func NewRouter(queue *Queue) *Router {
	return &Router{
		handlers: make(map[Type][]Handler),
		queue:    queue,
	}
}

// Register adds a handler for its declared event types
func (r *Router) Register(handler Handler) {
	for _, t := range handler.EventTypes() {
		r.handlers[t] = append(r.handlers[t], handler)
	}
}

// On registers a plain function for a single event type
func (r *Router) On(t Type, fn func(Event)) {
	r.Register(HandlerFunc{Fn: fn, Types: []Type{t}})
}

// DispatchAll consumes pending events and routes them in FIFO order
func (r *Router) DispatchAll() {
	for _, ev := range r.queue.Consume() {
		for _, h := range r.handlers[ev.Type] {
			h.HandleEvent(ev)
		}
	}
}

// HandlerCount returns registered handlers for a type
func (r *Router) HandlerCount(t Type) int {
	return len(r.handlers[t])
}
