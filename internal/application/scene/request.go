package scene

// Kind identifies what a Request does to the stack
type Kind int

const (
	// KindPush places a new scene on top of the current one
	KindPush Kind = iota
	// KindSwap replaces the current top scene
	KindSwap
	// KindPopSwap removes the top scene and replaces the one beneath it
	KindPopSwap
	// KindPop removes the top scene, revealing the one beneath it
	KindPop
)

// String returns the string representation of the request kind
func (k Kind) String() string {
	switch k {
	case KindPush:
		return "Push"
	case KindSwap:
		return "Swap"
	case KindPopSwap:
		return "PopSwap"
	case KindPop:
		return "Pop"
	default:
		return "Unknown"
	}
}

// NeedsScene reports whether requests of this kind carry a scene
func (k Kind) NeedsScene() bool {
	return k == KindPush || k == KindSwap || k == KindPopSwap
}

// Request asks the scene stack to change. Build one with Push, Swap, PopSwap
// or Pop and return it from Update or Enter.
type Request struct {
	Kind       Kind
	Scene      Scene
	Transition Transition

	entered bool
}

// Push returns a request placing s on top of the stack
func Push(s Scene) *Request {
	return &Request{Kind: KindPush, Scene: s}
}

// Swap returns a request replacing the top scene with s
func Swap(s Scene) *Request {
	return &Request{Kind: KindSwap, Scene: s}
}

// PopSwap returns a request removing the top scene and replacing the one
// beneath it with s
func PopSwap(s Scene) *Request {
	return &Request{Kind: KindPopSwap, Scene: s}
}

// Pop returns a request removing the top scene
func Pop() *Request {
	return &Request{Kind: KindPop}
}

// WithTransition attaches a visual transition to the request
func (r *Request) WithTransition(t Transition) *Request {
	r.Transition = t
	return r
}

// Entered marks the request's scene as already entered by the caller, so the
// stack will not call Enter on it again. Only meaningful for Push and Swap.
func (r *Request) Entered() *Request {
	if r.Kind == KindPush || r.Kind == KindSwap {
		r.entered = true
	}
	return r
}

// SkipsEnter reports whether the stack must not call Enter on the scene
func (r *Request) SkipsEnter() bool {
	return r.entered
}
