package vdom

import "testing"

func TestVKindString(t *testing.T) {
	tests := []struct {
		kind VKind
		want string
	}{
		{KindElement, "Element"},
		{KindText, "Text"},
		{KindFragment, "Fragment"},
		{KindComponent, "Component"},
		{VKind(255), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("VKind.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVNodeIsInteractive(t *testing.T) {
	tests := []struct {
		name string
		node *VNode
		want bool
	}{
		{name: "nil node", node: nil, want: false},
		{name: "text node", node: Text("hello"), want: false},
		{name: "plain element", node: Div(Class("x")), want: false},
		{name: "element with handler", node: Div(OnMouseEnter(func() {})), want: true},
		{name: "bare on prop", node: &VNode{Kind: KindElement, Props: Props{"on": 1}}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.IsInteractive(); got != tt.want {
				t.Errorf("IsInteractive() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVNodeHandlers(t *testing.T) {
	enter := func() {}
	leave := func() {}
	node := Div(OnMouseEnter(enter), OnMouseLeave(leave), Class("box"))

	handlers := node.Handlers()
	if len(handlers) != 2 {
		t.Fatalf("expected 2 handlers, got %d", len(handlers))
	}
	if _, ok := handlers[EventMouseEnter]; !ok {
		t.Error("missing mouseenter handler")
	}
	if _, ok := handlers[EventMouseLeave]; !ok {
		t.Error("missing mouseleave handler")
	}

	if Text("x").Handlers() != nil {
		t.Error("text nodes should have no handlers")
	}
}

func TestFuncComponent(t *testing.T) {
	c := Func(func() *VNode { return P(Text("hi")) })
	node := c.Render()
	if node.Tag != "p" {
		t.Errorf("expected <p>, got %q", node.Tag)
	}
}
