package pages

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/monebot/website/internal/copyflag"
	"github.com/monebot/website/pkg/core"
)

// recordTransport captures messages pushed to a socket.
type recordTransport struct {
	mu       sync.Mutex
	closed   bool
	messages []core.Message
}

func (r *recordTransport) Send(msg core.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
	return nil
}

func (r *recordTransport) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

func (r *recordTransport) IsConnected() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return !r.closed
}

func (r *recordTransport) commands() []map[string]any {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []map[string]any
	for _, m := range r.messages {
		if m.Event == "cmd" {
			out = append(out, m.Payload)
		}
	}
	return out
}

func connect(t *testing.T, c interface{ SetSocket(*core.Socket) }) (*core.Socket, *recordTransport) {
	t.Helper()
	tr := &recordTransport{}
	socket := core.NewSocket("test", tr)
	c.SetSocket(socket)
	t.Cleanup(func() { socket.Close() })
	return socket, tr
}

func nextInfo(t *testing.T, socket *core.Socket) any {
	t.Helper()
	select {
	case msg := <-socket.Infos():
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("no info message")
		return nil
	}
}

func render(t *testing.T, c core.Component) *html.Node {
	t.Helper()
	var sb strings.Builder
	require.NoError(t, c.Render(context.Background()).Render(context.Background(), &sb))
	doc, err := html.Parse(strings.NewReader(sb.String()))
	require.NoError(t, err)
	return doc
}

func renderString(t *testing.T, c core.Component) string {
	t.Helper()
	var sb strings.Builder
	require.NoError(t, c.Render(context.Background()).Render(context.Background(), &sb))
	return sb.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func findAll(n *html.Node, pred func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && pred(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func byClass(class string) func(*html.Node) bool {
	return func(n *html.Node) bool { return hasClass(n, class) }
}

func bySlot(slot string) func(*html.Node) bool {
	return func(n *html.Node) bool { return attr(n, "data-slot") == slot }
}

func textOf(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}

func slotText(t *testing.T, doc *html.Node, slot string) string {
	t.Helper()
	nodes := findAll(doc, bySlot(slot))
	require.Len(t, nodes, 1, slot)
	return textOf(nodes[0])
}

func testOptions(clock clockwork.Clock) Options {
	return Options{
		DashboardURL: "https://monebot.com/dashboard",
		InviteURL:    "https://discord.com/oauth2/authorize",
		CopyDelay:    2 * time.Second,
		Clock:        clock,
	}
}

// expireCopy advances the fake clock past the copy delay and feeds the
// resulting mailbox message back to the component.
func expireCopy(t *testing.T, clock *clockwork.FakeClock, socket *core.Socket, c core.Component) {
	t.Helper()
	clock.Advance(2 * time.Second)
	info := nextInfo(t, socket)
	require.IsType(t, copyflag.Expired{}, info)
	require.NoError(t, c.HandleInfo(context.Background(), info))
}
