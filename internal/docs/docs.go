// Package docs holds the markdown topics shown by "tempo docs".
package docs

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

//go:embed content/*.md
var contentFS embed.FS

func Topics() []string {
	entries, err := fs.Glob(contentFS, "content/*.md")
	if err != nil {
		return []string{}
	}
	var topics []string
	for _, p := range entries {
		topic := strings.TrimSuffix(path.Base(p), ".md")
		if topic != "" {
			topics = append(topics, topic)
		}
	}
	sort.Strings(topics)
	return topics
}

func Get(topic string) (string, bool) {
	topic = strings.ToLower(strings.TrimSpace(topic))
	if topic == "" {
		return "", false
	}
	b, err := contentFS.ReadFile(path.Join("content", topic+".md"))
	if err != nil {
		return "", false
	}
	return string(b), true
}

var (
	renderersMu sync.Mutex
	renderers   = map[string]*glamour.TermRenderer{}
)

// Styles lists the glamour styles Render accepts.
var Styles = []string{"auto", "dark", "light", "notty"}

// Render returns topic rendered for a terminal of the given width.
func Render(topic, style string, width int) (string, error) {
	md, ok := Get(topic)
	if !ok {
		return "", fmt.Errorf("unknown topic %q (want one of %s)", topic, strings.Join(Topics(), ", "))
	}
	r, err := renderer(style, width)
	if err != nil {
		return "", err
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", topic, err)
	}
	return strings.TrimRight(out, "\n") + "\n", nil
}

func renderer(style string, width int) (*glamour.TermRenderer, error) {
	style = strings.ToLower(strings.TrimSpace(style))
	if style == "" {
		style = "auto"
	}
	if width <= 0 {
		width = 80
	}
	key := style + ":" + strconv.Itoa(width)

	renderersMu.Lock()
	defer renderersMu.Unlock()
	if r := renderers[key]; r != nil {
		return r, nil
	}
	var opt glamour.TermRendererOption
	if style == "auto" {
		opt = glamour.WithAutoStyle()
	} else {
		opt = glamour.WithStandardStyle(style)
	}
	r, err := glamour.NewTermRenderer(opt, glamour.WithWordWrap(width))
	if err != nil {
		return nil, fmt.Errorf("markdown renderer %s: %w", style, err)
	}
	renderers[key] = r
	return r, nil
}
