package generate

import (
	"bytes"
	"embed"
	"text/template"

	"github.com/chriserin/jsxgen/internal/errors"
	"github.com/chriserin/jsxgen/internal/logging"
	"github.com/chriserin/jsxgen/internal/parser"
	"github.com/chriserin/jsxgen/internal/tree"
	"github.com/rs/zerolog"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// ArtifactKind selects where the writer places an artifact.
type ArtifactKind string

const (
	KindConfig    ArtifactKind = "config"
	KindApp       ArtifactKind = "app"
	KindComponent ArtifactKind = "component"
	KindContext   ArtifactKind = "context"
	KindStyle     ArtifactKind = "style"
)

// Extensions accepted for generated source files.
var Extensions = []string{"js", "jsx", "tsx"}

type Options struct {
	Extension string // source file extension, "js" when empty
	Arrow     bool   // arrow function components instead of function declarations
}

// Artifact is the generated text for one tree node, together with the node's
// element and its ordered child elements. Style and context artifacts carry
// the element that declared them.
type Artifact struct {
	Kind     ArtifactKind
	Name     string
	Ext      string
	Element  *parser.Element
	Children []*parser.Element
	Content  string
}

type Generator struct {
	opts      Options
	templates *template.Template
	log       zerolog.Logger
}

func New(opts Options) (*Generator, error) {
	if opts.Extension == "" {
		opts.Extension = "js"
	}
	tmpl, err := template.ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrTemplate, "parsing templates")
	}
	return &Generator{
		opts:      opts,
		templates: tmpl,
		log:       logging.GetLogger("generate"),
	}, nil
}

// Generate walks t in level order and renders the config node, the App node
// and the first occurrence of every other component name. Later occurrences
// of a name share the first one's artifact and are skipped.
func (g *Generator) Generate(t *tree.Tree[*parser.Element]) ([]Artifact, error) {
	if t == nil || t.Root() == nil {
		return nil, errors.New(errors.ErrInvalidArgument, "cannot generate from an empty tree")
	}

	var artifacts []Artifact
	seen := map[string]bool{}
	for node, err := range t.LevelOrder(nil).All() {
		if err != nil {
			return nil, err
		}
		el := node.Value
		if el.Kind() == parser.KindComponent {
			if seen[el.Name] {
				g.log.Info().Str("component", el.Name).Int("line", el.Line).Msg("Skipping repeated component")
				continue
			}
			seen[el.Name] = true
		}
		out, err := g.render(node)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, out...)
	}
	g.log.Debug().Int("artifacts", len(artifacts)).Msg("Generation finished")
	return artifacts, nil
}

// GenerateOne renders the primary artifact of the first node named name.
// The config node is found by its reserved name even when the document
// has no explicit <Config> tag.
func (g *Generator) GenerateOne(t *tree.Tree[*parser.Element], name string) (Artifact, error) {
	if t == nil || t.Root() == nil {
		return Artifact{}, errors.New(errors.ErrInvalidArgument, "cannot generate from an empty tree")
	}
	node := t.Root()
	if name != parser.ConfigName {
		var err error
		node, err = t.GetNodeBy(parser.ByName(name), nil)
		if err != nil {
			return Artifact{}, err
		}
		if node == nil {
			return Artifact{}, errors.Newf(errors.ErrNotFound, "no component named %q", name)
		}
	}
	out, err := g.render(node)
	if err != nil {
		return Artifact{}, err
	}
	return out[0], nil
}

// render selects the routine for the node; the primary artifact comes first.
func (g *Generator) render(node *tree.Node[*parser.Element]) ([]Artifact, error) {
	el := node.Value
	children := make([]*parser.Element, 0, node.ChildCount())
	for _, c := range node.Children() {
		children = append(children, c.Value)
	}

	var out []Artifact
	var err error
	switch el.Kind() {
	case parser.KindConfig:
		out, err = g.config(el, children)
	case parser.KindApp:
		out, err = g.component(KindApp, "app.tmpl", appPlacement, el, children)
	default:
		out, err = g.component(KindComponent, "component.tmpl", componentPlacement, el, children)
	}
	if err != nil {
		return nil, err
	}
	g.log.Debug().Str("kind", string(out[0].Kind)).Str("name", out[0].Name).Int("children", len(children)).Msg("Rendered artifact")
	return out, nil
}

func (g *Generator) config(el *parser.Element, children []*parser.Element) ([]Artifact, error) {
	providers := parser.CollectMultiplier(el, parser.AttrContext, baseContext)

	content, err := g.execute("config.tmpl", newConfigView(el, providers))
	if err != nil {
		return nil, err
	}
	out := []Artifact{{Kind: KindConfig, Name: "index", Ext: g.opts.Extension, Element: el, Children: children, Content: content}}

	for _, p := range providers {
		content, err := g.execute("context.tmpl", p)
		if err != nil {
			return nil, err
		}
		out = append(out, Artifact{Kind: KindContext, Name: p.Title, Ext: g.opts.Extension, Element: el, Content: content})
	}
	return g.withStyle(out, el, "index")
}

func (g *Generator) component(kind ArtifactKind, tmpl string, at placement, el *parser.Element, children []*parser.Element) ([]Artifact, error) {
	content, err := g.execute(tmpl, newComponentView(el, children, at, g.opts))
	if err != nil {
		return nil, err
	}
	out := []Artifact{{Kind: kind, Name: el.Name, Ext: g.opts.Extension, Element: el, Children: children, Content: content}}
	return g.withStyle(out, el, el.Name)
}

func (g *Generator) withStyle(out []Artifact, el *parser.Element, class string) ([]Artifact, error) {
	style := el.Attributes.Value(parser.AttrStyle)
	if style == "" {
		return out, nil
	}
	content, err := g.execute("style.tmpl", struct{ Name string }{class})
	if err != nil {
		return nil, err
	}
	return append(out, Artifact{Kind: KindStyle, Name: out[0].Name, Ext: styleExt(style), Element: el, Content: content}), nil
}

func (g *Generator) execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := g.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", errors.Wrapf(err, errors.ErrTemplate, "executing %s", name)
	}
	return buf.String(), nil
}
