package gate

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/awalterschulze/gographviz"
)

type unit struct {
	ID         string
	Layer      string
	Bias       float64
	Activation float64
	HasBias    bool
}

// ToDot renders the network as a Graphviz digraph: one node per unit labelled
// with its bias and last activation, one edge per weight.
func (g *Gate) ToDot() string {
	graph := gographviz.NewGraph()
	if err := graph.SetName("G"); err != nil {
		panic(err)
	}
	graph.SetDir(true)
	graph.AddAttr("G", "rankdir", "LR")

	var buf bytes.Buffer
	addUnit := func(u unit) {
		tmpl.Execute(&buf, u)
		attrs := map[string]string{
			"fontname": "Monaco",
			"shape":    "none",
			"label":    buf.String(),
		}
		graph.AddNode("G", u.ID, attrs)
		buf.Reset()
	}

	for i := 0; i < g.Inputs; i++ {
		addUnit(unit{ID: inputID(i), Layer: "input", Activation: g.X.At(0, i)})
	}
	for j := 0; j < g.Hidden; j++ {
		addUnit(unit{ID: hiddenID(j), Layer: "hidden", Bias: g.B1.At(0, j), Activation: g.A1.At(0, j), HasBias: true})
	}
	for k := 0; k < g.Outputs; k++ {
		addUnit(unit{ID: outputID(k), Layer: "output", Bias: g.B2.At(0, k), Activation: g.A2.At(0, k), HasBias: true})
	}

	for i := 0; i < g.Inputs; i++ {
		for j := 0; j < g.Hidden; j++ {
			graph.AddEdge(inputID(i), hiddenID(j), true, weightAttrs(g.W1.At(i, j)))
		}
	}
	for j := 0; j < g.Hidden; j++ {
		for k := 0; k < g.Outputs; k++ {
			graph.AddEdge(hiddenID(j), outputID(k), true, weightAttrs(g.W2.At(j, k)))
		}
	}
	return graph.String()
}

func inputID(i int) string  { return fmt.Sprintf("x%d", i) }
func hiddenID(j int) string { return fmt.Sprintf("h%d", j) }
func outputID(k int) string { return fmt.Sprintf("y%d", k) }

func weightAttrs(w float64) map[string]string {
	return map[string]string{"label": fmt.Sprintf("\"%.4f\"", w)}
}

const tmplRaw = `<
<TABLE BORDER="0" CELLBORDER="1" CELLSPACING="0">
<TR><TD COLSPAN="2">{{.ID}} ({{.Layer}})</TD></TR>
{{- if .HasBias}}
<TR><TD>Bias</TD><TD>{{printf "%.4f" .Bias}}</TD></TR>
{{- end}}
<TR><TD>Activation</TD><TD>{{printf "%.4f" .Activation}}</TD></TR>
</TABLE>
>
`

var tmpl *template.Template

func init() {
	tmpl = template.Must(template.New("unit").Parse(tmplRaw))
}
