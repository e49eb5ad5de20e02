package render

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/drakos74/iris-neuron/internal/boundary"
	"github.com/drakos74/iris-neuron/internal/trainer"
	"github.com/guptarohit/asciigraph"
	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
)

const (
	reset = "\033[H\033[2J"

	Anchor   = 'o'
	Positive = 'x'
	Line     = '*'
	Empty    = ' '
)

// Board gives read access to the last published trainer state.
type Board interface {
	Latest() (trainer.State, bool)
}

// Renderer draws the trainer state as a text frame.
type Renderer struct {
	out        io.Writer
	cols       int
	rows       int
	plotWidth  int
	plotHeight int
}

// New creates a new renderer writing to the given output.
func New(out io.Writer) *Renderer {
	return &Renderer{
		out:        out,
		cols:       61,
		rows:       21,
		plotWidth:  60,
		plotHeight: 10,
	}
}

// Grid sets the size of the scatter grid.
func (r *Renderer) Grid(cols, rows int) *Renderer {
	r.cols = cols
	r.rows = rows
	return r
}

// Plot sets the size of the loss plot.
func (r *Renderer) Plot(width, height int) *Renderer {
	r.plotWidth = width
	r.plotHeight = height
	return r
}

// Frame renders the full frame for the given state.
func (r *Renderer) Frame(s trainer.State) string {
	var b strings.Builder
	header(&b, s)
	b.WriteString("\n")
	r.loss(&b, s.Loss)
	b.WriteString("\n")
	if s.Graph != nil {
		fmt.Fprintf(&b, "%s / %s\n", s.Graph.XAxis, s.Graph.YAxis)
		for _, row := range r.Scatter(*s.Graph) {
			fmt.Fprintf(&b, "|%s|\n", row)
		}
		b.WriteString("\n")
	}
	predictions(&b, s)
	return b.String()
}

// Render clears the screen and writes the frame.
func (r *Renderer) Render(s trainer.State) error {
	_, err := fmt.Fprint(r.out, reset+r.Frame(s))
	return err
}

// Run renders the last published state on every interval until the context is done.
func (r *Renderer) Run(ctx context.Context, board Board, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s, ok := board.Latest()
			if !ok {
				continue
			}
			if err := r.Render(s); err != nil {
				log.Error().Err(err).Msg("could not render frame")
			}
		}
	}
}

func header(b *strings.Builder, s trainer.State) {
	status := "running"
	if s.Paused {
		status = "paused"
	}
	fmt.Fprintf(b, "%s | %s | mode %s | %s @ %d Hz\n", s.Session, s.Pair, s.Mode, status, s.Frequency)
	fmt.Fprintf(b, "generation %d | sample %d/%d\n", s.Cursor.Generation, s.Cursor.Index, s.Size)
	fmt.Fprintf(b, "weights %s | bias %.4f | data %s\n", vector(s.Neuron.Weights), s.Neuron.Bias, vector(s.Neuron.Data))
	if s.Step != nil {
		fmt.Fprintf(b, "output %.4f | target %.0f | error %.4f | gradient %.4f | loss %.4f\n",
			s.Step.Output, s.Step.Target, s.Step.Error, s.Step.Gradient, s.Step.Loss)
	}
}

func vector(vv []float64) string {
	ss := make([]string, len(vv))
	for i, v := range vv {
		ss[i] = fmt.Sprintf("%.4f", v)
	}
	return "[" + strings.Join(ss, " ") + "]"
}

func (r *Renderer) loss(b *strings.Builder, loss []float64) {
	series := finite(loss)
	if len(series) < 2 {
		b.WriteString("loss: -\n")
		return
	}
	if min, max := bounds(series); max-min == 0 {
		fmt.Fprintf(b, "loss: %.4f\n", series[len(series)-1])
		return
	}
	b.WriteString(asciigraph.Plot(series,
		asciigraph.Height(r.plotHeight),
		asciigraph.Width(r.plotWidth),
		asciigraph.Caption(fmt.Sprintf("loss %.4f", series[len(series)-1])),
	))
	b.WriteString("\n")
}

func finite(vv []float64) []float64 {
	ff := make([]float64, 0, len(vv))
	for _, v := range vv {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		ff = append(ff, v)
	}
	return ff
}

func bounds(vv []float64) (float64, float64) {
	min, max := vv[0], vv[0]
	for _, v := range vv {
		min = math.Min(min, v)
		max = math.Max(max, v)
	}
	return min, max
}

// Scatter draws the graph points and the decision line onto the grid.
func (r *Renderer) Scatter(g boundary.State) []string {
	grid := make([][]rune, r.rows)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(string(Empty), r.cols))
	}
	vp := boundary.NewViewport(0, 0, float64(r.cols-1), float64(r.rows-1))

	if g.Line != nil && g.Max.X > g.Min.X {
		for c := 0; c < r.cols; c++ {
			x := vp.X.Value(float64(c), g.Min.X, g.Max.X)
			if x < g.Min.X || x > g.Max.X {
				continue
			}
			y := g.Line.Y1 + (x-g.Min.X)/(g.Max.X-g.Min.X)*(g.Line.Y2-g.Line.Y1)
			_, sy := g.Screen(vp, x, y)
			r.set(grid, float64(c), sy, Line)
		}
	}

	for _, p := range g.Points {
		sx, sy := g.Screen(vp, p.X, p.Y)
		symbol := Anchor
		if p.Class == 1.0 {
			symbol = Positive
		}
		r.set(grid, sx, sy, symbol)
	}

	rows := make([]string, r.rows)
	for i, row := range grid {
		rows[i] = string(row)
	}
	return rows
}

func (r *Renderer) set(grid [][]rune, sx, sy float64, symbol rune) {
	if math.IsNaN(sx) || math.IsNaN(sy) || math.IsInf(sx, 0) || math.IsInf(sy, 0) {
		return
	}
	col := int(math.Round(sx))
	row := int(math.Round(sy))
	if col < 0 || col >= r.cols || row < 0 || row >= r.rows {
		return
	}
	grid[row][col] = symbol
}

func predictions(b *strings.Builder, s trainer.State) {
	table := tablewriter.NewWriter(b)
	table.SetHeader([]string{"Id", "Species", "Input", "Output", "Target", "Correct"})
	for _, p := range s.Predictions {
		table.Append([]string{
			fmt.Sprintf("%d", p.Record.ID),
			p.Record.Species.String(),
			vector(p.Input),
			fmt.Sprintf("%.4f", p.Output),
			fmt.Sprintf("%.0f", p.Target),
			fmt.Sprintf("%v", p.Correct),
		})
	}
	table.Render()
	fmt.Fprintf(b, "accuracy %.2f\n", s.Accuracy)
}
