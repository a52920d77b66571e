// Package gvplot tabulates and plots the Gilbert-Varshamov target weight as a
// function of the matrix size.
package gvplot

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/image/colornames"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/sdchallenge/sdgen/sd"
)

// Point is one row of the curve for k = n/2. DGV and W are -1 where the float
// estimate overflows.
type Point struct {
	N, K     int
	DGV      int
	DGVExact int
	W        int
	WExact   int
}

// FloatOK reports whether the float estimate exists at this size.
func (p Point) FloatOK() bool { return p.DGV >= 0 }

// Curve evaluates sizes from, from+step, ..., to.
func Curve(from, to, step int) ([]Point, error) {
	if from < 0 || step <= 0 || to < from {
		return nil, fmt.Errorf("gvplot: bad range %d..%d step %d", from, to, step)
	}
	var out []Point
	for n := from; n <= to; n += step {
		k := n / 2
		p := Point{N: n, K: k, DGV: -1, W: -1}
		var err error
		if p.DGVExact, err = sd.DGVExact(n, k); err != nil {
			return nil, err
		}
		if p.WExact, err = sd.TargetWeight(n, k, sd.WeightExact); err != nil {
			return nil, err
		}
		d, err := sd.DGV(n, k)
		switch {
		case err == nil:
			p.DGV = d
			if p.W, err = sd.TargetWeight(n, k, sd.WeightFloat); err != nil {
				return nil, err
			}
		case errors.Is(err, sd.ErrWeightOverflow):
		default:
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// WriteCSV writes n,k,dgv,dgv_exact,w,w_exact; overflowed float columns are
// left empty.
func WriteCSV(w io.Writer, pts []Point) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"n", "k", "dgv", "dgv_exact", "w", "w_exact"}); err != nil {
		return err
	}
	opt := func(v int) string {
		if v < 0 {
			return ""
		}
		return strconv.Itoa(v)
	}
	for _, p := range pts {
		rec := []string{
			strconv.Itoa(p.N), strconv.Itoa(p.K),
			opt(p.DGV), strconv.Itoa(p.DGVExact),
			opt(p.W), strconv.Itoa(p.WExact),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

type weightXY struct {
	pts   []Point
	exact bool
}

func (s weightXY) Len() int { return len(s.pts) }

func (s weightXY) XY(i int) (x, y float64) {
	p := s.pts[i]
	if s.exact {
		return float64(p.N), float64(p.WExact)
	}
	return float64(p.N), float64(p.W)
}

// Plot draws w(n) for both weight modes. The float line stops where the float
// estimate overflows.
func Plot(pts []Point) (*plot.Plot, error) {
	if len(pts) == 0 {
		return nil, errors.New("gvplot: no points")
	}
	p := plot.New()
	p.Title.Text = "Target weight (k = n/2)"
	p.X.Label.Text = "n"
	p.Y.Label.Text = "w"

	exact, err := plotter.NewLine(weightXY{pts: pts, exact: true})
	if err != nil {
		return nil, fmt.Errorf("gvplot: exact line: %w", err)
	}
	exact.Color = colornames.Red
	p.Add(exact)
	p.Legend.Add("exact", exact)

	var floatPts []Point
	for _, pt := range pts {
		if pt.FloatOK() {
			floatPts = append(floatPts, pt)
		}
	}
	if len(floatPts) > 0 {
		fl, err := plotter.NewLine(weightXY{pts: floatPts})
		if err != nil {
			return nil, fmt.Errorf("gvplot: float line: %w", err)
		}
		fl.Color = colornames.Blue
		fl.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(fl)
		p.Legend.Add("float", fl)
	}
	p.Legend.Top = true
	p.Legend.Left = true
	p.Y.Min = 0
	return p, nil
}

// PlotAndStore renders Plot as an 800x600 PNG into out.
func PlotAndStore(pts []Point, out io.Writer) error {
	p, err := Plot(pts)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(800, 600, "png")
	if err != nil {
		return fmt.Errorf("gvplot: prepare png: %w", err)
	}
	if _, err := wt.WriteTo(out); err != nil {
		return fmt.Errorf("gvplot: write png: %w", err)
	}
	return nil
}
