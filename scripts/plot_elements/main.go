/*plot_elements plots the reconstructed orbital elements of one particle
pair over the full sampled history: semi-major axis and eccentricity against
time, with gaps wherever the pair is unbound or either particle is missing.

Usage:
    plot_elements -BHFile bh_history.csv [-NSFile ns_history.csv] \
        -ID1 35 -ID2 112 -Out elements.png
*/
package main

import (
	"flag"
	"fmt"
	"log"

	plt "github.com/phil-mansfield/pyplot"

	"github.com/phil-mansfield/orbvis/io"
	"github.com/phil-mansfield/orbvis/orbit"
	"github.com/phil-mansfield/orbvis/trajectory"
)

func main() {
	var (
		bhFile, nsFile, out string
		id1, id2            int64
	)
	flag.StringVar(&bhFile, "BHFile", "", "Black hole history CSV.")
	flag.StringVar(&nsFile, "NSFile", "", "Neutron star history CSV (optional).")
	flag.StringVar(&out, "Out", "elements.png", "Output image file.")
	flag.Int64Var(&id1, "ID1", -1, "First particle id.")
	flag.Int64Var(&id2, "ID2", -1, "Second particle id.")
	flag.Parse()

	if bhFile == "" {
		log.Fatal("Must supply a -BHFile value.")
	}
	if id1 < 0 || id2 < 0 || id1 == id2 {
		log.Fatal("Must supply two distinct non-negative ids.")
	}

	traj, err := io.ReadTrajectory(bhFile, nsFile)
	if err != nil {
		log.Fatal(err.Error())
	}

	ts, as, es := elementHistory(traj, id1, id2)
	if len(ts) == 0 {
		log.Fatalf("Pair (%d, %d) is never simultaneously bound.", id1, id2)
	}

	plt.Reset()

	plt.Figure()
	plt.Plot(ts, as, "k", plt.LW(2))
	plt.Title(fmt.Sprintf("Pair (%d, %d)", id1, id2))
	plt.XLabel(`$t$ $[{\rm Myr}]$`, plt.FontSize(16))
	plt.YLabel(`$a$ $[{\rm pc}]$`, plt.FontSize(16))
	plt.YScale("log")
	plt.Grid(plt.Axis("y"))
	plt.SaveFig(fmt.Sprintf("a_%s", out))

	plt.Figure()
	plt.Plot(ts, es, "k", plt.LW(2))
	plt.XLabel(`$t$ $[{\rm Myr}]$`, plt.FontSize(16))
	plt.YLabel(`$e$`, plt.FontSize(16))
	plt.YLim(0, 1)
	plt.Grid(plt.Axis("y"))
	plt.SaveFig(fmt.Sprintf("e_%s", out))

	plt.Execute()
}

// elementHistory reconstructs the pair's orbit at every sampled time where
// both particles exist and the pair is bound.
func elementHistory(
	traj *trajectory.Trajectory, id1, id2 int64,
) (ts, as, es []float64) {
	for _, t := range traj.SortedTimes() {
		p1, ok1 := traj.Find(id1, t)
		p2, ok2 := traj.Find(id2, t)
		if !ok1 || !ok2 {
			continue
		}
		g, ok := orbit.Reconstruct(p1, p2)
		if !ok {
			continue
		}
		ts = append(ts, t)
		as = append(as, g.A)
		es = append(es, g.E)
	}
	return ts, as, es
}
