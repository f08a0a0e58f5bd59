package fairpay

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/goccy/go-json"
)

// Results stores the per-player salary estimates in input row order. Residual
// is actual minus estimate, so a positive residual reads as overpaid relative
// to statistically similar players.
type Results struct {
	Names    []string  `json:"players"`
	Actual   []float64 `json:"actual"`
	Estimate []float64 `json:"estimate"`
	Residual []float64 `json:"residual"`
	Scores   *Scores   `json:"scores"`
}

// PlayerEstimate is a single ranked row of the salary report.
type PlayerEstimate struct {
	Name     string  `json:"player"`
	Actual   float64 `json:"actual"`
	Estimate float64 `json:"estimate"`
	Residual float64 `json:"residual"`
}

// Overpaid returns the top n players by descending residual.
func (r *Results) Overpaid(n int) []PlayerEstimate {
	ranked := r.ranked()
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Residual != ranked[j].Residual {
			return ranked[i].Residual > ranked[j].Residual
		}
		return ranked[i].Name < ranked[j].Name
	})
	return truncate(ranked, n)
}

// Underpaid returns the top n players by ascending residual.
func (r *Results) Underpaid(n int) []PlayerEstimate {
	ranked := r.ranked()
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Residual != ranked[j].Residual {
			return ranked[i].Residual < ranked[j].Residual
		}
		return ranked[i].Name < ranked[j].Name
	})
	return truncate(ranked, n)
}

func (r *Results) ranked() []PlayerEstimate {
	ranked := make([]PlayerEstimate, len(r.Names))
	for i, name := range r.Names {
		ranked[i] = PlayerEstimate{
			Name:     name,
			Actual:   r.Actual[i],
			Estimate: r.Estimate[i],
			Residual: r.Residual[i],
		}
	}
	return ranked
}

func truncate(ranked []PlayerEstimate, n int) []PlayerEstimate {
	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// JSON returns the results serialized for the report file.
func (r *Results) JSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// TablePrint writes the overpaid and underpaid rankings truncated to n rows
// each.
func (r *Results) TablePrint(w io.Writer, n int) error {
	if err := tablePrint(w, "Most overpaid:", r.Overpaid(n)); err != nil {
		return err
	}
	return tablePrint(w, "Most underpaid:", r.Underpaid(n))
}

func tablePrint(w io.Writer, title string, ranked []PlayerEstimate) error {
	if _, err := fmt.Fprintf(w, "%s\n", title); err != nil {
		return err
	}
	tbl := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprintf(tbl, "Player\tActual\tEstimated\tDiff\t\n"); err != nil {
		return err
	}
	for _, pe := range ranked {
		if _, err := fmt.Fprintf(tbl, "%s\t%.0f\t%.0f\t%+.0f\t\n",
			pe.Name, pe.Actual, pe.Estimate, pe.Residual); err != nil {
			return err
		}
	}
	return tbl.Flush()
}
