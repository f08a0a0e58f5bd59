// Package loader reads the per-game, advanced, and salary CSV tables and
// joins them into a single observation table keyed on player name.
//
// Cleaning policy: players appearing more than once under the join key in any
// input (mid-season team changes) are excluded outright rather than merged,
// and joined rows with missing or unparseable numeric fields are dropped
// entirely. Neither case is a load error.
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hoopstats/go-fairpay/dataset"
)

var (
	ErrMissingJoinColumn   = errors.New("join column not found in header")
	ErrMissingSalaryColumn = errors.New("salary column not found in header")
	ErrNoFeatureColumns    = errors.New("no feature columns after exclusions")
)

type Options struct {
	// JoinColumn is the player name header shared by all three tables.
	JoinColumn string
	// SalaryColumn is the target header in the salary table.
	SalaryColumn string
	// ExcludeColumns are stat table headers skipped as features, e.g. team
	// and position labels or a rank index.
	ExcludeColumns []string
}

func NewDefaultOptions() *Options {
	return &Options{
		JoinColumn:     "Player",
		SalaryColumn:   "Salary",
		ExcludeColumns: []string{"Rk", "Tm", "Team", "Pos"},
	}
}

// Result carries the joined observation table along with counts of the rows
// removed by the cleaning policy.
type Result struct {
	Table    *dataset.Table
	Dropped  int // joined rows removed due to missing or unparseable fields
	Excluded int // players removed due to duplicate join keys
}

// LoadFiles joins the three CSV files into an observation table. Row order
// follows the per-game table.
func LoadFiles(perGamePath, advancedPath, salaryPath string, opt *Options) (*Result, error) {
	perGame, err := os.Open(perGamePath)
	if err != nil {
		return nil, fmt.Errorf("unable to open per-game table, %w", err)
	}
	defer perGame.Close()

	advanced, err := os.Open(advancedPath)
	if err != nil {
		return nil, fmt.Errorf("unable to open advanced table, %w", err)
	}
	defer advanced.Close()

	salaries, err := os.Open(salaryPath)
	if err != nil {
		return nil, fmt.Errorf("unable to open salary table, %w", err)
	}
	defer salaries.Close()

	return Load(perGame, advanced, salaries, opt)
}

// Load joins per-game stats, advanced stats, and salaries into an observation
// table with the salary as the target column.
func Load(perGame, advanced, salaries io.Reader, opt *Options) (*Result, error) {
	if opt == nil {
		opt = NewDefaultOptions()
	}

	perGameTbl, err := readTable(perGame, opt.JoinColumn)
	if err != nil {
		return nil, fmt.Errorf("unable to read per-game table, %w", err)
	}
	advancedTbl, err := readTable(advanced, opt.JoinColumn)
	if err != nil {
		return nil, fmt.Errorf("unable to read advanced table, %w", err)
	}
	salaryTbl, err := readTable(salaries, opt.JoinColumn)
	if err != nil {
		return nil, fmt.Errorf("unable to read salary table, %w", err)
	}
	salaryIdx, exists := salaryTbl.colIdx[opt.SalaryColumn]
	if !exists {
		return nil, fmt.Errorf("%q, %w", opt.SalaryColumn, ErrMissingSalaryColumn)
	}

	exclude := make(map[string]struct{}, len(opt.ExcludeColumns)+1)
	exclude[opt.JoinColumn] = struct{}{}
	for _, col := range opt.ExcludeColumns {
		exclude[col] = struct{}{}
	}

	// feature headers come from the two stat tables in order of appearance
	// with the first occurrence winning on overlap, e.g. games played
	// appearing in both tables
	var columns []string
	var perGameCols, advancedCols []string
	seen := make(map[string]struct{})
	for _, col := range perGameTbl.header {
		if _, skip := exclude[col]; skip {
			continue
		}
		if _, dup := seen[col]; dup {
			continue
		}
		seen[col] = struct{}{}
		columns = append(columns, col)
		perGameCols = append(perGameCols, col)
	}
	for _, col := range advancedTbl.header {
		if _, skip := exclude[col]; skip {
			continue
		}
		if _, dup := seen[col]; dup {
			continue
		}
		seen[col] = struct{}{}
		columns = append(columns, col)
		advancedCols = append(advancedCols, col)
	}
	if len(columns) == 0 {
		return nil, ErrNoFeatureColumns
	}

	res := &Result{}

	var names []string
	var x [][]float64
	var y []float64
	for _, name := range perGameTbl.order {
		if perGameTbl.dups[name] || advancedTbl.dups[name] || salaryTbl.dups[name] {
			res.Excluded++
			continue
		}
		advRow, exists := advancedTbl.rows[name]
		if !exists {
			res.Dropped++
			continue
		}
		salaryRow, exists := salaryTbl.rows[name]
		if !exists {
			res.Dropped++
			continue
		}
		pgRow := perGameTbl.rows[name]

		row := make([]float64, 0, len(columns))
		complete := true
		for _, col := range perGameCols {
			val, err := parseNumber(pgRow[perGameTbl.colIdx[col]])
			if err != nil {
				complete = false
				break
			}
			row = append(row, val)
		}
		if complete {
			for _, col := range advancedCols {
				val, err := parseNumber(advRow[advancedTbl.colIdx[col]])
				if err != nil {
					complete = false
					break
				}
				row = append(row, val)
			}
		}
		salary, err := parseNumber(salaryRow[salaryIdx])
		if !complete || err != nil {
			res.Dropped++
			continue
		}

		names = append(names, name)
		x = append(x, row)
		y = append(y, salary)
	}

	table, err := dataset.New(names, columns, x, y)
	if err != nil {
		return nil, fmt.Errorf("unable to build observation table, %w", err)
	}
	res.Table = table
	return res, nil
}

type rawTable struct {
	header []string
	colIdx map[string]int
	order  []string
	rows   map[string][]string
	dups   map[string]bool
}

func readTable(r io.Reader, joinColumn string) (*rawTable, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("unable to read header row, %w", err)
	}
	tbl := &rawTable{
		header: header,
		colIdx: make(map[string]int, len(header)),
		rows:   make(map[string][]string),
		dups:   make(map[string]bool),
	}
	for i, col := range header {
		tbl.colIdx[col] = i
	}
	joinIdx, exists := tbl.colIdx[joinColumn]
	if !exists {
		return nil, fmt.Errorf("%q, %w", joinColumn, ErrMissingJoinColumn)
	}

	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("unable to read record, %w", err)
		}
		name := strings.TrimSpace(record[joinIdx])
		if name == "" {
			continue
		}
		if _, exists := tbl.rows[name]; exists {
			tbl.dups[name] = true
			continue
		}
		tbl.order = append(tbl.order, name)
		tbl.rows[name] = record
	}
	return tbl, nil
}

// parseNumber parses a numeric cell tolerating currency formatting such as
// $21,000,000.
func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, fmt.Errorf("empty numeric field")
	}
	return strconv.ParseFloat(s, 64)
}
