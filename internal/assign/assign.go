// Package assign solves the rectangular linear assignment problem: the
// minimum-total-cost one-to-one pairing between the rows and columns of a cost
// matrix. It implements the shortest-augmenting-path variant of the
// Jonker-Volgenant algorithm, which handles non-square matrices directly and
// always returns a globally optimal pairing of size min(rows, cols).
package assign

import (
	"math"
	"sort"
)

// Solve computes a minimum-cost assignment for the given cost matrix.
// Every row of the matrix must have the same length, and all costs must be
// finite. The returned slices have length min(n, m) and are paired index-wise:
// row rows[k] is assigned to column cols[k]. Rows are in ascending order.
func Solve(cost [][]float64) (rows, cols []int) {
	nr := len(cost)
	if nr == 0 || len(cost[0]) == 0 {
		return nil, nil
	}
	nc := len(cost[0])

	// The augmenting-path loop assigns every row, so the smaller side must be
	// the rows. Solve on the transpose when the matrix is wide-side-down.
	transposed := false
	c := cost
	if nr > nc {
		t := make([][]float64, nc)
		for j := 0; j < nc; j++ {
			t[j] = make([]float64, nr)
			for i := 0; i < nr; i++ {
				t[j][i] = cost[i][j]
			}
		}
		c = t
		nr, nc = nc, nr
		transposed = true
	}

	u := make([]float64, nr) // row duals
	v := make([]float64, nc) // column duals
	shortest := make([]float64, nc)
	path := make([]int, nc)
	col4row := make([]int, nr)
	row4col := make([]int, nc)
	sr := make([]bool, nr)
	sc := make([]bool, nc)
	remaining := make([]int, nc)

	for i := range col4row {
		col4row[i] = -1
	}
	for j := range row4col {
		row4col[j] = -1
	}

	for curRow := 0; curRow < nr; curRow++ {
		minVal := 0.0
		numRemaining := nc
		for it := 0; it < nc; it++ {
			remaining[it] = nc - it - 1
		}
		for i := range sr {
			sr[i] = false
		}
		for j := range sc {
			sc[j] = false
		}
		for j := range shortest {
			shortest[j] = math.Inf(1)
		}

		// Dijkstra-style search for the shortest augmenting path from curRow
		// to an unassigned column, using reduced costs.
		sink := -1
		i := curRow
		for sink == -1 {
			index := -1
			lowest := math.Inf(1)
			sr[i] = true

			for it := 0; it < numRemaining; it++ {
				j := remaining[it]
				r := minVal + c[i][j] - u[i] - v[j]
				if r < shortest[j] {
					path[j] = i
					shortest[j] = r
				}
				// Break ties in favor of unassigned columns to terminate early.
				if shortest[j] < lowest || (shortest[j] == lowest && row4col[j] == -1) {
					lowest = shortest[j]
					index = it
				}
			}

			minVal = lowest
			j := remaining[index]
			if row4col[j] == -1 {
				sink = j
			} else {
				i = row4col[j]
			}

			sc[j] = true
			numRemaining--
			remaining[index] = remaining[numRemaining]
		}

		// Update dual variables to keep reduced costs non-negative.
		u[curRow] += minVal
		for i := 0; i < nr; i++ {
			if sr[i] && i != curRow {
				u[i] += minVal - shortest[col4row[i]]
			}
		}
		for j := 0; j < nc; j++ {
			if sc[j] {
				v[j] -= minVal - shortest[j]
			}
		}

		// Augment: flip assignments along the path back to curRow.
		j := sink
		for {
			i := path[j]
			row4col[j] = i
			col4row[i], j = j, col4row[i]
			if i == curRow {
				break
			}
		}
	}

	rows = make([]int, nr)
	cols = make([]int, nr)
	if !transposed {
		for i := 0; i < nr; i++ {
			rows[i] = i
			cols[i] = col4row[i]
		}
		return rows, cols
	}

	// Working rows were original columns; map back and re-sort by row.
	for i := 0; i < nr; i++ {
		rows[i] = col4row[i]
		cols[i] = i
	}
	sort.Sort(&byRow{rows, cols})
	return rows, cols
}

type byRow struct {
	rows []int
	cols []int
}

func (s *byRow) Len() int           { return len(s.rows) }
func (s *byRow) Less(i, j int) bool { return s.rows[i] < s.rows[j] }
func (s *byRow) Swap(i, j int) {
	s.rows[i], s.rows[j] = s.rows[j], s.rows[i]
	s.cols[i], s.cols[j] = s.cols[j], s.cols[i]
}
