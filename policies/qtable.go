package policies

// QTable maps a discretized observation key to one value per action.
type QTable struct {
	values   map[string][]float64
	nActions int
}

func NewQTable(nActions int) *QTable {
	return &QTable{
		values:   make(map[string][]float64),
		nActions: nActions,
	}
}

func (q *QTable) Row(key string) []float64 {
	row, ok := q.values[key]
	if !ok {
		row = make([]float64, q.nActions)
		q.values[key] = row
	}
	return row
}

// MaxAmong returns the best legal action for the key and its value. The
// mask uses 1 for legal actions.
func (q *QTable) MaxAmong(key string, mask []int) (int, float64) {
	row := q.Row(key)
	best := -1
	bestVal := 0.0
	for a, v := range row {
		if a < len(mask) && mask[a] != 1 {
			continue
		}
		if best == -1 || v > bestVal {
			best = a
			bestVal = v
		}
	}
	if best == -1 {
		return 0, 0
	}
	return best, bestVal
}

func (q *QTable) Max(key string) float64 {
	row, ok := q.values[key]
	if !ok {
		return 0
	}
	max := row[0]
	for _, v := range row[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

func (q *QTable) Set(key string, action int, value float64) {
	row := q.Row(key)
	row[action] = value
}

func (q *QTable) Len() int {
	return len(q.values)
}
