package charger

// chargeRequest is one pending admission entry. The deadline is the
// submitting unit's remaining-time budget at submission time.
type chargeRequest struct {
	deadline  float64
	vehicleID int
}

// requestQueue is a min-heap over (deadline, vehicleID).
type requestQueue []chargeRequest

func (q requestQueue) Len() int { return len(q) }

func (q requestQueue) Less(i, j int) bool {
	if q[i].deadline != q[j].deadline {
		return q[i].deadline < q[j].deadline
	}
	return q[i].vehicleID < q[j].vehicleID
}

func (q requestQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *requestQueue) Push(x any) { *q = append(*q, x.(chargeRequest)) }

func (q *requestQueue) Pop() any {
	old := *q
	n := len(old)
	r := old[n-1]
	*q = old[:n-1]
	return r
}
