package job

// StatusCount is one slice of the status breakdown chart.
type StatusCount struct {
	Name  Status `json:"name"`
	Value int    `json:"value"`
}

// Stats aggregates an owner's applications for the dashboard.
type Stats struct {
	Total        int           `json:"total"`
	Applied      int           `json:"applied"`
	Interviewing int           `json:"interviewing"`
	Offers       int           `json:"offers"`
	Rejected     int           `json:"rejected"`
	ByStatus     []StatusCount `json:"byStatus"`
}

// NewStats builds Stats from per-status counts. ByStatus follows pipeline
// order and omits empty statuses.
func NewStats(counts map[Status]int) Stats {
	st := Stats{ByStatus: []StatusCount{}}
	for _, s := range Statuses {
		n := counts[s]
		st.Total += n
		if n > 0 {
			st.ByStatus = append(st.ByStatus, StatusCount{Name: s, Value: n})
		}
	}
	st.Applied = counts[StatusApplied]
	st.Interviewing = counts[StatusInterviewing]
	st.Offers = counts[StatusOffer]
	st.Rejected = counts[StatusRejected]
	return st
}
