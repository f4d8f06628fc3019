package indicators

// ROC computes the percentage rate of change against the value `period`
// positions back. A zero past value yields 0 rather than a division blow-up.
func ROC(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	if period <= 0 || len(values) <= period {
		return out
	}
	for i := period; i < len(values); i++ {
		past := values[i-period]
		if past == 0 {
			out[i] = 0
			continue
		}
		out[i] = (values[i] - past) / past * 100
	}
	return out
}
