package domain

// TotalExpenses sums the amounts of all expense lines. A nil or empty list
// totals 0; lines with a zero-value amount (absent on the wire) contribute
// nothing. All lines are assumed to share the entry's single currency; no
// conversion happens here.
func TotalExpenses(expenses []ExpenseLine) float64 {
	var total float64
	for _, line := range expenses {
		total += line.Amount
	}
	return total
}
