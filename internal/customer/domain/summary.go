package domain

// StatusCount holds the customers flagged with a status and the classification records
// in that status across them.
type StatusCount struct {
	Customers int
	Cards     int
}

// SummaryStatistics aggregates a classified population for dashboards.
type SummaryStatistics struct {
	TotalCustomers int
	TotalCards     int
	Expired        StatusCount
	ExpiringSoon   StatusCount
	ExpiringLater  StatusCount
}

// Summarize counts customers and cards per status. A customer with two expired cards
// adds one to Expired.Customers and two to Expired.Cards.
func Summarize(customers []*CustomerWithExpiration) SummaryStatistics {
	var stats SummaryStatistics

	for _, c := range customers {
		stats.TotalCustomers++
		stats.TotalCards += c.TotalCards()

		addStatus(&stats.Expired, c, StatusExpired)
		addStatus(&stats.ExpiringSoon, c, StatusExpiringSoon)
		addStatus(&stats.ExpiringLater, c, StatusExpiringLater)
	}

	return stats
}

func addStatus(count *StatusCount, c *CustomerWithExpiration, status ExpirationStatus) {
	records := c.CountStatus(status)
	if records == 0 {
		return
	}
	count.Customers++
	count.Cards += records
}
