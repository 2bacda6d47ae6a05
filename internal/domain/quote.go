package domain

// Unknown is reported for a quote field that has never been scraped successfully.
const Unknown = "Unknown"

type QuoteSnapshot struct {
	Price string
	Date  string
}

func UnknownSnapshot() QuoteSnapshot {
	return QuoteSnapshot{Price: Unknown, Date: Unknown}
}
