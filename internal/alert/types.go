package alert

// DigestSummary is the observability result of one digest run.
type DigestSummary struct {
	RecipientsProcessed int `json:"recipients_processed"`
	EmailsSent          int `json:"emails_sent"`
}
