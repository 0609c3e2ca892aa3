package account

// Account is the API response model for an account.
type Account struct {
	ID        string `json:"id" doc:"Account UUID"`
	AccountID string `json:"accountID" doc:"External account id"`
	Balance   string `json:"balance" doc:"Decimal balance"`
	Credit    string `json:"credit" doc:"Decimal remaining credit line"`
	CreatedAt string `json:"createdAt" doc:"RFC3339 creation time"`
	UpdatedAt string `json:"updatedAt" doc:"RFC3339 time of the last change"`
}
