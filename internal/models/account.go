package models

// Account is one row of the users table: a unique login and its balance
// counted in smallest currency units. Balances are exact integers; no
// floating-point money anywhere in the system.
type Account struct {
	Login   string `json:"login"`
	Balance int64  `json:"balance"`
}
