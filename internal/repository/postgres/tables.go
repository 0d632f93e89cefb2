package postgres

import "fmt"

// TableNames holds dynamically prefixed table names so dev, test and
// prod data can share one database.
type TableNames struct {
	Products  string
	Reviews   string
	EventLogs string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Products:  fmt.Sprintf("%sproducts", prefix),
		Reviews:   fmt.Sprintf("%sreviews", prefix),
		EventLogs: fmt.Sprintf("%sevent_logs", prefix),
	}
}
