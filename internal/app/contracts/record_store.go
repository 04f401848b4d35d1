package contracts

import "context"

// RecordQuery narrows a table listing. Where uses the record store filter
// syntax, e.g. "(Status,eq,open)~and(Level,eq,B1)".
type RecordQuery struct {
	Where  string
	Sort   string
	Limit  int
	Offset int
}

// RecordPage holds the raw JSON rows of one listing page.
type RecordPage struct {
	Rows      [][]byte
	TotalRows int
}

type RecordStoreClient interface {
	ListRecords(ctx context.Context, table string, query RecordQuery) (*RecordPage, error)
	GetRecord(ctx context.Context, table, recordID string) ([]byte, error)
	CreateRecord(ctx context.Context, table string, fields map[string]interface{}) ([]byte, error)
	UpdateRecord(ctx context.Context, table string, fields map[string]interface{}) ([]byte, error)
}
