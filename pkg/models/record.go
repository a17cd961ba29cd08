package models

// Record is a raw source-store item: an arbitrary mapping of attribute
// name to value, held in memory only while its table is being processed.
type Record map[string]interface{}

// TableDescriptor names a source table together with its partition key
// attribute, discovered from the table's key schema at scan time.
type TableDescriptor struct {
	Name         string
	PartitionKey string
}

// TableScan is the result of a full table scan: the descriptor plus every
// item, accumulated across all pages in scan order.
type TableScan struct {
	Table TableDescriptor
	Items []Record
}

// TransformedRecord is the canonical envelope persisted downstream.
// Data always round-trips the full raw record.
type TransformedRecord struct {
	RowID     interface{}
	Data      Record
	Created   interface{}
	Updated   string
	IsDeleted bool
}
