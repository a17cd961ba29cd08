package etl

import (
	"time"

	"github.com/dataplatform-io/dynoshift/pkg/models"
)

// updatedLayout matches the format the warehouse tables were loaded with
// historically: UTC wall clock at second precision plus the zone name.
const updatedLayout = "2006-01-02 15:04:05MST"

// Transformer reshapes raw records into the canonical five-field envelope.
type Transformer struct {
	now func() time.Time
}

func NewTransformer() *Transformer {
	return &Transformer{now: time.Now}
}

// Transform builds one envelope per raw record. The full record is retained
// verbatim in Data; created passes through when the record carries it;
// updated is stamped at transform time per record.
func (t *Transformer) Transform(items []models.Record, pk string) []models.TransformedRecord {
	transformed := make([]models.TransformedRecord, 0, len(items))
	for _, item := range items {
		transformed = append(transformed, models.TransformedRecord{
			RowID:     item[pk],
			Data:      item,
			Created:   item["created"],
			Updated:   t.now().UTC().Format(updatedLayout),
			IsDeleted: false,
		})
	}
	return transformed
}
