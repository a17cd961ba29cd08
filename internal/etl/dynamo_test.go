package etl

import (
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDynamo serves canned pages so pagination can be exercised without a
// real backend.
type fakeDynamo struct {
	dynamodbiface.DynamoDBAPI

	tables    []string
	listErr   error
	keySchema []*dynamodb.KeySchemaElement
	pages     []*dynamodb.ScanOutput
	scanCalls []*dynamodb.ScanInput
}

func (f *fakeDynamo) ListTables(input *dynamodb.ListTablesInput) (*dynamodb.ListTablesOutput, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return &dynamodb.ListTablesOutput{TableNames: aws.StringSlice(f.tables)}, nil
}

func (f *fakeDynamo) DescribeTable(input *dynamodb.DescribeTableInput) (*dynamodb.DescribeTableOutput, error) {
	return &dynamodb.DescribeTableOutput{
		Table: &dynamodb.TableDescription{KeySchema: f.keySchema},
	}, nil
}

func (f *fakeDynamo) Scan(input *dynamodb.ScanInput) (*dynamodb.ScanOutput, error) {
	// Record a snapshot: the gateway may reuse and mutate the same input
	// struct across calls, and we want the value as seen at call time.
	snapshot := *input
	f.scanCalls = append(f.scanCalls, &snapshot)
	page := f.pages[len(f.scanCalls)-1]
	return page, nil
}

func hashKey(attr string) []*dynamodb.KeySchemaElement {
	return []*dynamodb.KeySchemaElement{
		{AttributeName: aws.String(attr), KeyType: aws.String(dynamodb.KeyTypeHash)},
		{AttributeName: aws.String("sort"), KeyType: aws.String(dynamodb.KeyTypeRange)},
	}
}

func item(id string) map[string]*dynamodb.AttributeValue {
	return map[string]*dynamodb.AttributeValue{
		"id": {S: aws.String(id)},
	}
}

func TestListTables(t *testing.T) {
	g := &DynamoGateway{Client: &fakeDynamo{tables: []string{"stg_users", "orders"}}}

	names, err := g.ListTables()
	require.NoError(t, err)
	assert.Equal(t, []string{"stg_users", "orders"}, names)
}

func TestListTablesCredentialError(t *testing.T) {
	g := &DynamoGateway{Client: &fakeDynamo{
		listErr: awserr.New("NoCredentialProviders", "no valid providers in chain", nil),
	}}

	_, err := g.ListTables()
	var credErr *CredentialError
	assert.ErrorAs(t, err, &credErr)
}

func TestListTablesBackendError(t *testing.T) {
	g := &DynamoGateway{Client: &fakeDynamo{
		listErr: awserr.New("InternalServerError", "boom", nil),
	}}

	_, err := g.ListTables()
	var storeErr *SourceStoreError
	assert.ErrorAs(t, err, &storeErr)
}

func TestScanTableFollowsContinuationToken(t *testing.T) {
	token := map[string]*dynamodb.AttributeValue{"id": {S: aws.String("2")}}
	fake := &fakeDynamo{
		keySchema: hashKey("id"),
		pages: []*dynamodb.ScanOutput{
			{Items: []map[string]*dynamodb.AttributeValue{item("1"), item("2")}, LastEvaluatedKey: token},
			{Items: []map[string]*dynamodb.AttributeValue{item("3")}},
		},
	}
	g := &DynamoGateway{Client: fake}

	scan, err := g.ScanTable("stg_users")
	require.NoError(t, err)

	// Concatenation of all pages, no item dropped or duplicated.
	require.Len(t, scan.Items, 3)
	var ids []string
	for _, rec := range scan.Items {
		ids = append(ids, rec["id"].(string))
	}
	assert.Equal(t, []string{"1", "2", "3"}, ids)

	// Second request must carry the first page's continuation token.
	require.Len(t, fake.scanCalls, 2)
	assert.Nil(t, fake.scanCalls[0].ExclusiveStartKey)
	assert.Equal(t, token, fake.scanCalls[1].ExclusiveStartKey)

	assert.Equal(t, "stg_users", scan.Table.Name)
	assert.Equal(t, "id", scan.Table.PartitionKey)
}

func TestScanTableNoPartitionKey(t *testing.T) {
	fake := &fakeDynamo{
		keySchema: []*dynamodb.KeySchemaElement{
			{AttributeName: aws.String("sort"), KeyType: aws.String(dynamodb.KeyTypeRange)},
		},
	}
	g := &DynamoGateway{Client: fake}

	_, err := g.ScanTable("broken")
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "broken", schemaErr.Table)
}

func TestIsCredentialFailureUnwrapsNestedCause(t *testing.T) {
	nested := awserr.New("RequestError", "send failed",
		awserr.New("NoCredentialProviders", "no valid providers", nil))
	assert.True(t, isCredentialFailure(nested))
	assert.False(t, isCredentialFailure(errors.New("plain")))
}
