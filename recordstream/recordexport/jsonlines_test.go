package recordexport_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/recordstream-go/recordstream"
	"github.com/AntonStoeckl/recordstream-go/recordstream/memoryengine"
	"github.com/AntonStoeckl/recordstream-go/recordstream/recordexport"
	"github.com/AntonStoeckl/recordstream-go/testutil/recordstream/fixtures"
)

func Test_WriteSnapshotJSONLines_WritesOneLinePerRecordInOrder(t *testing.T) {
	// setup
	store, err := memoryengine.NewStore()
	require.NoError(t, err)
	_, records := fixtures.NewProducer(1).TerminatedProcessInstance("order-process")
	for _, r := range records {
		require.NoError(t, store.Append(context.Background(), r))
	}

	var out bytes.Buffer

	// act
	err = recordexport.WriteSnapshotJSONLines(&out, store)

	// assert
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, len(records))
	assert.Contains(t, lines[0], `"recordType":"COMMAND"`)
	assert.Contains(t, lines[0], `"index":0`)
	assert.Contains(t, lines[5], `"intent":"ELEMENT_TERMINATED"`)
}

func Test_ReadJSONLines_ReadsWhatWasWritten(t *testing.T) {
	// setup
	_, records := fixtures.NewProducer(2).CompletedProcessInstance("order-process")
	var out bytes.Buffer
	require.NoError(t, recordexport.WriteJSONLines(&out, records))

	// act
	exported, err := recordexport.ReadJSONLines(&out)

	// assert
	require.NoError(t, err)
	require.Len(t, exported, len(records))
	for i, e := range exported {
		assert.Equal(t, i, e.Index)
		assert.Equal(t, records[i].Position, e.Position)
		assert.Equal(t, records[i].RecordType, e.RecordType)
		assert.Equal(t, records[i].Intent, e.Intent)
	}
}

func Test_ReadJSONLines_WithMalformedInput_ReturnsError(t *testing.T) {
	_, err := recordexport.ReadJSONLines(strings.NewReader(`{"index":0,"value":`))

	assert.Error(t, err)
}

func Test_WriteJSONLines_WithoutRecords_WritesNothing(t *testing.T) {
	var out bytes.Buffer

	err := recordexport.WriteJSONLines(&out, recordstream.CapturedRecords{})

	assert.NoError(t, err)
	assert.Empty(t, out.String())
}
