package schedule

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeEvent_WireNames(t *testing.T) {
	rec := Schedule{ID: "1", DoctorName: "Dr. Who", DateTime: time.Date(2024, 4, 11, 10, 0, 0, 0, time.UTC)}

	tests := []struct {
		ev       Event
		wireType string
	}{
		{ev: CreatedEvent(rec), wireType: "new_schedule"},
		{ev: UpdatedEvent(rec), wireType: "updated_schedule"},
		{ev: DeletedEvent("1"), wireType: "deleted_schedule"},
	}

	for _, tt := range tests {
		t.Run(tt.wireType, func(t *testing.T) {
			raw, err := EncodeEvent(tt.ev)
			require.NoError(t, err)

			var env Envelope
			require.NoError(t, json.Unmarshal(raw, &env))
			assert.Equal(t, tt.wireType, env.Type)
			assert.NotZero(t, env.Timestamp)

			back, err := DecodeEvent(raw)
			require.NoError(t, err)
			assert.Equal(t, tt.ev.Kind, back.Kind)
			assert.Equal(t, "1", back.ID)
		})
	}
}

func TestEncodeEvent_DeletedCarriesOnlyID(t *testing.T) {
	raw, err := EncodeEvent(DeletedEvent("abc"))
	require.NoError(t, err)

	var env Envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	assert.JSONEq(t, `{"id":"abc"}`, string(env.Data))
}

func TestEncodeEvent_Invalid(t *testing.T) {
	_, err := EncodeEvent(Event{Kind: EventCreated})
	assert.Error(t, err)

	_, err = EncodeEvent(Event{Kind: "renamed"})
	assert.Error(t, err)
}

func TestDecodeEvent_UnknownType(t *testing.T) {
	_, err := DecodeEvent([]byte(`{"type":"ping","data":{}}`))
	assert.Error(t, err)

	_, err = DecodeEvent([]byte(`not json`))
	assert.Error(t, err)
}
