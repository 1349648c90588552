package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monebot/website/pkg/core"
)

func TestForVersion(t *testing.T) {
	assert.Equal(t, "msgpack", ForVersion("msgpack").Name())
	assert.True(t, ForVersion("msgpack").Binary())
	assert.Equal(t, "json", ForVersion("").Name())
	assert.Equal(t, "json", ForVersion("2.0.0").Name())
}

func TestCodecs_DecodeClientEvent(t *testing.T) {
	msg := core.Message{
		Ref:     "7",
		Topic:   "lv:abc",
		Event:   "select_event",
		Payload: map[string]any{"value": "member_leave"},
	}

	for _, codec := range []Codec{NewJSONCodec(), NewMsgPackCodec()} {
		t.Run(codec.Name(), func(t *testing.T) {
			data, err := codec.Encode(msg)
			require.NoError(t, err)

			got, err := codec.Decode(data)
			require.NoError(t, err)
			assert.Equal(t, "select_event", got.Event)
			assert.Equal(t, "7", got.Ref)
			assert.Equal(t, "member_leave", core.StringValue(got.Payload))
		})
	}
}

func TestCodecs_RejectInvalid(t *testing.T) {
	_, err := NewJSONCodec().Decode([]byte(`{malformed`))
	assert.ErrorIs(t, err, ErrInvalidMessage)

	_, err = NewJSONCodec().Decode([]byte(`{"topic":"lv:abc"}`))
	assert.ErrorIs(t, err, ErrInvalidMessage)

	_, err = NewMsgPackCodec().Decode([]byte{0xc1})
	assert.ErrorIs(t, err, ErrInvalidMessage)
}

func FuzzJSONDecode(f *testing.F) {
	f.Add([]byte(`{"ref":"1","topic":"lv:abc","event":"copy","payload":{"value":"auth"}}`))
	f.Add([]byte(`{"event":""}`))
	f.Add([]byte(`[]`))
	f.Add([]byte(``))

	codec := NewJSONCodec()
	f.Fuzz(func(t *testing.T, data []byte) {
		msg, err := codec.Decode(data)
		if err != nil {
			return
		}
		out, err := codec.Encode(msg)
		if err != nil {
			t.Fatalf("encode decoded message: %v", err)
		}
		again, err := codec.Decode(out)
		if err != nil {
			t.Fatalf("re-decode: %v", err)
		}
		if again.Event != msg.Event || again.Ref != msg.Ref || again.Topic != msg.Topic {
			t.Errorf("roundtrip mismatch: %+v != %+v", again, msg)
		}
	})
}
