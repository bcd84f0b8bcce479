package session

import (
	"errors"
	"testing"
	"time"

	"dinedash/models"

	"github.com/go-test/deep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thejerf/abtime"
)

var jane = models.Identity{ID: 7, Email: "a@x.com", Name: "Jane", Role: models.RoleManager}

func TestJWTCodec_RoundTrip(t *testing.T) {
	codec := NewJWTCodec("s3cret", time.Hour, abtime.NewManualAtTime(time.Unix(1500000000, 0).UTC()))

	token, err := codec.Encode(jane)
	require.NoError(t, err)

	got, err := codec.Decode(token)
	require.NoError(t, err)
	if diff := deep.Equal(*got, jane); diff != nil {
		t.Error(diff)
	}
}

func TestJWTCodec_Expiry(t *testing.T) {
	clock := abtime.NewManualAtTime(time.Unix(1500000000, 0).UTC())
	codec := NewJWTCodec("s3cret", time.Hour, clock)

	token, err := codec.Encode(jane)
	require.NoError(t, err)

	clock.Advance(59 * time.Minute)
	_, err = codec.Decode(token)
	require.NoError(t, err)

	clock.Advance(2 * time.Minute)
	_, err = codec.Decode(token)
	assert.True(t, errors.Is(err, ErrSessionInvalid))
}

func TestJWTCodec_RejectsForeignSignature(t *testing.T) {
	clock := abtime.NewManualAtTime(time.Unix(1500000000, 0).UTC())
	token, err := NewJWTCodec("one", time.Hour, clock).Encode(jane)
	require.NoError(t, err)

	_, err = NewJWTCodec("two", time.Hour, clock).Decode(token)
	assert.True(t, errors.Is(err, ErrSessionInvalid))

	_, err = NewJWTCodec("one", time.Hour, clock).Decode("not.a.token")
	assert.True(t, errors.Is(err, ErrSessionInvalid))
}

func TestJSONCodec(t *testing.T) {
	var codec JSONCodec
	token, err := codec.Encode(jane)
	require.NoError(t, err)
	assert.Contains(t, token, `"email":"a@x.com"`)

	got, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, jane, *got)

	for _, bad := range []string{"", "{", `{"email":"a@x.com"}`, `{"id":3}`} {
		_, err := codec.Decode(bad)
		assert.True(t, errors.Is(err, ErrSessionInvalid), "input %q", bad)
	}
}
