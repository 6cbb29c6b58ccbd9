package session

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeToken builds an unsigned three-segment token around payload.
func makeToken(payload string) string {
	enc := base64.RawURLEncoding
	return enc.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`)) + "." +
		enc.EncodeToString([]byte(payload)) + ".sig"
}

func TestDecodeUser(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		want    *User
		wantErr bool
	}{
		{name: "email claim", token: makeToken(`{"email":"test@example.com","id":"1"}`), want: &User{Email: "test@example.com"}},
		{name: "no email claim", token: makeToken(`{"id":"1"}`), want: &User{Email: ""}},
		{name: "non-string email", token: makeToken(`{"email":42}`), want: &User{Email: ""}},
		{name: "padded payload", token: "h." + base64.URLEncoding.EncodeToString([]byte(`{"email":"a@b.c"}`)) + ".s", want: &User{Email: "a@b.c"}},
		{name: "two segments", token: "abc.def", wantErr: true},
		{name: "empty", token: "", wantErr: true},
		{name: "bad base64", token: "h.!!!.s", wantErr: true},
		{name: "not json", token: makeToken(`not json`), wantErr: true},
		{name: "json array", token: makeToken(`[1,2]`), wantErr: true},
		{name: "json null", token: makeToken(`null`), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeUser(tt.token)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrDecode)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
