package notify

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	got []string
	err error
}

func (r *recorder) Notify(title, body string) error {
	r.got = append(r.got, title+"|"+body)
	return r.err
}

func TestMulti(t *testing.T) {
	ok := &recorder{}
	bad := &recorder{err: errors.New("offline")}

	err := Multi{bad, ok}.Notify("T", "B")
	assert.ErrorContains(t, err, "offline")
	assert.Equal(t, []string{"T|B"}, ok.got)
	assert.Equal(t, []string{"T|B"}, bad.got)

	assert.NoError(t, Multi{ok}.Notify("T", "B"))
	assert.NoError(t, Multi{}.Notify("T", "B"))
}

func TestTelegramNotify(t *testing.T) {
	var sent []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm() // nolint: errcheck
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/botTOKEN/getMe":
			w.Write([]byte(`{"ok":true,"result":{"id":7,"is_bot":true,"first_name":"notes","username":"notes_bot"}}`))
		case "/botTOKEN/sendMessage":
			sent = append(sent, r.Form.Get("chat_id")+":"+r.Form.Get("text"))
			w.Write([]byte(`{"ok":true,"result":{"message_id":1,"date":0,"chat":{"id":42,"type":"private"}}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"ok":false,"error_code":404,"description":"Not Found"}`))
		}
	}))
	defer srv.Close()

	tg, err := NewTelegramWithEndpoint("TOKEN", 42, srv.URL+"/bot%s/%s")
	require.NoError(t, err)

	require.NoError(t, tg.Notify("Revision Reminder", "A-1 — 24H due 2025-01-11"))
	assert.Equal(t, []string{"42:🔔 Revision Reminder\nA-1 — 24H due 2025-01-11"}, sent)
}

func TestNewTelegramRequiresSettings(t *testing.T) {
	_, err := NewTelegram("", 42)
	assert.Error(t, err)
	_, err = NewTelegram("TOKEN", 0)
	assert.Error(t, err)
}
