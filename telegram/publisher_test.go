package telegram_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/fwojciec/referent"
	"github.com/fwojciec/referent/telegram"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const getMeResponse = `{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"referent","username":"referent_bot"}}`

type botServer struct {
	mu      sync.Mutex
	methods []string
	chats   []string
	texts   []string
}

func (s *botServer) handler(t *testing.T, messageID int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		method := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
		w.Header().Set("Content-Type", "application/json")

		if method == "getMe" {
			_, _ = w.Write([]byte(getMeResponse))
			return
		}

		var chat, text string
		if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
			assert.NoError(t, r.ParseMultipartForm(1<<20))
			chat, text = r.FormValue("chat_id"), r.FormValue("caption")
		} else {
			assert.NoError(t, r.ParseForm())
			chat, text = r.FormValue("chat_id"), r.FormValue("text")
		}

		s.mu.Lock()
		s.methods = append(s.methods, method)
		s.chats = append(s.chats, chat)
		s.texts = append(s.texts, text)
		messageID++
		id := messageID
		s.mu.Unlock()

		fmt.Fprintf(w, `{"ok":true,"result":{"message_id":%d,"date":0,"chat":{"id":100,"type":"channel"}}}`, id)
	}
}

func newPublisher(t *testing.T, h http.Handler, chat string) *telegram.Publisher {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	p, err := telegram.NewPublisher("TOKEN", chat, telegram.WithEndpoint(srv.URL+"/bot%s/%s"))
	require.NoError(t, err)
	return p
}

func TestNewPublisher(t *testing.T) {
	t.Parallel()

	t.Run("missing token is unauthorized", func(t *testing.T) {
		t.Parallel()

		_, err := telegram.NewPublisher(" ", "100")

		assert.Equal(t, referent.EUNAUTHORIZED, referent.ErrorCode(err))
	})

	t.Run("missing chat is invalid", func(t *testing.T) {
		t.Parallel()

		_, err := telegram.NewPublisher("TOKEN", "")

		assert.Equal(t, referent.EINVALID, referent.ErrorCode(err))
	})

	t.Run("rejected token maps status", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"ok":false,"error_code":401,"description":"Unauthorized"}`))
		}))
		t.Cleanup(srv.Close)

		_, err := telegram.NewPublisher("BAD", "100", telegram.WithEndpoint(srv.URL+"/bot%s/%s"))

		require.Error(t, err)
		assert.Equal(t, referent.EUNAUTHORIZED, referent.ErrorCode(err))
		assert.Equal(t, http.StatusUnauthorized, referent.ErrorStatus(err))
	})
}

func TestPublisher_Publish(t *testing.T) {
	t.Parallel()

	t.Run("sends text message to numeric chat", func(t *testing.T) {
		t.Parallel()

		srv := &botServer{}
		p := newPublisher(t, srv.handler(t, 41), "100")

		id, err := p.Publish(context.Background(), "Hello 👋", nil)

		require.NoError(t, err)
		assert.Equal(t, "42", id)
		assert.Equal(t, []string{"sendMessage"}, srv.methods)
		assert.Equal(t, []string{"100"}, srv.chats)
		assert.Equal(t, []string{"Hello 👋"}, srv.texts)
	})

	t.Run("sends to channel username", func(t *testing.T) {
		t.Parallel()

		srv := &botServer{}
		p := newPublisher(t, srv.handler(t, 0), "@news")

		_, err := p.Publish(context.Background(), "post", nil)

		require.NoError(t, err)
		assert.Equal(t, []string{"@news"}, srv.chats)
	})

	t.Run("short text becomes photo caption", func(t *testing.T) {
		t.Parallel()

		srv := &botServer{}
		p := newPublisher(t, srv.handler(t, 6), "100")
		img := &referent.Image{Data: []byte("\x89PNG"), ContentType: "image/png"}

		id, err := p.Publish(context.Background(), "caption", img)

		require.NoError(t, err)
		assert.Equal(t, "7", id)
		assert.Equal(t, []string{"sendPhoto"}, srv.methods)
		assert.Equal(t, []string{"caption"}, srv.texts)
	})

	t.Run("long text follows the photo", func(t *testing.T) {
		t.Parallel()

		srv := &botServer{}
		p := newPublisher(t, srv.handler(t, 0), "100")
		img := &referent.Image{Data: []byte("\x89PNG"), ContentType: "image/png"}
		text := strings.Repeat("a", telegram.MaxCaptionLength+1)

		id, err := p.Publish(context.Background(), text, img)

		require.NoError(t, err)
		assert.Equal(t, "2", id)
		assert.Equal(t, []string{"sendPhoto", "sendMessage"}, srv.methods)
		assert.Equal(t, []string{"", text}, srv.texts)
	})

	t.Run("text over limit is rejected", func(t *testing.T) {
		t.Parallel()

		srv := &botServer{}
		p := newPublisher(t, srv.handler(t, 0), "100")

		_, err := p.Publish(context.Background(), strings.Repeat("я", telegram.MaxMessageLength+1), nil)

		assert.Equal(t, referent.EINVALID, referent.ErrorCode(err))
		assert.Empty(t, srv.methods)
	})

	t.Run("limit counts characters not bytes", func(t *testing.T) {
		t.Parallel()

		srv := &botServer{}
		p := newPublisher(t, srv.handler(t, 0), "100")

		_, err := p.Publish(context.Background(), strings.Repeat("я", telegram.MaxMessageLength), nil)

		require.NoError(t, err)
	})

	t.Run("api error carries status", func(t *testing.T) {
		t.Parallel()

		p := newPublisher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if strings.HasSuffix(r.URL.Path, "/getMe") {
				_, _ = w.Write([]byte(getMeResponse))
				return
			}
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"ok":false,"error_code":403,"description":"Forbidden: bot is not a member of the channel chat"}`))
		}), "@news")

		_, err := p.Publish(context.Background(), "post", nil)

		require.Error(t, err)
		assert.Equal(t, referent.EFORBIDDEN, referent.ErrorCode(err))
		assert.Equal(t, http.StatusForbidden, referent.ErrorStatus(err))
		assert.Contains(t, referent.ErrorDetails(err), "not a member")
	})
}
