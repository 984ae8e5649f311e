package restyutil

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type memoryOutput struct {
	messages map[string]string
}

func (o memoryOutput) Write(id string, contents string) {
	o.messages[id] = contents
}

func TestClientInstrumentation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("hello"))
	}))
	defer server.Close()

	out := memoryOutput{messages: map[string]string{}}
	client := NewClient(ClientOptions{Output: out})

	res, err := client.R().SetContext(context.Background()).Get(server.URL)
	require.NoError(t, err)
	require.Equal(t, "hello", res.String())
}

func TestClientDumpsAtDebugLevel(t *testing.T) {
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(previous) })

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("dumped"))
	}))
	defer server.Close()

	out := memoryOutput{messages: map[string]string{}}
	client := NewClient(ClientOptions{Output: out})

	_, err := client.R().Get(server.URL)
	require.NoError(t, err)
	_, err = client.R().SetBody("payload").Post(server.URL)
	require.NoError(t, err)

	require.Len(t, out.messages, 2)
	require.Contains(t, out.messages["1"], "GET "+server.URL)
	require.Contains(t, out.messages["1"], "dumped")
	require.Contains(t, out.messages["2"], "payload")
}

func TestFormatRequestBody(t *testing.T) {
	req, err := http.NewRequest(http.MethodGet, "http://localhost", nil)
	require.NoError(t, err)
	require.Equal(t, "", formatRequestBody(req))

	req.GetBody = func() (io.ReadCloser, error) { return nil, nil }
	req.Body = io.NopCloser(strings.NewReader(""))
	require.Equal(t, "", formatRequestBody(req))

	req, err = http.NewRequest(http.MethodPost, "http://localhost", strings.NewReader("a=1"))
	require.NoError(t, err)
	require.Equal(t, "a=1", formatRequestBody(req))
}

func TestFormatHttpMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Test", "1")
		w.Write([]byte("body"))
	}))
	defer server.Close()

	client := NewClient(ClientOptions{})
	res, err := client.R().Get(server.URL)
	require.NoError(t, err)

	message := formatHttpMessage(res)
	require.Contains(t, message, "GET "+server.URL)
	require.Contains(t, message, "X-Test: 1")
	require.Contains(t, message, "200")
	require.Contains(t, message, "body")
}

func TestFilesystemOutput(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "dumps")
	out, err := NewFilesystemOutput(dir)
	require.NoError(t, err)

	out.Write("1", "contents")
	written, err := os.ReadFile(filepath.Join(dir, "1.txt"))
	require.NoError(t, err)
	require.Equal(t, "contents", string(written))
}
