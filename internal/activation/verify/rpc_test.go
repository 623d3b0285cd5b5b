package verify_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/arcregistry/wallet-activation/internal/activation/verify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEthDialerReusesClient(t *testing.T) {
	dialer := verify.NewEthDialer()
	defer dialer.Close()

	const url = "http://127.0.0.1:1/sepolia"

	var wg sync.WaitGroup
	readers := make([]verify.TransactionReader, 8)
	for i := range readers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			r, err := dialer.Dial(context.Background(), url)
			assert.NoError(t, err)
			readers[i] = r
		}(i)
	}
	wg.Wait()

	for _, r := range readers {
		require.NotNil(t, r)
		assert.Same(t, readers[0], r)
	}

	other, err := dialer.Dial(context.Background(), "http://127.0.0.1:1/amoy")
	require.NoError(t, err)
	assert.NotSame(t, readers[0], other)
}

func TestEthDialerSlowNodeDoesNotBlockOthers(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once

	// Accepts the websocket handshake request but never answers it until released.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		once.Do(func() { close(entered) })
		<-release
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()
	defer close(release)

	dialer := verify.NewEthDialer()
	defer dialer.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	slowDone := make(chan error, 1)
	go func() {
		_, err := dialer.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"))
		slowDone <- err
	}()

	select {
	case <-entered:
	case <-time.After(5 * time.Second):
		t.Fatal("slow node was never dialed")
	}

	fastDone := make(chan error, 1)
	go func() {
		_, err := dialer.Dial(context.Background(), "http://127.0.0.1:1/amoy")
		fastDone <- err
	}()

	select {
	case err := <-fastDone:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("dial of a second node waited for the slow one")
	}

	select {
	case err := <-slowDone:
		t.Fatalf("slow dial returned early: %v", err)
	default:
	}
}
