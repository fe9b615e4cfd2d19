package metrics

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/menukit/internal/logging/events"
	"github.com/atomicstack/menukit/internal/menu"
	"github.com/atomicstack/menukit/internal/track"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorderCountsSessions(t *testing.T) {
	r := NewRecorder()
	root := menu.New("File", menu.LayoutColumn)
	sub := menu.New("Recent", menu.LayoutColumn)

	r.SessionStarted(root, false)
	r.SessionStarted(root, true)
	r.SubmenuOpened(sub)
	r.SubmenuFailed(sub, errors.New("no window"))
	r.SessionEnded(root, track.Result{Item: menu.NewItem("Open", nil), Invoked: true, Reason: events.CloseInvoke})
	r.SessionEnded(root, track.Result{Canceled: true, Reason: events.CloseEscape})

	if got := testutil.ToFloat64(r.started.vec.WithLabelValues("File", "sticky")); got != 1 {
		t.Fatalf("expected one sticky start, got %v", got)
	}
	if got := testutil.ToFloat64(r.opened.vec.WithLabelValues("Recent")); got != 1 {
		t.Fatalf("expected one submenu opened, got %v", got)
	}
	if got := testutil.ToFloat64(r.failures.vec.WithLabelValues("Recent")); got != 1 {
		t.Fatalf("expected one failure, got %v", got)
	}
	if got := testutil.ToFloat64(r.ended.vec.WithLabelValues("File", "invoked", "invoke")); got != 1 {
		t.Fatalf("expected one invoked session, got %v", got)
	}
	if got := testutil.ToFloat64(r.ended.vec.WithLabelValues("File", "canceled", "escape")); got != 1 {
		t.Fatalf("expected one canceled session, got %v", got)
	}
}

func TestHandlerExposesCounters(t *testing.T) {
	r := NewRecorder()
	r.SessionStarted(menu.New("File", menu.LayoutColumn), false)

	rec := httptest.NewRecorder()
	Handler(r.Registry).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	if body := rec.Body.String(); !strings.Contains(body, `menukit_sessions_started_total{menu="File",mode="drag"} 1`) {
		t.Fatalf("expected started counter in output:\n%s", body)
	}
}

func TestServeShutsDownOnCancel(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	r := NewRecorder()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, listener, r.Registry) }()

	resp, err := http.Get("http://" + listener.Addr().String() + "/metrics")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for shutdown")
	}
}
