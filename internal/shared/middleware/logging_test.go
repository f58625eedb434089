package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResponseWriterStatus(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    int
	}{
		{
			name:    "ExplicitStatus",
			handler: func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNotFound) },
			want:    http.StatusNotFound,
		},
		{
			name: "SecondWriteHeaderIgnored",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				w.WriteHeader(http.StatusOK)
			},
			want: http.StatusNotFound,
		},
		{
			name:    "ImplicitOKOnWrite",
			handler: func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("ok")) },
			want:    http.StatusOK,
		},
		{
			name:    "NothingWritten",
			handler: func(w http.ResponseWriter, r *http.Request) {},
			want:    http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rw := wrapResponseWriter(httptest.NewRecorder())
			tt.handler(rw, httptest.NewRequest(http.MethodGet, "/", nil))
			if rw.Status() != tt.want {
				t.Errorf("Status() = %d, want %d", rw.Status(), tt.want)
			}
		})
	}
}

func TestLoggingPassesThrough(t *testing.T) {
	handler := Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte("created"))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/things", nil))

	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
	if rec.Body.String() != "created" {
		t.Errorf("expected body to pass through, got %q", rec.Body.String())
	}
}
