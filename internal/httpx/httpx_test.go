package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/malware-d/bercos/internal/bank"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{bank.E(bank.KindAuthentication, "x"), http.StatusUnauthorized},
		{bank.E(bank.KindAuthorization, "x"), http.StatusForbidden},
		{bank.E(bank.KindValidation, "x"), http.StatusBadRequest},
		{bank.ErrNotFound, http.StatusNotFound},
		{bank.ErrFrozen, http.StatusConflict},
		{bank.E(bank.KindPDPUnavailable, "x"), http.StatusServiceUnavailable},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := StatusFor(c.err); got != c.want {
			t.Fatalf("StatusFor(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}

func TestWriteErrHidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteErr(rec, errors.New("pq: connection reset"))

	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec.Code != http.StatusInternalServerError || env.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d/%d", rec.Code, env.Code)
	}
	if env.Message != "internal server error" {
		t.Fatalf("internal detail leaked: %q", env.Message)
	}
}

func TestWriteDataEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteData(rec, http.StatusOK, "ok", map[string]int{"n": 1})

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q", ct)
	}
	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Code != 200 || env.Message != "ok" || env.Data == nil {
		t.Fatalf("envelope: %+v", env)
	}
}

func TestExtractBearer(t *testing.T) {
	if _, ok := ExtractBearer(""); ok {
		t.Fatal("empty header accepted")
	}
	if _, ok := ExtractBearer("Basic abc"); ok {
		t.Fatal("wrong scheme accepted")
	}
	tok, ok := ExtractBearer("Bearer abc.def.ghi")
	if !ok || tok != "abc.def.ghi" {
		t.Fatalf("got %q/%v", tok, ok)
	}
}
