package main

import (
	"bytes"
	"io"
	"net/http"
	"os"
	"testing"
)

func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("failed to read stdout: %v", err)
	}
	return buf.String()
}

func TestPrintJSON(t *testing.T) {
	out := captureOutput(t, func() {
		printJSON(struct {
			A int `json:"a"`
		}{A: 1})
	})

	expected := "{\n  \"a\": 1\n}\n"
	if out != expected {
		t.Fatalf("unexpected json output:\n%s", out)
	}
}

func TestBuildRequestSetsHeaders(t *testing.T) {
	origToken := token
	token = "tok-1"
	defer func() { token = origToken }()

	req, err := buildRequest(http.MethodPost, "http://localhost:8080/api/v1/funds/", `{"amount":"100"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := req.Header.Get("Authorization"); got != "Bearer tok-1" {
		t.Fatalf("expected bearer header, got %q", got)
	}
	if got := req.Header.Get("Content-Type"); got != "application/json" {
		t.Fatalf("expected json content type, got %q", got)
	}
}

func TestBuildRequestWithoutBodyOrToken(t *testing.T) {
	origToken := token
	token = ""
	defer func() { token = origToken }()

	req, err := buildRequest(http.MethodGet, "http://localhost:8080/api/v1/balances", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if req.Header.Get("Authorization") != "" {
		t.Fatal("expected no auth header without a token")
	}
	if req.Body != nil {
		t.Fatal("expected no body for GET request")
	}
}
