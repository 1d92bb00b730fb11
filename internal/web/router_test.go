package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFormPages(t *testing.T) {
	server := httptest.NewServer(NewRouter())
	t.Cleanup(server.Close)

	for _, path := range []string{"/register-form", "/search-form"} {
		resp, err := http.Get(server.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Errorf("GET %s: expected 200, got %d", path, resp.StatusCode)
		}
		if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
			t.Errorf("GET %s: expected text/html, got %s", path, ct)
		}
		if !strings.Contains(string(body), "<form") {
			t.Errorf("GET %s: expected a form in the page", path)
		}
	}
}
