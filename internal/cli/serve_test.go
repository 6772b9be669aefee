package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/promptink/promptink/pkg/art"
	"github.com/promptink/promptink/pkg/palette"
	"github.com/promptink/promptink/pkg/seed"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func TestHealthEndpoint(t *testing.T) {
	srv := httptest.NewServer(newRouter(palette.NewMemoryCache()))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestArtEndpoint(t *testing.T) {
	srv := httptest.NewServer(newRouter(palette.NewMemoryCache()))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/v1/art?prompt=misty+harbor")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q, want image/png", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); !bytes.Contains([]byte(cd), []byte("misty-harbor.png")) {
		t.Errorf("Content-Disposition = %q, want derived filename", cd)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
		t.Error("response body is not a PNG")
	}
}

func TestArtEndpointDeterministic(t *testing.T) {
	srv := httptest.NewServer(newRouter(palette.NewMemoryCache()))
	defer srv.Close()

	fetch := func() []byte {
		resp, err := http.Get(srv.URL + "/v1/art?prompt=twin+render")
		if err != nil {
			t.Fatal(err)
		}
		defer resp.Body.Close()
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(resp.Body); err != nil {
			t.Fatal(err)
		}
		return buf.Bytes()
	}

	first := fetch()
	second := fetch()
	if !bytes.Equal(first, second) {
		t.Error("same prompt should produce byte-identical PNG responses")
	}
}

func TestPaletteEndpoint(t *testing.T) {
	srv := httptest.NewServer(newRouter(palette.NewMemoryCache()))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/v1/palette?prompt=copper+dusk")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body paletteResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}

	if body.Prompt != "copper dusk" {
		t.Errorf("Prompt = %q, want %q", body.Prompt, "copper dusk")
	}
	if body.Seed != seed.Hash("copper dusk") {
		t.Errorf("Seed = %d, want %d", body.Seed, seed.Hash("copper dusk"))
	}
	if len(body.Colors) != palette.Size {
		t.Fatalf("got %d colors, want %d", len(body.Colors), palette.Size)
	}
	hexPattern := regexp.MustCompile(`^#[0-9a-f]{6}$`)
	for i, c := range body.Colors {
		if !hexPattern.MatchString(c) {
			t.Errorf("color %d = %q, want lowercase hex", i, c)
		}
	}
}

func TestPaletteEndpointEmptyPrompt(t *testing.T) {
	srv := httptest.NewServer(newRouter(palette.NewMemoryCache()))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/v1/palette")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var body paletteResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}

	if body.Prompt != art.DefaultPrompt {
		t.Errorf("Prompt = %q, want default %q", body.Prompt, art.DefaultPrompt)
	}
}

func TestPaletteEndpointSharesCache(t *testing.T) {
	cache := palette.NewMemoryCache()
	srv := httptest.NewServer(newRouter(cache))
	defer srv.Close()

	if _, err := http.Get(srv.URL + "/v1/palette?prompt=shared"); err != nil {
		t.Fatal(err)
	}
	if cache.Len() != 1 {
		t.Errorf("cache Len() = %d after one prompt, want 1", cache.Len())
	}

	if _, err := http.Get(srv.URL + "/v1/art?prompt=shared"); err != nil {
		t.Fatal(err)
	}
	if cache.Len() != 1 {
		t.Errorf("cache Len() = %d after art render of same prompt, want 1", cache.Len())
	}
}
