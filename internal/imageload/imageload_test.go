package imageload

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.RGBA{R: uint8(x * 10), G: uint8(y * 10), A: 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestDataURL_RoundTrip(t *testing.T) {
	src := testImage(5, 3)
	u, err := DataURL(src)
	if err != nil {
		t.Fatalf("DataURL: %v", err)
	}
	if !strings.HasPrefix(u, "data:image/png;base64,") {
		t.Fatalf("DataURL prefix = %q", u[:min(len(u), 30)])
	}
	img, err := Default{}.Load(context.Background(), u)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if img.Bounds() != src.Bounds() {
		t.Errorf("bounds = %v, want %v", img.Bounds(), src.Bounds())
	}
	r, g, _, _ := img.At(4, 2).RGBA()
	if r>>8 != 40 || g>>8 != 20 {
		t.Errorf("pixel (4,2) = %d,%d, want 40,20", r>>8, g>>8)
	}
}

func TestParseDataURL(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"base64", "data:text/plain;base64,aGk=", "hi", false},
		{"escaped", "data:,a%20b", "a b", false},
		{"no comma", "data:text/plain", "", true},
		{"bad base64", "data:;base64,!!", "", true},
		{"not data", "http://x", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDataURL(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrBadDataURL) {
					t.Errorf("error = %v, want ErrBadDataURL", err)
				}
				return
			}
			if err != nil || string(got) != tt.want {
				t.Errorf("ParseDataURL = %q, %v; want %q", got, err, tt.want)
			}
		})
	}
}

func TestDefault_LoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "img.png")
	if err := os.WriteFile(path, encodePNG(t, testImage(2, 2)), 0o600); err != nil {
		t.Fatal(err)
	}
	for _, src := range []string{path, "file://" + filepath.ToSlash(path)} {
		img, err := Default{}.Load(context.Background(), src)
		if err != nil {
			t.Fatalf("Load(%q): %v", src, err)
		}
		if img.Bounds().Dx() != 2 {
			t.Errorf("Load(%q) width = %d", src, img.Bounds().Dx())
		}
	}
	if _, err := (Default{}).Load(context.Background(), filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("missing file loaded")
	}
}

func TestDefault_LoadHTTP(t *testing.T) {
	data := encodePNG(t, testImage(3, 3))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ok.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(data)
	}))
	t.Cleanup(srv.Close)

	l := Default{Client: srv.Client()}
	img, err := l.Load(context.Background(), srv.URL+"/ok.png")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if img.Bounds().Dx() != 3 {
		t.Errorf("width = %d, want 3", img.Bounds().Dx())
	}
	if _, err := l.Load(context.Background(), srv.URL+"/missing.png"); err == nil {
		t.Error("404 loaded")
	}
}

func TestDefault_UnsupportedScheme(t *testing.T) {
	_, err := Default{}.Load(context.Background(), "ftp://example.com/a.png")
	if !errors.Is(err, ErrUnsupportedScheme) {
		t.Errorf("error = %v, want ErrUnsupportedScheme", err)
	}
}

func TestDecodeBytes(t *testing.T) {
	if _, err := DecodeBytes(nil); !errors.Is(err, ErrEmptyData) {
		t.Errorf("DecodeBytes(nil) = %v, want ErrEmptyData", err)
	}
	if _, err := DecodeBytes([]byte("not an image")); err == nil {
		t.Error("garbage decoded")
	}
}

func TestLoadAll(t *testing.T) {
	ok, err := DataURL(testImage(1, 1))
	if err != nil {
		t.Fatal(err)
	}
	wide, err := DataURL(testImage(4, 1))
	if err != nil {
		t.Fatal(err)
	}

	imgs, err := LoadAll(context.Background(), Default{}, []string{wide, ok})
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(imgs) != 2 || imgs[0].Bounds().Dx() != 4 || imgs[1].Bounds().Dx() != 1 {
		t.Errorf("LoadAll returned images out of order")
	}

	imgs, err = LoadAll(context.Background(), Default{}, []string{ok, "data:,garbage", wide})
	if err == nil || imgs != nil {
		t.Errorf("LoadAll with one failure = %v, %v; want nil, error", imgs, err)
	}
}

func TestLoaderFunc(t *testing.T) {
	want := testImage(1, 1)
	l := LoaderFunc(func(_ context.Context, u string) (image.Image, error) {
		if u != "x" {
			return nil, errors.New("unexpected url")
		}
		return want, nil
	})
	got, err := l.Load(context.Background(), "x")
	if err != nil || got != image.Image(want) {
		t.Errorf("Load = %v, %v", got, err)
	}
}
