package extractor

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func TestExtractImagesPrefersOriginalURI(t *testing.T) {
	doc := parseDoc(t, `<html><body>
<img src="https://a.muscache.com/im/small.jpg" data-original-uri="https://a.muscache.com/im/full.jpg">
<img src="https://a.muscache.com/im/other.jpg">
</body></html>`)

	got := newTestEngine().extractImages(doc)

	// The original-uri selector produced a candidate, so the more general
	// src-based selectors are never consulted.
	want := []string{"https://a.muscache.com/im/full.jpg"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("extractImages: got %v, want %v", got, want)
	}
}

func TestExtractImagesFiltersNonPropertyAssets(t *testing.T) {
	doc := parseDoc(t, `<html><body>
<img src="https://a.muscache.com/im/UserProfile/host.jpg">
<img src="https://a.muscache.com/im/platform-assets/badge.png">
<img src="https://a.muscache.com/im/deck.jpg">
<img src="data:image/png;base64,AAAA">
<img src="https://cdn.airbnb.com/logo.png">
</body></html>`)

	got := newTestEngine().extractImages(doc)

	want := []string{"https://a.muscache.com/im/deck.jpg"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("extractImages: got %v, want %v", got, want)
	}
}

func TestExtractImagesDeduplicatesAndCaps(t *testing.T) {
	var b strings.Builder
	b.WriteString("<html><body>")
	for i := 0; i < 14; i++ {
		// Two elements per URL; duplicates must collapse.
		url := fmt.Sprintf("https://a.muscache.com/im/photo-%d.jpg", i)
		fmt.Fprintf(&b, `<img src=%q><img src=%q>`, url, url)
	}
	b.WriteString("</body></html>")

	got := newTestEngine().extractImages(parseDoc(t, b.String()))

	if len(got) != maxImages {
		t.Fatalf("extractImages: got %d urls, want cap of %d", len(got), maxImages)
	}
	for i, url := range got {
		want := fmt.Sprintf("https://a.muscache.com/im/photo-%d.jpg", i)
		if url != want {
			t.Errorf("extractImages[%d]: got %q, want %q (discovery order)", i, url, want)
		}
	}

	// Dedup is idempotent.
	again := dedupeCapped(got, maxImages)
	if !reflect.DeepEqual(again, got) {
		t.Errorf("dedup not idempotent: %v vs %v", again, got)
	}
}

func TestExtractImagesEmpty(t *testing.T) {
	doc := parseDoc(t, `<html><body><img src="https://elsewhere.example.com/pic.jpg"></body></html>`)

	got := newTestEngine().extractImages(doc)
	if len(got) != 0 {
		t.Errorf("extractImages: got %v, want none for off-platform images", got)
	}
}
