package extractor

import (
	"reflect"
	"testing"
)

func TestReadStructuredDataSkipsMalformedBlocks(t *testing.T) {
	doc := parseDoc(t, `<html><head>
<script type="application/ld+json">{"@type": "VacationRental", "name": </script>
<script type="application/ld+json">{"@type":"VacationRental","name":"Second Block Wins"}</script>
</head><body></body></html>`)

	sd := newTestEngine().readStructuredData(doc)
	if sd.Title != "Second Block Wins" {
		t.Errorf("Title: got %q, a malformed first block must not mask a valid later one", sd.Title)
	}
}

func TestReadStructuredDataIgnoresOtherTypes(t *testing.T) {
	doc := parseDoc(t, `<html><head>
<script type="application/ld+json">{"@type":"BreadcrumbList","name":"crumbs"}</script>
</head><body></body></html>`)

	sd := newTestEngine().readStructuredData(doc)
	if sd.Title != "" {
		t.Errorf("Title: got %q, want empty partial for non-listing types", sd.Title)
	}
}

func TestReadStructuredDataProductType(t *testing.T) {
	doc := parseDoc(t, `<html><head>
<script type="application/ld+json">{"@type":"Product","name":"Canopy Suite"}</script>
</head><body></body></html>`)

	sd := newTestEngine().readStructuredData(doc)
	if sd.Title != "Canopy Suite" {
		t.Errorf("Title: got %q, want %q", sd.Title, "Canopy Suite")
	}
}

func TestReadStructuredDataIgnoresNonArrayImage(t *testing.T) {
	doc := parseDoc(t, `<html><head>
<script type="application/ld+json">{"@type":"VacationRental","name":"X","image":"https://a.muscache.com/im/solo.jpg"}</script>
</head><body></body></html>`)

	sd := newTestEngine().readStructuredData(doc)
	if len(sd.Images) != 0 {
		t.Errorf("Images: got %v, want none: only array-valued image is trusted", sd.Images)
	}
}

func TestReadStructuredDataAddressJoin(t *testing.T) {
	tests := []struct {
		name    string
		address string
		want    string
	}{
		{"all components", `{"addressLocality":"Austin","addressRegion":"Texas","addressCountry":"United States"}`, "Austin, Texas, United States"},
		{"locality only", `{"addressLocality":"Aspen"}`, "Aspen"},
		{"region and country", `{"addressRegion":"Oregon","addressCountry":"United States"}`, "Oregon, United States"},
		{"empty object", `{}`, ""},
	}

	e := newTestEngine()
	for _, tt := range tests {
		doc := parseDoc(t, `<html><head><script type="application/ld+json">{"@type":"VacationRental","address":`+
			tt.address+`}</script></head><body></body></html>`)
		sd := e.readStructuredData(doc)
		if sd.Location != tt.want {
			t.Errorf("%s: Location = %q; want %q", tt.name, sd.Location, tt.want)
		}
	}
}

func TestReadStructuredDataQuotedNumbers(t *testing.T) {
	doc := parseDoc(t, `<html><head>
<script type="application/ld+json">{"@type":"VacationRental","aggregateRating":{"ratingValue":"4.9","ratingCount":"212"},"latitude":"44.06","longitude":"-121.31"}</script>
</head><body></body></html>`)

	sd := newTestEngine().readStructuredData(doc)
	if sd.Rating != 4.9 {
		t.Errorf("Rating: got %v, want 4.9", sd.Rating)
	}
	if sd.ReviewCount != 212 {
		t.Errorf("ReviewCount: got %d, want 212", sd.ReviewCount)
	}
	if sd.Lat == nil || *sd.Lat != 44.06 || sd.Lng == nil || *sd.Lng != -121.31 {
		t.Errorf("coords: got %v/%v", sd.Lat, sd.Lng)
	}
}

func TestReadStructuredDataNoBlocks(t *testing.T) {
	doc := parseDoc(t, `<html><body><p>plain page</p></body></html>`)

	sd := newTestEngine().readStructuredData(doc)
	if !reflect.DeepEqual(sd.Images, []string(nil)) || sd.Title != "" || sd.Location != "" {
		t.Errorf("expected an empty partial, got %+v", sd)
	}
}
