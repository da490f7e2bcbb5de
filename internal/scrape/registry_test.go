package scrape_test

import (
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/lelipitri23-dev/Komikcast/internal/scrape"
)

type fakeLayout struct {
	key  string
	name string
}

func (f *fakeLayout) Key() string  { return f.key }
func (f *fakeLayout) Name() string { return f.name }
func (f *fakeLayout) ExtractSeries(*goquery.Document, string) (*scrape.SeriesDetail, error) {
	return &scrape.SeriesDetail{}, nil
}
func (f *fakeLayout) ExtractChapter(*goquery.Document, string) (*scrape.ChapterContent, error) {
	return &scrape.ChapterContent{}, nil
}

func TestRegistryRegisterGetList(t *testing.T) {
	r := scrape.NewRegistry()

	if err := r.Register(&fakeLayout{key: "b", name: "B"}); err != nil {
		t.Fatalf("register b: %v", err)
	}
	if err := r.Register(&fakeLayout{key: "a", name: "A"}); err != nil {
		t.Fatalf("register a: %v", err)
	}

	if _, ok := r.Get("a"); !ok {
		t.Fatal("expected layout a")
	}
	if _, ok := r.Get("missing"); ok {
		t.Fatal("did not expect missing layout")
	}

	list := r.List()
	if len(list) != 2 {
		t.Fatalf("expected 2 layouts, got %d", len(list))
	}
	if list[0].Key != "a" || list[1].Key != "b" {
		t.Fatalf("expected sorted keys a,b got %s,%s", list[0].Key, list[1].Key)
	}
}

func TestRegistryRejectsDuplicatesAndEmptyKeys(t *testing.T) {
	r := scrape.NewRegistry()

	if err := r.Register(&fakeLayout{key: "dup", name: "Dup"}); err != nil {
		t.Fatalf("register dup: %v", err)
	}
	if err := r.Register(&fakeLayout{key: "dup", name: "Dup Again"}); err == nil {
		t.Fatal("expected duplicate key error")
	}
	if err := r.Register(&fakeLayout{name: "No Key"}); err == nil {
		t.Fatal("expected empty key error")
	}
	if err := r.Register(nil); err == nil {
		t.Fatal("expected nil layout error")
	}
}
