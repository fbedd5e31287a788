package analysis

import (
	"encoding/json"
	"testing"
)

func TestWordcloudPreservesOrder(t *testing.T) {
	var r Response
	body := `{"wordcloud_data": {"zeta": 9, "alpha": 7, "mid": 3}}`
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := []string{"zeta", "alpha", "mid"}
	if len(r.WordcloudData) != len(want) {
		t.Fatalf("got %d keywords, want %d", len(r.WordcloudData), len(want))
	}
	for i, w := range want {
		if r.WordcloudData[i].Word != w {
			t.Errorf("keyword %d = %q, want %q", i, r.WordcloudData[i].Word, w)
		}
	}
	if r.WordcloudData[0].Count != 9 {
		t.Errorf("count = %d, want 9", r.WordcloudData[0].Count)
	}
}

func TestWordcloudDuplicateKeys(t *testing.T) {
	var r Response
	body := `{"wordcloud_data": {"parking": 1, "fees": 2, "parking": 5}}`
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if len(r.WordcloudData) != 2 {
		t.Fatalf("keywords = %+v, want 2 entries", r.WordcloudData)
	}
	if k := r.WordcloudData[0]; k.Word != "parking" || k.Count != 5 {
		t.Errorf("first keyword = %+v, want parking:5", k)
	}
	if k := r.WordcloudData[1]; k.Word != "fees" || k.Count != 2 {
		t.Errorf("second keyword = %+v, want fees:2", k)
	}
}

func TestWordcloudNullAndMissing(t *testing.T) {
	var r Response
	if err := json.Unmarshal([]byte(`{"wordcloud_data": null}`), &r); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if len(r.WordcloudData) != 0 {
		t.Errorf("expected no keywords, got %v", r.WordcloudData)
	}

	var r2 Response
	if err := json.Unmarshal([]byte(`{}`), &r2); err != nil {
		t.Fatalf("unmarshal empty: %v", err)
	}
	if r2.WordcloudData != nil {
		t.Errorf("expected nil wordcloud, got %v", r2.WordcloudData)
	}
}

func TestWordcloudRejectsArray(t *testing.T) {
	var r Response
	if err := json.Unmarshal([]byte(`{"wordcloud_data": ["a"]}`), &r); err == nil {
		t.Fatal("expected error for array wordcloud")
	}
}

func TestWordcloudMarshalKeepsOrder(t *testing.T) {
	w := Wordcloud{{Word: "b", Count: 2}, {Word: "a", Count: 1}}
	data, err := json.Marshal(w)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"b":2,"a":1}` {
		t.Errorf("json = %s", data)
	}
}

func TestResponseBatch(t *testing.T) {
	var r Response
	if err := json.Unmarshal([]byte(greatServiceBody), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	b, err := r.Batch()
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	if len(b.Comments) != 1 {
		t.Fatalf("comments = %d", len(b.Comments))
	}
	c := b.Comments[0]
	if c.Sentiment.Label() != "Positive" {
		t.Errorf("label = %q", c.Sentiment.Label())
	}
	if len(c.Keywords) != 1 || c.Keywords[0] != "service" {
		t.Errorf("keywords = %v", c.Keywords)
	}
	if b.Distribution.Total() != 1 {
		t.Errorf("distribution total = %d", b.Distribution.Total())
	}
}
