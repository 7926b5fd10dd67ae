package evaluate

import (
	"sync"
	"testing"

	"github.com/ppiankov/factcheck/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(tolerance float64) *Engine {
	cfg := model.DefaultMatchingConfig()
	cfg.TolerancePercent = tolerance
	return NewEngine(cfg)
}

func TestEvaluateMissing(t *testing.T) {
	e := newEngine(10)

	tests := []struct {
		name      string
		reference string
		candidate string
		want      model.Status
	}{
		{"both missing", "", "", model.StatusBothMissing},
		{"reference missing", "", "x", model.StatusReferenceMissing},
		{"candidate missing", "x", "", model.StatusCandidateMissing},
		{"candidate whitespace", "x", "   ", model.StatusCandidateMissing},
		{"reference whitespace", " \t", "x", model.StatusReferenceMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, attr := range []string{"inception", "website", "elevation", "location", "founded_by", "motto"} {
				v := e.Evaluate(tt.reference, tt.candidate, attr)
				assert.Equal(t, tt.want, v.Status, attr)
				assert.Equal(t, 0, v.Score, attr)
				assert.NotEmpty(t, v.Rationale, attr)
			}
		})
	}
}

func TestEvaluatePointers(t *testing.T) {
	e := newEngine(10)
	x := "x"

	assert.Equal(t, model.StatusReferenceMissing, e.EvaluatePointers(nil, &x, "inception").Status)
	assert.Equal(t, model.StatusCandidateMissing, e.EvaluatePointers(&x, nil, "inception").Status)
	assert.Equal(t, model.StatusBothMissing, e.EvaluatePointers(nil, nil, "inception").Status)
}

func TestEvaluateProperties(t *testing.T) {
	tests := []struct {
		name      string
		tolerance float64
		reference string
		candidate string
		attribute string
		status    model.Status
		minScore  int
		maxScore  int
	}{
		{
			name: "temporal exact", tolerance: 10,
			reference: "1877", candidate: "東京大学は1877年に設立されました", attribute: "inception",
			status: model.StatusExact, minScore: 100, maxScore: 100,
		},
		{
			name: "temporal mismatch", tolerance: 10,
			reference: "1877", candidate: "1878年に設立", attribute: "inception",
			status: model.StatusNone, minScore: 0, maxScore: 0,
		},
		{
			name: "numeric within tolerance", tolerance: 5,
			reference: "776", candidate: "標高は約780mです", attribute: "elevation",
			status: model.StatusPartial, minScore: 70, maxScore: 99,
		},
		{
			name: "numeric outside tolerance", tolerance: 5,
			reference: "776", candidate: "標高は約900mです", attribute: "elevation",
			status: model.StatusNone, minScore: 0, maxScore: 0,
		},
		{
			name: "url language segment and index file", tolerance: 10,
			reference: "https://www.u-tokyo.ac.jp/", candidate: "公式サイトは https://u-tokyo.ac.jp/ja/index.html です", attribute: "website",
			status: model.StatusPartial, minScore: 85, maxScore: 95,
		},
		{
			name: "url with parentheses in path", tolerance: 10,
			reference: "https://en.wikipedia.org/wiki/Mercury_(planet)", candidate: "詳しくは https://en.wikipedia.org/wiki/Mercury_(planet) を参照", attribute: "website",
			status: model.StatusExact, minScore: 100, maxScore: 100,
		},
		{
			name: "location containment", tolerance: 10,
			reference: "広島県,府中町", candidate: "広島県安芸郡府中町", attribute: "location",
			status: model.StatusPartial, minScore: 95, maxScore: 95,
		},
		{
			name: "location exact", tolerance: 10,
			reference: "東京都,文京区", candidate: "東京都,文京区", attribute: "location",
			status: model.StatusExact, minScore: 100, maxScore: 100,
		},
		{
			name: "location kana city exact", tolerance: 10,
			reference: "埼玉県,さいたま市", candidate: "埼玉県さいたま市浦和区", attribute: "location",
			status: model.StatusExact, minScore: 100, maxScore: 100,
		},
		{
			name: "location kana city in prose", tolerance: 10,
			reference: "茨城県,つくば市", candidate: "茨城県つくば市です", attribute: "location",
			status: model.StatusExact, minScore: 100, maxScore: 100,
		},
		{
			name: "location wrong kana city", tolerance: 10,
			reference: "茨城県,水戸市", candidate: "茨城県つくば市です", attribute: "location",
			status: model.StatusNone, minScore: 0, maxScore: 0,
		},
		{
			name: "country in prose", tolerance: 10,
			reference: "日本", candidate: "日本です", attribute: "country",
			status: model.StatusPartial, minScore: 95, maxScore: 95,
		},
		{
			name: "wrong country", tolerance: 10,
			reference: "日本", candidate: "中国です", attribute: "国",
			status: model.StatusNone, minScore: 0, maxScore: 0,
		},
		{
			name: "person name with reading", tolerance: 10,
			reference: "山田太郎", candidate: "やまだ たろう（山田太郎）です", attribute: "founded_by",
			status: model.StatusExact, minScore: 100, maxScore: 100,
		},
		{
			name: "japanese attribute alias", tolerance: 10,
			reference: "3776", candidate: "3,776メートル", attribute: "標高",
			status: model.StatusExact, minScore: 100, maxScore: 100,
		},
		{
			name: "unknown attribute is generic text", tolerance: 10,
			reference: "Tokyo", candidate: "It is in tokyo.", attribute: "motto",
			status: model.StatusExact, minScore: 100, maxScore: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newEngine(tt.tolerance).Evaluate(tt.reference, tt.candidate, tt.attribute)
			assert.Equal(t, tt.status, v.Status)
			assert.GreaterOrEqual(t, v.Score, tt.minScore)
			assert.LessOrEqual(t, v.Score, tt.maxScore)
			assert.Equal(t, Family(tt.attribute), v.Family)
			assert.NotEmpty(t, v.Rationale)
			assert.NotEmpty(t, v.Rule)
		})
	}
}

func TestVerdictInvariants(t *testing.T) {
	e := newEngine(10)
	inputs := []struct{ ref, cand, attr string }{
		{"1877", "1877年", "inception"},
		{"1877", "不明", "inception"},
		{"https://example.com/", "https://example.org/", "website"},
		{"https://example.com/", "https://example.com/a", "website"},
		{"3776", "3700m", "elevation"},
		{"3776", "unknown", "elevation"},
		{"東京都,文京区", "大阪府大阪市", "location"},
		{"山田太郎", "佐藤花子", "director"},
		{"abc", "xyz", "motto"},
	}

	for _, in := range inputs {
		v := e.Evaluate(in.ref, in.cand, in.attr)
		if v.Status == model.StatusExact {
			assert.GreaterOrEqual(t, v.Score, 90, in)
		}
		if v.Status == model.StatusNone {
			assert.Equal(t, 0, v.Score, in)
		}
		assert.GreaterOrEqual(t, v.Score, 0, in)
		assert.LessOrEqual(t, v.Score, 100, in)
	}
}

func TestEvaluateIdempotent(t *testing.T) {
	e := newEngine(10)

	var wg sync.WaitGroup
	results := make([]model.Verdict, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = e.Evaluate("https://www.u-tokyo.ac.jp/", "https://u-tokyo.ac.jp/ja/index.html", "website")
		}(i)
	}
	wg.Wait()

	for _, v := range results[1:] {
		assert.Equal(t, results[0], v)
	}
}

func TestCandidateRoundTrip(t *testing.T) {
	inputs := map[string][]string{
		"inception":  {"東京大学は1877年に設立されました", "明治時代", "１９４９年"},
		"website":    {"公式サイトは https://u-tokyo.ac.jp/ja/index.html です", "https://www.example.com/ と http://example.org/about/", "わかりません"},
		"elevation":  {"標高は3,776メートルです", "約780m", "不明"},
		"location":   {"〒730-0001 広島県安芸郡府中町", "東京都, 文京区", "Mount Fuji"},
		"founded_by": {"やまだ たろう（山田太郎）です", "It was Steven Spielberg.", "It was directed by Steven Spielberg.", "unknown"},
		"motto":      {"  Veritas  ", "自由と規律"},
	}

	for attr, texts := range inputs {
		for _, text := range texts {
			once := CandidateValue(text, attr)
			twice := CandidateValue(once.String(), attr)
			assert.Equal(t, once.String(), twice.String(), "%s: %q", attr, text)
			if once.Family == model.FamilyPersonName {
				assert.Equal(t, once.Items, twice.Items, "%s: %q", attr, text)
			}
		}
	}
}

func TestPersonCandidateRerendered(t *testing.T) {
	e := newEngine(10)
	once := CandidateValue("It was directed by Steven Spielberg.", "director")
	assert.Equal(t, "Steven Spielberg", once.String())

	v := e.Evaluate("Steven Spielberg", once.String(), "director")
	assert.Equal(t, model.StatusExact, v.Status)
	assert.Equal(t, 100, v.Score)
}

func TestEveryFamilyHasMatcher(t *testing.T) {
	e := newEngine(10)
	for _, f := range model.Families() {
		v := model.Value{Family: f, Raw: "x", Text: "x", Items: []string{"x"}, Sources: []string{"x"}}
		require.NotPanics(t, func() { e.compare(v, v) }, string(f))
	}
}

func TestFamily(t *testing.T) {
	assert.Equal(t, model.FamilyTemporal, Family("inception"))
	assert.Equal(t, model.FamilyURL, Family("official_website"))
	assert.Equal(t, model.FamilyNumeric, Family("population"))
	assert.Equal(t, model.FamilyLocation, Family("本社所在地"))
	assert.Equal(t, model.FamilyLocation, Family("country"))
	assert.Equal(t, model.FamilyLocation, Family("国"))
	assert.Equal(t, model.FamilyPersonName, Family("director"))
	assert.Equal(t, model.FamilyGenericText, Family("industry"))
	assert.Equal(t, "meters", Units("elevation"))
	assert.Equal(t, "", Units("inception"))
	assert.Contains(t, KnownAttributes(), "headquarters")
}
